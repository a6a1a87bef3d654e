package command

import (
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/position"
	"github.com/orest-d/liquer-go/value"
)

// Check scans every registered command for conflicting defaults, unknown
// argument types, and duplicate registrations, returning every problem
// found rather than stopping at the first one. Duplicate registrations
// are already rejected by Register; Check re-reports them here only if
// the caller built entries by some other means (e.g. in tests) and is
// re-validating a fully-assembled registry.
func (r *Registry) Check() lqerrors.Errors {
	var errs lqerrors.Errors
	seen := map[key]bool{}
	for _, cm := range r.order {
		k := key{cm.Realm, cm.Namespace, cm.Name}
		if seen[k] {
			errs = append(errs, lqerrors.NewCommandAlreadyRegistered(cm.Realm, cm.Namespace, cm.Name))
			continue
		}
		seen[k] = true
		errs = append(errs, checkArgument(cm, cm.StateArgument)...)
		for i := range cm.Arguments {
			errs = append(errs, checkArgument(cm, &cm.Arguments[i])...)
		}
	}
	return errs
}

func checkArgument(cm *CommandMetadata, arg *ArgInfo) lqerrors.Errors {
	if arg == nil {
		return nil
	}
	var errs lqerrors.Errors
	if arg.Type < TypeString || arg.Type > TypeNone {
		errs = append(errs, lqerrors.New(lqerrors.General, position.Unknown,
			"%s/%s/%s: argument %q has unknown type", cm.Realm, cm.Namespace, cm.Name, arg.Name))
	}
	if arg.Type == TypeEnum && arg.Enum == nil {
		errs = append(errs, lqerrors.New(lqerrors.General, position.Unknown,
			"%s/%s/%s: argument %q declared Enum with no Enum spec", cm.Realm, cm.Namespace, cm.Name, arg.Name))
	}
	if arg.Type != TypeEnum && arg.Enum != nil {
		errs = append(errs, lqerrors.New(lqerrors.General, position.Unknown,
			"%s/%s/%s: argument %q carries an Enum spec but is not typed Enum", cm.Realm, cm.Namespace, cm.Name, arg.Name))
	}
	if arg.Default.Kind == DefaultValue && arg.Type == TypeEnum && arg.Enum != nil {
		if !enumHasValue(arg.Enum, arg.Default.Value) {
			errs = append(errs, lqerrors.New(lqerrors.General, position.Unknown,
				"%s/%s/%s: argument %q default value is not one of its enum alternatives", cm.Realm, cm.Namespace, cm.Name, arg.Name))
		}
	}
	return errs
}

func enumHasValue(e *Enum, v value.Value) bool {
	for _, alt := range e.Alternatives {
		if alt.Value.Equal(v) {
			return true
		}
	}
	return false
}
