// Package planner compiles a parsed Query into an ordered Plan against a
// command registry: resolving actions to registered commands, assigning
// default or link parameters, and type-checking the result. Planning
// mirrors Query.Predecessor's own recursion, so the step order it
// produces is exactly the execution order the interpreter needs.
package planner

import (
	"fmt"
	"strconv"

	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/command"
	"github.com/orest-d/liquer-go/command/executor"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/plan"
	"github.com/orest-d/liquer-go/position"
	"github.com/orest-d/liquer-go/value"
)

// realm is the coarse command-space partition planning resolves against.
// Nothing in the query syntax currently selects a non-default realm, so
// every lookup uses the empty realm.
const realm = ""

// Plan compiles query against registry, producing the ordered step list
// the interpreter will execute, or a structured error on the first
// unresolvable action, missing argument, or malformed default.
func Plan(query *ast.Query, registry *command.Registry) (*plan.Plan, error) {
	p := &planner{registry: registry}
	if err := p.planQuery(query); err != nil {
		return nil, err
	}
	return &plan.Plan{Query: query.Encode(), Steps: p.steps}, nil
}

type planner struct {
	registry *command.Registry
	steps    []plan.Step
}

func (p *planner) emit(s plan.Step) { p.steps = append(p.steps, s) }

// planQuery emits the steps for query in execution order, recursing
// shortest-predecessor-first exactly as Query.Predecessor splits it.
func (p *planner) planQuery(query *ast.Query) error {
	if query == nil || query.IsEmpty() || query.IsNamespaceDirectiveOnly() {
		return nil
	}
	if query.IsPureResourceQuery() {
		return p.planResourceSegment(query.Segments[0].(*ast.ResourceQuerySegment))
	}
	if query.IsPureActionChain() {
		seg := query.Segments[0].(*ast.TransformQuerySegment)
		if seg.IsSingleAction() {
			return p.planAction(seg.Actions[0], nil)
		}
		if seg.IsSingleFilename() {
			p.emitFilename(seg.Filename)
			return nil
		}
	}
	rest, suffix := query.Predecessor()
	if suffix == nil {
		return nil
	}
	if err := p.planQuery(rest); err != nil {
		return err
	}
	return p.planSuffix(suffix, rest)
}

// planSuffix emits the step for a single-segment suffix produced by a
// predecessor split, resolving namespace directives against left, the
// query the suffix was split off from.
func (p *planner) planSuffix(suffix, left *ast.Query) error {
	switch seg := suffix.Segments[0].(type) {
	case *ast.ResourceQuerySegment:
		return p.planResourceSegment(seg)
	case *ast.TransformQuerySegment:
		if seg.Filename != nil {
			p.emitFilename(seg.Filename)
			return nil
		}
		return p.planAction(seg.Actions[0], left)
	}
	return nil
}

func (p *planner) emitFilename(name *ast.ResourceName) {
	p.emit(&plan.FilenameStep{Name: name.Name, Position: name.Position})
}

// planResourceSegment emits GetResource, or GetResourceMetadata when the
// header's first parameter is "meta"; any other header parameter is a
// warning, since nothing else in the contract consumes it.
func (p *planner) planResourceSegment(seg *ast.ResourceQuerySegment) error {
	pos := seg.Position
	params := []ast.HeaderParameter(nil)
	wantsMetadata := false
	if seg.Header != nil {
		params = seg.Header.Parameters
		if len(params) > 0 && params[0].Text == "meta" {
			wantsMetadata = true
			params = params[1:]
		}
	}
	if wantsMetadata {
		p.emit(&plan.GetResourceMetadataStep{Key: seg.Key, Position: pos})
	} else {
		p.emit(&plan.GetResourceStep{Key: seg.Key, Position: pos})
	}
	for _, extra := range params {
		p.emit(&plan.WarningStep{
			Message:  fmt.Sprintf("ignoring resource header parameter %q", extra.Text),
			Position: pos,
		})
	}
	return nil
}

// planAction resolves action against the registry and emits an Action
// step. left is the query this action's namespace directives are scanned
// from, or nil when the action has nothing to its left (fallback
// namespaces only).
func (p *planner) planAction(action ast.ActionRequest, left *ast.Query) error {
	pos := action.Position
	namespaces, err := namespacesFor(left)
	if err != nil {
		return err
	}
	cm, ok := p.registry.FindCommandInNamespaces(realm, namespaces, action.Name)
	if !ok {
		return p.registry.ActionNotRegistered(pos, realm, namespaces, action.Name)
	}
	resolved, err := resolveParameters(cm, action)
	if err != nil {
		return err
	}
	p.emit(&plan.ActionStep{
		Realm:      cm.Realm,
		Namespace:  cm.Namespace,
		Name:       cm.Name,
		Position:   pos,
		Parameters: resolved,
	})
	return nil
}

// namespacesFor collects every string parameter of an "ns-..." directive
// found in left's last transform segment, then appends the implicit ""
// and "root" fallbacks. Directives closer to the evaluated action shadow
// ones introduced earlier, so the segment's actions are scanned back to
// front: the last "ns-..." directive in the segment contributes the
// namespaces FindCommandInNamespaces tries first.
func namespacesFor(left *ast.Query) ([]string, error) {
	var namespaces []string
	if left != nil {
		if seg := left.LastTransformSegment(); seg != nil {
			for i := len(seg.Actions) - 1; i >= 0; i-- {
				a := seg.Actions[i]
				if !a.IsNamespaceDirective() {
					continue
				}
				for _, param := range a.Parameters {
					if param.IsLink() {
						return nil, lqerrors.New(lqerrors.NotSupported, param.Position,
							"link parameter not supported in ns- directive")
					}
					namespaces = append(namespaces, param.Text)
				}
			}
		}
	}
	namespaces = append(namespaces, "", "root")
	return namespaces, nil
}

// resolveParameters pairs cm's declared arguments against action's
// supplied parameters in order, filling missing trailing arguments from
// their defaults and type-checking everything it can resolve eagerly.
// Link parameters (explicit or from a Query default) are left as
// placeholders in ResolvedParameters.Links.
func resolveParameters(cm *command.CommandMetadata, action ast.ActionRequest) (plan.ResolvedParameters, error) {
	var resolved plan.ResolvedParameters
	cursor := 0
	for _, arg := range cm.Arguments {
		// An empty literal parameter on a non-string argument is an
		// explicit request for the declared default rather than an
		// empty-string value (the "action--next" shorthand).
		if cursor < len(action.Parameters) {
			param := action.Parameters[cursor]
			if param.IsLink() || param.Text != "" || isEmptyLiteral(arg.Type) {
				cursor++
				idx := len(resolved.Values)
				resolved.Values = append(resolved.Values, executor.Parameter{Position: param.Position})
				if param.IsLink() {
					resolved.Links = append(resolved.Links, plan.LinkParameter{Index: idx, SubQuery: param.Link})
					continue
				}
				v, err := resolveTyped(arg, param.Text, param.Position)
				if err != nil {
					return plan.ResolvedParameters{}, err
				}
				resolved.Values[idx].Value = v
				continue
			}
			cursor++
		}
		idx := len(resolved.Values)
		switch arg.Default.Kind {
		case command.DefaultValue:
			resolved.Values = append(resolved.Values, executor.Parameter{Value: arg.Default.Value, Position: action.Position})
		case command.DefaultQuery:
			subQuery, err := ast.Parse(arg.Default.Query)
			if err != nil {
				return plan.ResolvedParameters{}, err
			}
			resolved.Values = append(resolved.Values, executor.Parameter{Position: action.Position})
			resolved.Links = append(resolved.Links, plan.LinkParameter{Index: idx, SubQuery: subQuery})
		default:
			return plan.ResolvedParameters{}, lqerrors.NewArgumentMissing(action.Position, arg.Name)
		}
	}
	if cursor < len(action.Parameters) {
		return plan.ResolvedParameters{}, lqerrors.NewTooManyParameters(action.Parameters[cursor].Position, action.Name)
	}
	return resolved, nil
}

// isEmptyLiteral reports whether an empty parameter text is itself a
// meaningful value for t (a string, or an optional numeric type whose
// own empty-means-absent convention predates and takes precedence over
// the "empty requests the default" shorthand).
func isEmptyLiteral(t command.ArgumentType) bool {
	return t == command.TypeString || t == command.TypeIntegerOption || t == command.TypeFloatOption
}

// resolveTyped type-checks a literal action-parameter string against
// arg's declared type, producing the Value the executor will see.
func resolveTyped(arg command.ArgInfo, text string, pos position.Position) (value.Value, error) {
	switch arg.Type {
	case command.TypeString, command.TypeAny:
		return value.NewText(text), nil
	case command.TypeInteger, command.TypeIntegerOption:
		if text == "" && arg.Type == command.TypeIntegerOption {
			return value.None, nil
		}
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, lqerrors.NewConversionError(pos, text, "integer")
		}
		return value.NewI64(i), nil
	case command.TypeFloat, command.TypeFloatOption:
		if text == "" && arg.Type == command.TypeFloatOption {
			return value.None, nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, lqerrors.NewConversionError(pos, text, "float")
		}
		return value.NewF64(f), nil
	case command.TypeBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, lqerrors.NewConversionError(pos, text, "boolean")
		}
		return value.NewBool(b), nil
	case command.TypeEnum:
		v, ok := arg.Enum.Resolve(text)
		if !ok {
			return nil, lqerrors.NewParameterError(pos, "%q is not a valid alternative for enum %s", text, arg.Enum.Name)
		}
		return v, nil
	case command.TypeNone:
		return value.None, nil
	default:
		return value.NewText(text), nil
	}
}
