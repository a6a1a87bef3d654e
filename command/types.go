// Package command holds the registry of command metadata LiQuer uses to
// type-check and resolve actions during planning: argument shapes,
// defaults, enum alternatives, and the (realm, namespace, name) index
// commands are looked up by.
package command

import "github.com/orest-d/liquer-go/value"

// ArgumentType is the declared shape of one argument.
type ArgumentType int

const (
	TypeString ArgumentType = iota
	TypeInteger
	TypeIntegerOption
	TypeFloat
	TypeFloatOption
	TypeBoolean
	TypeEnum
	TypeAny
	TypeNone
)

func (t ArgumentType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInteger:
		return "Integer"
	case TypeIntegerOption:
		return "IntegerOption"
	case TypeFloat:
		return "Float"
	case TypeFloatOption:
		return "FloatOption"
	case TypeBoolean:
		return "Boolean"
	case TypeEnum:
		return "Enum"
	case TypeAny:
		return "Any"
	case TypeNone:
		return "None"
	default:
		return "Unknown"
	}
}

// isOption reports whether t permits an empty parameter to resolve to
// value.None rather than an error.
func (t ArgumentType) isOption() bool {
	return t == TypeIntegerOption || t == TypeFloatOption
}

// DefaultKind distinguishes the three shapes an ArgInfo.Default can take.
type DefaultKind int

const (
	NoDefault DefaultKind = iota
	DefaultValue
	DefaultQuery
)

// Default is the fallback used when an action supplies no parameter for
// an argument. A DefaultQuery default is resolved as a link at plan time,
// exactly like an explicit link parameter.
type Default struct {
	Kind  DefaultKind
	Value value.Value
	Query string // canonical encoding, used when Kind == DefaultQuery
}

// NoDefaultValue is the default for required arguments with no fallback.
var NoDefaultValue = Default{Kind: NoDefault}

// ValueDefault builds a concrete-value default.
func ValueDefault(v value.Value) Default { return Default{Kind: DefaultValue, Value: v} }

// QueryDefault builds a default that resolves sub-query q as a link.
func QueryDefault(q string) Default { return Default{Kind: DefaultQuery, Query: q} }

// EnumAlternative maps one textual name to its resolved value.
type EnumAlternative struct {
	Name  string
	Value value.Value
}

// Enum describes the `name → value` table for a TypeEnum argument.
type Enum struct {
	Name          string
	Alternatives  []EnumAlternative
	OthersAllowed bool
	ValueType     ArgumentType
}

// Resolve translates name via the alternatives table. When no alternative
// matches and OthersAllowed is set, name passes through as a Text value;
// otherwise ok is false.
func (e *Enum) Resolve(name string) (v value.Value, ok bool) {
	for _, alt := range e.Alternatives {
		if alt.Name == name {
			return alt.Value, true
		}
	}
	if e.OthersAllowed {
		return value.NewText(name), true
	}
	return nil, false
}

// ArgInfo describes one declared command argument (or the state
// argument).
type ArgInfo struct {
	Name     string
	Label    string
	Default  Default
	Type     ArgumentType
	Enum     *Enum // non-nil iff Type == TypeEnum
	Multiple bool
	GUIHint  string
}

// CommandMetadata describes one registered command.
type CommandMetadata struct {
	Realm     string
	Namespace string
	Name      string
	Module    string
	ShortDoc  string // one-line summary
	LongDoc   string // optional extended description; falls back to ShortDoc when empty

	StateArgument *ArgInfo
	Arguments     []ArgInfo
}

// Doc returns the long description when the command declares one,
// otherwise the short summary.
func (cm CommandMetadata) Doc() string {
	if cm.LongDoc != "" {
		return cm.LongDoc
	}
	return cm.ShortDoc
}
