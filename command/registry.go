package command

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/position"
)

type key struct {
	realm, namespace, name string
}

// Registry is an ordered list of CommandMetadata entries, indexed by
// (realm, namespace, name) for lookup.
type Registry struct {
	order   []*CommandMetadata
	byKey   map[key]*CommandMetadata
	byRealm map[string][]*CommandMetadata // for suggestion scans
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:   map[key]*CommandMetadata{},
		byRealm: map[string][]*CommandMetadata{},
	}
}

// Register adds cm to the registry. Registering the same (realm,
// namespace, name) twice is a CommandAlreadyRegistered error.
func (r *Registry) Register(cm CommandMetadata) error {
	k := key{cm.Realm, cm.Namespace, cm.Name}
	if _, exists := r.byKey[k]; exists {
		return lqerrors.NewCommandAlreadyRegistered(cm.Realm, cm.Namespace, cm.Name)
	}
	entry := &cm
	r.order = append(r.order, entry)
	r.byKey[k] = entry
	r.byRealm[cm.Realm] = append(r.byRealm[cm.Realm], entry)
	return nil
}

// All returns every registered entry in registration order.
func (r *Registry) All() []*CommandMetadata { return r.order }

// FindCommandInNamespaces returns the first command named name found
// while scanning namespaces in order, within realm.
func (r *Registry) FindCommandInNamespaces(realm string, namespaces []string, name string) (*CommandMetadata, bool) {
	for _, ns := range namespaces {
		if cm, ok := r.byKey[key{realm, ns, name}]; ok {
			return cm, true
		}
	}
	return nil, false
}

// ActionNotRegistered builds the structured lookup-miss error for name,
// including a "did you mean" suggestion when a registered command in one
// of namespaces is a close textual match.
func (r *Registry) ActionNotRegistered(pos position.Position, realm string, namespaces []string, name string) error {
	if suggestion := r.suggest(realm, namespaces, name); suggestion != "" {
		return lqerrors.New(lqerrors.ActionNotRegistered, pos,
			"action %q not registered in namespaces %v (did you mean %q?)", name, namespaces, suggestion)
	}
	return lqerrors.NewActionNotRegistered(pos, name, namespaces)
}

func (r *Registry) suggest(realm string, namespaces []string, name string) string {
	best := ""
	bestDist := -1
	nsSet := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		nsSet[ns] = true
	}
	for _, cm := range r.byRealm[realm] {
		if !nsSet[cm.Namespace] {
			continue
		}
		d := levenshtein.ComputeDistance(name, cm.Name)
		if d == 0 {
			continue
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = cm.Name
		}
	}
	if bestDist >= 0 && bestDist <= maxSuggestionDistance(name) {
		return best
	}
	return ""
}

// maxSuggestionDistance caps how far off a name can be before the
// suggestion stops being useful noise; roughly one edit per three
// characters, at least one.
func maxSuggestionDistance(name string) int {
	d := len(name) / 3
	if d < 1 {
		d = 1
	}
	return d
}

func (r *Registry) String() string {
	return fmt.Sprintf("Registry(%d commands)", len(r.order))
}
