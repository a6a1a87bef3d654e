// Package interpreter walks a compiled Plan, threading a (value,
// metadata) State through each step: fetching resources from a Store,
// resolving link parameters by recursively evaluating sub-queries,
// dispatching actions through a command Executor, and consulting a
// Cache before and after evaluation.
package interpreter

import (
	"context"
	"strings"

	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/cache"
	"github.com/orest-d/liquer-go/command"
	"github.com/orest-d/liquer-go/command/executor"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/metadata"
	"github.com/orest-d/liquer-go/plan"
	"github.com/orest-d/liquer-go/planner"
	"github.com/orest-d/liquer-go/state"
	"github.com/orest-d/liquer-go/store"
	"github.com/orest-d/liquer-go/value"
)

// Environment is the set of shared, read-mostly dependencies a query
// evaluation needs. An aggregator wiring a registry, executor, store,
// and cache together satisfies this structurally without the
// interpreter importing it.
type Environment interface {
	Registry() *command.Registry
	Executor() *executor.Executor
	Store() store.Store
	Cache() cache.Cache
}

// Evaluate parses queryText, plans it against env's registry, and
// evaluates the plan. A parse or planning error aborts before any step
// runs and is returned directly; once evaluation begins, step failures
// are captured into the returned State's metadata instead (see
// EvaluatePlan).
func Evaluate(ctx context.Context, queryText string, env Environment) (state.State, error) {
	q, err := ast.Parse(queryText)
	if err != nil {
		return state.State{}, err
	}
	return EvaluateQuery(ctx, q, env)
}

// EvaluateQuery plans and evaluates an already-parsed query, consulting
// env's cache under the query's fingerprint both before planning and
// after a successful evaluation.
func EvaluateQuery(ctx context.Context, q *ast.Query, env Environment) (state.State, error) {
	fingerprint := q.Fingerprint()
	if cached, ok := lookupCache(ctx, env.Cache(), fingerprint); ok {
		return cached, nil
	}
	p, err := planner.Plan(q, env.Registry())
	if err != nil {
		return state.State{}, err
	}
	return evaluatePlanCached(ctx, p, fingerprint, env), nil
}

// EvaluatePlan runs p's steps in order starting from an empty State.
// Any step error is turned into an error-level log entry on the current
// metadata buffer (flipping IsError) and evaluation stops; the partial
// State is returned regardless.
func EvaluatePlan(ctx context.Context, p *plan.Plan, env Environment) state.State {
	current := state.Empty()
	for _, step := range p.Steps {
		next, err := execStep(ctx, step, current, env)
		if err != nil {
			current = current.WithMetadata(current.Metadata.Error(err.Error()))
			break
		}
		current = next
	}
	return current
}

// evaluatePlanCached wraps EvaluatePlan with the cache write-back a
// successful evaluation performs, keyed by fingerprint (the plan's own
// Query field, for a sub-plan evaluated via a PlanStep).
func evaluatePlanCached(ctx context.Context, p *plan.Plan, fingerprint string, env Environment) state.State {
	st := EvaluatePlan(ctx, p, env)
	if !st.IsError() {
		storeCache(ctx, env.Cache(), fingerprint, st)
	}
	return st
}

func execStep(ctx context.Context, step plan.Step, current state.State, env Environment) (state.State, error) {
	switch s := step.(type) {
	case *plan.GetResourceStep:
		return execGetResource(ctx, s, env)
	case *plan.GetResourceMetadataStep:
		return execGetResourceMetadata(ctx, s, env)
	case *plan.ActionStep:
		return execAction(ctx, s, current, env)
	case *plan.FilenameStep:
		return current.WithMetadata(current.Metadata.WithFilename(s.Name)), nil
	case *plan.InfoStep:
		return current.WithMetadata(current.Metadata.Info(s.Message)), nil
	case *plan.WarningStep:
		return current.WithMetadata(current.Metadata.Warning(s.Message)), nil
	case *plan.ErrorStep:
		return current.WithMetadata(current.Metadata.Error(s.Message)), nil
	case *plan.EvaluateStep:
		return EvaluateQuery(ctx, s.SubQuery, env)
	case *plan.PlanStep:
		return evaluatePlanCached(ctx, s.SubPlan, s.SubPlan.Query, env), nil
	default:
		return current, lqerrors.NewGeneral("unrecognized step type %T", step)
	}
}

func execGetResource(ctx context.Context, s *plan.GetResourceStep, env Environment) (state.State, error) {
	data, md, err := env.Store().Get(ctx, s.Key)
	if err != nil {
		return state.State{}, err
	}
	if md.Status == metadata.StatusRecipe {
		return resolveRecipe(ctx, s.Key, data, md, env)
	}
	return deserializeResource(s.Key, data, md)
}

func deserializeResource(key ast.Key, data []byte, md metadata.Metadata) (state.State, error) {
	typeID := md.TypeIdentifier
	if typeID == "" {
		typeID = "bytes"
	}
	v, err := value.Deserialize(data, typeID, formatForKey(key))
	if err != nil {
		return state.State{}, err
	}
	return state.New(v, md), nil
}

// resolveRecipe evaluates a recipe resource: its bytes hold a query
// rather than literal data. A Store that additionally implements
// store.RecipeStore resolves the recipe itself; otherwise the recipe
// query is parsed and evaluated through env, and the computed result is
// written back under the original key before being returned.
func resolveRecipe(ctx context.Context, key ast.Key, data []byte, md metadata.Metadata, env Environment) (state.State, error) {
	if rs, ok := env.Store().(store.RecipeStore); ok {
		resolvedData, resolvedMd, err := rs.ResolveRecipe(ctx, key, md)
		if err != nil {
			return state.State{}, err
		}
		return deserializeResource(key, resolvedData, resolvedMd)
	}
	recipeQuery, err := ast.Parse(string(data))
	if err != nil {
		return state.State{}, err
	}
	result, err := EvaluateQuery(ctx, recipeQuery, env)
	if err != nil {
		return state.State{}, err
	}
	resolvedMd := result.Metadata.WithStatus(metadata.StatusReady).WithTypeIdentifier(result.Data.Identifier())
	if resolvedBytes, encErr := value.AsBytes(result.Data, formatForKey(key)); encErr == nil {
		_ = env.Store().Set(ctx, key, resolvedBytes, resolvedMd)
	}
	return state.New(result.Data, resolvedMd), nil
}

func execGetResourceMetadata(ctx context.Context, s *plan.GetResourceMetadataStep, env Environment) (state.State, error) {
	md, err := env.Store().GetMetadata(ctx, s.Key)
	if err != nil {
		if lqerrors.IsNotFound(err) {
			md = metadata.New()
		} else {
			return state.State{}, err
		}
	}
	return state.New(metadataToValue(md), md), nil
}

// execAction resolves every link parameter by recursively evaluating its
// sub-query, then dispatches to the executor with the now-fully-concrete
// parameter vector.
func execAction(ctx context.Context, s *plan.ActionStep, current state.State, env Environment) (state.State, error) {
	params := make([]executor.Parameter, len(s.Parameters.Values))
	copy(params, s.Parameters.Values)
	for _, link := range s.Parameters.Links {
		sub, err := EvaluateQuery(ctx, link.SubQuery, env)
		if err != nil {
			return state.State{}, err
		}
		if sub.IsError() {
			return state.State{}, lqerrors.New(lqerrors.General, s.Position,
				"link parameter %q failed: %s", link.SubQuery.Encode(), sub.Metadata.Message)
		}
		params[link.Index] = executor.Parameter{Value: sub.Data, Position: s.Position}
	}
	result, err := env.Executor().Call(ctx, s.Realm, s.Namespace, s.Name, s.Position, &current, params)
	if err != nil {
		return state.State{}, err
	}
	return state.New(result, current.Metadata), nil
}

// metadataToValue exposes a Metadata as an object Value, for
// GetResourceMetadata steps.
func metadataToValue(md metadata.Metadata) value.Value {
	keys := []string{"query", "status", "type_identifier", "message", "is_error", "media_type", "filename"}
	fields := map[string]value.Value{
		"query":           value.NewText(md.Query),
		"status":          value.NewText(string(md.Status)),
		"type_identifier": value.NewText(md.TypeIdentifier),
		"message":         value.NewText(md.Message),
		"is_error":        value.NewBool(md.IsError),
		"media_type":      value.NewText(md.MediaType),
		"filename":        value.NewText(md.Filename),
	}
	return value.NewObject(keys, fields)
}

// formatForKey maps a resource key's filename extension onto a
// value.AsBytes/Deserialize format identifier; an unrecognized extension
// is passed through as-is, for extension-registered codecs that key
// their own formats by file extension.
func formatForKey(key ast.Key) string {
	ext := ""
	if !key.IsEmpty() {
		ext = strings.ToLower(key.Names[len(key.Names)-1].Extension())
	}
	switch ext {
	case "json":
		return value.FormatJSON
	case "txt", "text", "":
		return value.FormatText
	case "html", "htm":
		return value.FormatHTML
	default:
		return ext
	}
}

// cacheFormat is the format evaluated results are serialized with when
// written to the Cache; bytes values have no JSON representation, so
// they round-trip through the raw format instead.
func cacheFormat(typeID string) string {
	if typeID == "bytes" {
		return value.FormatRaw
	}
	return value.FormatJSON
}

func lookupCache(ctx context.Context, c cache.Cache, fingerprint string) (state.State, bool) {
	md, err := c.GetMetadata(ctx, fingerprint)
	if err != nil {
		return state.State{}, false
	}
	data, err := c.GetBinary(ctx, fingerprint)
	if err != nil {
		return state.State{}, false
	}
	v, err := value.Deserialize(data, md.TypeIdentifier, cacheFormat(md.TypeIdentifier))
	if err != nil {
		return state.State{}, false
	}
	return state.New(v, md), true
}

func storeCache(ctx context.Context, c cache.Cache, fingerprint string, st state.State) {
	typeID := st.Data.Identifier()
	data, err := value.AsBytes(st.Data, cacheFormat(typeID))
	if err != nil {
		return
	}
	md := st.Metadata.WithQuery(fingerprint).WithTypeIdentifier(typeID)
	_ = c.SetBinary(ctx, data, md)
}
