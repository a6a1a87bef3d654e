// Package environment aggregates the shared, read-mostly dependencies one
// LiQuer evaluator needs: a command registry, an executor, a resource
// store, a result cache, a logger, and evaluation metrics. An Environment
// satisfies interpreter.Environment structurally, so the interpreter
// package never imports this one.
package environment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/cache"
	"github.com/orest-d/liquer-go/command"
	"github.com/orest-d/liquer-go/command/executor"
	"github.com/orest-d/liquer-go/interpreter"
	"github.com/orest-d/liquer-go/logging"
	"github.com/orest-d/liquer-go/state"
	"github.com/orest-d/liquer-go/store"
	storemem "github.com/orest-d/liquer-go/store/memory"
)

// Environment wires together everything a query evaluation needs.
type Environment struct {
	registry *command.Registry
	executor *executor.Executor
	store    store.Store
	cache    cache.Cache
	logger   logging.Logger
	metrics  *Metrics
}

// Option configures an Environment constructed by New.
type Option func(*Environment)

// WithStore overrides the default in-memory store.
func WithStore(s store.Store) Option { return func(e *Environment) { e.store = s } }

// WithCache overrides the default no-op cache.
func WithCache(c cache.Cache) Option { return func(e *Environment) { e.cache = c } }

// WithLogger overrides the default standard logger.
func WithLogger(l logging.Logger) Option { return func(e *Environment) { e.logger = l } }

// WithMetrics overrides the default Metrics, e.g. to share one Prometheus
// registry across several Environments.
func WithMetrics(m *Metrics) Option { return func(e *Environment) { e.metrics = m } }

// New builds an Environment around registry and executor, which callers
// populate with their own commands before or after calling New (both
// registry and executor accept registrations at any time).
//
// The default Metrics is unregistered (NewMetrics(nil)): New never reaches
// for prometheus.DefaultRegisterer, since a process that builds more than
// one Environment (or a test binary that builds one per test function)
// would hit MustRegister's duplicate-collector panic on the second call. A
// caller that wants its Environments observable constructs one *Metrics
// against its own Registerer and shares it via WithMetrics.
func New(registry *command.Registry, ex *executor.Executor, opts ...Option) *Environment {
	e := &Environment{
		registry: registry,
		executor: ex,
		store:    storemem.New(ast.Key{}),
		cache:    cache.NoOpCache{},
		logger:   logging.New(),
		metrics:  NewMetrics(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Environment) Registry() *command.Registry  { return e.registry }
func (e *Environment) Executor() *executor.Executor { return e.executor }
func (e *Environment) Store() store.Store           { return e.store }
func (e *Environment) Cache() cache.Cache           { return e.cache }
func (e *Environment) Logger() logging.Logger       { return e.logger }
func (e *Environment) Metrics() *Metrics            { return e.metrics }

// Evaluate parses and evaluates queryText, recording evaluation duration
// and outcome in e's metrics and logging the outcome at Debug (success) or
// Error (planning/evaluation failure) level.
func (e *Environment) Evaluate(ctx context.Context, queryText string) (state.State, error) {
	return e.run(ctx, queryText, func() (state.State, error) {
		return interpreter.Evaluate(ctx, queryText, e)
	})
}

// EvaluateQuery is Evaluate for an already-parsed query.
func (e *Environment) EvaluateQuery(ctx context.Context, q *ast.Query) (state.State, error) {
	return e.run(ctx, q.Encode(), func() (state.State, error) {
		return interpreter.EvaluateQuery(ctx, q, e)
	})
}

func (e *Environment) run(ctx context.Context, queryText string, eval func() (state.State, error)) (state.State, error) {
	correlationID := uuid.New().String()
	log := e.logger.WithFields(map[string]interface{}{"query": queryText, "correlation_id": correlationID})
	start := time.Now()

	st, err := eval()
	st = st.WithMetadata(st.Metadata.WithCorrelationID(correlationID))

	elapsed := time.Since(start)
	if err != nil {
		e.metrics.observeEvaluation(elapsed, "planning_error")
		log.Error("failed to plan query: %s", err)
		return st, err
	}
	if st.IsError() {
		e.metrics.observeEvaluation(elapsed, "error")
		log.Error("query evaluation failed: %s", st.Metadata.Message)
		return st, nil
	}
	e.metrics.observeEvaluation(elapsed, "ok")
	log.Debug("query evaluated in %s", elapsed)
	return st, nil
}
