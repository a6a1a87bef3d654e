// Package plan defines the compiled instruction list the planner
// produces from a Query and the interpreter executes: a closed union of
// step kinds, mechanically modeled the same way the parser models its
// closed union of AST node kinds.
package plan

import (
	"github.com/orest-d/liquer-go/ast"
	"github.com/orest-d/liquer-go/command/executor"
	"github.com/orest-d/liquer-go/position"
)

// Plan is a query's compiled, ready-to-execute step list.
type Plan struct {
	Query string // canonical encoding of the query this plan was built from
	Steps []Step
}

// Step is the closed union of instructions a Plan is built from.
type Step interface {
	StepPosition() position.Position
	stepKind() string
}

// GetResourceStep fetches a resource's bytes (deserialized via its
// stored metadata) from the Store.
type GetResourceStep struct {
	Key      ast.Key
	Position position.Position
}

func (s *GetResourceStep) StepPosition() position.Position { return s.Position }
func (*GetResourceStep) stepKind() string                  { return "get_resource" }

// GetResourceMetadataStep fetches only a resource's metadata, exposed to
// the pipeline as an object value.
type GetResourceMetadataStep struct {
	Key      ast.Key
	Position position.Position
}

func (s *GetResourceMetadataStep) StepPosition() position.Position { return s.Position }
func (*GetResourceMetadataStep) stepKind() string                  { return "get_resource_metadata" }

// EvaluateStep recursively evaluates a sub-query in place.
type EvaluateStep struct {
	SubQuery *ast.Query
	Position position.Position
}

func (s *EvaluateStep) StepPosition() position.Position { return s.Position }
func (*EvaluateStep) stepKind() string                  { return "evaluate" }

// LinkParameter is a deferred parameter: the sub-query at SubQuery is
// evaluated, and its resulting value is spliced into ResolvedParameters
// at Index once resolved.
type LinkParameter struct {
	Index    int
	SubQuery *ast.Query
}

// ResolvedParameters is an Action step's argument vector: one Parameter
// slot per non-state argument, some of which are placeholders to be
// filled in from Links before the command executes.
type ResolvedParameters struct {
	Values []executor.Parameter
	Links  []LinkParameter
}

// ActionStep resolves and invokes one registered command.
type ActionStep struct {
	Realm      string
	Namespace  string
	Name       string
	Position   position.Position
	Parameters ResolvedParameters
}

func (s *ActionStep) StepPosition() position.Position { return s.Position }
func (*ActionStep) stepKind() string                  { return "action" }

// FilenameStep updates the metadata buffer's filename (and, via
// metadata.WithFilename, its media type).
type FilenameStep struct {
	Name     string
	Position position.Position
}

func (s *FilenameStep) StepPosition() position.Position { return s.Position }
func (*FilenameStep) stepKind() string                  { return "filename" }

// InfoStep, WarningStep and ErrorStep append a log entry at the
// corresponding level; ErrorStep additionally flips the metadata
// buffer's is_error flag.
type InfoStep struct {
	Message  string
	Position position.Position
}

func (s *InfoStep) StepPosition() position.Position { return s.Position }
func (*InfoStep) stepKind() string                  { return "info" }

type WarningStep struct {
	Message  string
	Position position.Position
}

func (s *WarningStep) StepPosition() position.Position { return s.Position }
func (*WarningStep) stepKind() string                  { return "warning" }

type ErrorStep struct {
	Message  string
	Position position.Position
}

func (s *ErrorStep) StepPosition() position.Position { return s.Position }
func (*ErrorStep) stepKind() string                  { return "error" }

// PlanStep recursively executes an already-compiled sub-plan in place.
type PlanStep struct {
	SubPlan  *Plan
	Position position.Position
}

func (s *PlanStep) StepPosition() position.Position { return s.Position }
func (*PlanStep) stepKind() string                  { return "plan" }
