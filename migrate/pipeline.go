package migrate

import (
	"fmt"

	"github.com/satishbabariya/schemaflow/internal/debug"
	"github.com/satishbabariya/schemaflow/migrate/schema"
)

// StepError reports which step of a pipeline failed.
type StepError struct {
	Index int // zero-based position in the flattened pipeline
	Step  string
	Err   error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

type pipeline struct {
	steps []Step
}

// Compose chains steps into a single step that applies them left to right,
// handing each one the snapshot produced by the previous one. The first
// failing step aborts the pipeline. Nested pipelines are flattened and nil
// steps are skipped; composing no steps yields the identity.
func Compose(steps ...Step) Step {
	flat := make([]Step, 0, len(steps))
	for _, s := range steps {
		switch s := s.(type) {
		case nil:
		case *pipeline:
			flat = append(flat, s.steps...)
		default:
			flat = append(flat, s)
		}
	}
	return &pipeline{steps: flat}
}

// Steps returns the flattened steps of a composed pipeline, or the step
// itself for any other step.
func Steps(s Step) []Step {
	if p, ok := s.(*pipeline); ok {
		out := make([]Step, len(p.steps))
		copy(out, p.steps)
		return out
	}
	return []Step{s}
}

func (p *pipeline) Apply(db schema.Database) (schema.Database, error) {
	for i, s := range p.steps {
		next, err := s.Apply(db)
		if err != nil {
			debug.Debug("migration step failed", "index", i, "step", describe(s), "error", err)
			return schema.Database{}, &StepError{Index: i, Step: describe(s), Err: err}
		}
		debug.Debug("applied migration step", "index", i, "kind", KindOf(s), "step", describe(s), "tables", len(next.TableNames()))
		db = next
	}
	return db, nil
}

func (p *pipeline) String() string {
	return fmt.Sprintf("pipeline of %d steps", len(p.steps))
}
