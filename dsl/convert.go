package dsl

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/schemaflow/migrate"
	"github.com/satishbabariya/schemaflow/migrate/schema"
)

// Error is a schema error raised by a statement, annotated with the
// statement's position in the migration file.
type Error struct {
	Pos lexer.Position
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

type positionedStep struct {
	pos  lexer.Position
	kind migrate.StepKind
	step migrate.Step
}

func (s *positionedStep) Apply(db schema.Database) (schema.Database, error) {
	next, err := s.step.Apply(db)
	if err != nil {
		return schema.Database{}, &Error{Pos: s.pos, Err: err}
	}
	return next, nil
}

func (s *positionedStep) Kind() migrate.StepKind {
	return s.kind
}

func (s *positionedStep) String() string {
	return fmt.Sprint(s.step)
}

// Step converts the whole file into one composed step.
func (f *File) Step() migrate.Step {
	steps := make([]migrate.Step, 0, len(f.Statements))
	for _, stmt := range f.Statements {
		if stmt.Comment != nil {
			continue
		}
		steps = append(steps, stmt.Step())
	}
	return migrate.Compose(steps...)
}

// Step converts a statement into a migration step. Errors raised by the
// step carry the statement position. Comments yield a nil step.
func (s *Statement) Step() migrate.Step {
	switch {
	case s.Create != nil:
		return &positionedStep{pos: s.Create.Pos, kind: migrate.StepCreateTable, step: s.Create.step()}
	case s.Drop != nil:
		return &positionedStep{pos: s.Drop.Pos, kind: migrate.StepDropTable, step: migrate.DropTable(s.Drop.Name)}
	default:
		return nil
	}
}

func (c *CreateTable) step() migrate.Step {
	defs := c.Definitions()
	specs := make([]migrate.ColumnSpec, 0, len(defs))
	for _, item := range defs {
		specs = append(specs, item.spec())
	}
	return migrate.CreateTable(c.Name, specs...)
}

func (i *TableItem) spec() migrate.ColumnSpec {
	if i.Unique != nil {
		return migrate.Unique(i.Unique.Columns...)
	}
	col := i.Column
	if col.Type.IsReference() {
		return migrate.ColumnLike(col.Name, col.Type.Name, col.Type.Member)
	}
	return migrate.Column(col.Name, schema.Type(col.Type.Tag()))
}

// Compile parses a migration and compiles it from the empty database.
func Compile(filename string, r io.Reader) (migrate.Result, error) {
	f, err := Parse(filename, r)
	if err != nil {
		return migrate.Result{}, err
	}
	return migrate.Compile(f.Step())
}
