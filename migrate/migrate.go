// Package migrate composes schema migration steps and compiles them into a
// DDL script. Each step receives exactly the schema produced by the step
// before it, so a step can only reference tables and columns that exist at
// that point of the migration.
package migrate

import (
	"fmt"

	"github.com/satishbabariya/schemaflow/migrate/schema"
)

// Step is one schema transformation.
type Step interface {
	Apply(db schema.Database) (schema.Database, error)
}

// StepFunc adapts a function to a Step.
type StepFunc func(db schema.Database) (schema.Database, error)

// Apply calls f(db).
func (f StepFunc) Apply(db schema.Database) (schema.Database, error) {
	return f(db)
}

// StepKind tags the built-in steps.
type StepKind string

const (
	StepCreateTable StepKind = "CreateTable"
	StepDropTable   StepKind = "DropTable"
	StepPipeline    StepKind = "Pipeline"
	StepCustom      StepKind = "Custom"
)

// KindOf returns the kind of a step.
func KindOf(s Step) StepKind {
	switch v := s.(type) {
	case *createTableStep:
		return StepCreateTable
	case *dropTableStep:
		return StepDropTable
	case *pipeline:
		return StepPipeline
	case interface{ Kind() StepKind }:
		return v.Kind()
	default:
		return StepCustom
	}
}

// ColumnSpec contributes to a table being created: a column, a unique
// constraint, or any other builder transformation.
type ColumnSpec func(t schema.TableBuilder, db schema.Database) schema.TableBuilder

// Column declares a column with the given type. Passing a schema.Column
// as the type mirrors that column's type.
func Column(name string, typ schema.TypeDescriptor) ColumnSpec {
	return func(t schema.TableBuilder, _ schema.Database) schema.TableBuilder {
		return t.Column(name, typ)
	}
}

// ColumnLike declares a column whose type mirrors table.column as it exists
// before the enclosing CreateTable step runs.
func ColumnLike(name, table, column string) ColumnSpec {
	return func(t schema.TableBuilder, _ schema.Database) schema.TableBuilder {
		return t.ColumnLike(name, table, column)
	}
}

// Unique adds a unique constraint over previously declared columns.
func Unique(columns ...string) ColumnSpec {
	return func(t schema.TableBuilder, _ schema.Database) schema.TableBuilder {
		return t.UniqueOn(columns...)
	}
}

type createTableStep struct {
	name  string
	build schema.BuildFunc
}

// CreateTable returns a step creating a table from column specs applied in
// order.
func CreateTable(name string, specs ...ColumnSpec) Step {
	return &createTableStep{
		name: name,
		build: func(t schema.TableBuilder, db schema.Database) schema.TableBuilder {
			for _, spec := range specs {
				t = spec(t, db)
			}
			return t
		},
	}
}

// CreateTableFunc returns a step creating a table with a build function. The
// function receives the database as it was before this step.
func CreateTableFunc(name string, build schema.BuildFunc) Step {
	return &createTableStep{name: name, build: build}
}

func (s *createTableStep) Apply(db schema.Database) (schema.Database, error) {
	return db.CreateTable(s.name, s.build)
}

func (s *createTableStep) String() string {
	return "create table " + s.name
}

type dropTableStep struct {
	name string
}

// DropTable returns a step dropping a table.
func DropTable(name string) Step {
	return &dropTableStep{name: name}
}

func (s *dropTableStep) Apply(db schema.Database) (schema.Database, error) {
	return db.DropTable(s.name)
}

func (s *dropTableStep) String() string {
	return "drop table " + s.name
}

func describe(s Step) string {
	if str, ok := s.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", s)
}
