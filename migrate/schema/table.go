package schema

import (
	"github.com/satishbabariya/schemaflow/internal/immutable"
)

// ConstraintKind identifies the kind of a table constraint.
type ConstraintKind string

const (
	ConstraintUnique ConstraintKind = "unique"
)

// Constraint is a table-level constraint fragment over one or more columns.
type Constraint struct {
	kind    ConstraintKind
	columns []string
}

// Kind returns the constraint kind.
func (c Constraint) Kind() ConstraintKind {
	return c.kind
}

// Columns returns the names of the constrained columns, in declaration order.
func (c Constraint) Columns() []string {
	out := make([]string, len(c.columns))
	copy(out, c.columns)
	return out
}

// Table is an immutable snapshot of one table: its columns in declaration
// order and the constraints declared on them.
type Table struct {
	name        string
	columns     immutable.Map[Column]
	constraints []Constraint
}

// Name returns the table name.
func (t Table) Name() string {
	return t.name
}

// Column looks up a column by name.
func (t Table) Column(name string) (Column, bool) {
	return t.columns.Get(name)
}

// HasColumn reports whether the table declares a column with the given name.
func (t Table) HasColumn(name string) bool {
	return t.columns.Has(name)
}

// Columns returns the columns in declaration order.
func (t Table) Columns() []Column {
	return t.columns.Values()
}

// ColumnNames returns the column names in declaration order.
func (t Table) ColumnNames() []string {
	return t.columns.Keys()
}

// Constraints returns the constraints in declaration order.
func (t Table) Constraints() []Constraint {
	out := make([]Constraint, len(t.constraints))
	copy(out, t.constraints)
	return out
}

func (t Table) withColumn(c Column) Table {
	return Table{
		name:        t.name,
		columns:     t.columns.With(c.name, c),
		constraints: t.constraints,
	}
}

func (t Table) withConstraint(c Constraint) Table {
	constraints := make([]Constraint, len(t.constraints), len(t.constraints)+1)
	copy(constraints, t.constraints)
	return Table{
		name:        t.name,
		columns:     t.columns,
		constraints: append(constraints, c),
	}
}
