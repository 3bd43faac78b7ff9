package schema

// TableBuilder is a persistent fluent builder for a table being created.
//
// Every method returns a new builder and leaves the receiver untouched, so
// calling Column twice on the same builder yields two independent siblings.
// The first failure on a lineage is sticky: it is recorded on the returned
// builder, subsequent calls return that builder unchanged, and Err reports it.
type TableBuilder struct {
	table Table
	db    Database
	err   error
}

func newTableBuilder(name string, db Database) TableBuilder {
	return TableBuilder{table: Table{name: name}, db: db}
}

// Name returns the name of the table being built.
func (b TableBuilder) Name() string {
	return b.table.name
}

// Err returns the first error recorded on this builder lineage.
func (b TableBuilder) Err() error {
	return b.err
}

// Table returns the table snapshot accumulated so far.
func (b TableBuilder) Table() Table {
	return b.table
}

// Get returns the column with the given name if it has been declared.
func (b TableBuilder) Get(name string) (Column, bool) {
	return b.table.Column(name)
}

// Columns returns the columns declared so far, in declaration order.
func (b TableBuilder) Columns() []Column {
	return b.table.Columns()
}

// Column declares a new column. It fails with DuplicateColumnError if the
// name is already declared on this builder, and with MissingTypeError if typ
// is nil or names no type.
func (b TableBuilder) Column(name string, typ TypeDescriptor) TableBuilder {
	if b.err != nil {
		return b
	}
	if err := checkIdentifier("column", name); err != nil {
		return b.fail(err)
	}
	if b.table.HasColumn(name) {
		return b.fail(&DuplicateColumnError{Table: b.table.name, Column: name})
	}

	if typ == nil || typ.TypeName() == "" {
		return b.fail(&MissingTypeError{Table: b.table.name, Column: name})
	}

	col := Column{name: name, typ: typ.TypeName(), table: b.table.name}
	return TableBuilder{table: b.table.withColumn(col), db: b.db}
}

// ColumnLike declares a column whose type mirrors column refColumn of table
// refTable, as it exists in the database snapshot this table is being
// created against.
func (b TableBuilder) ColumnLike(name, refTable, refColumn string) TableBuilder {
	if b.err != nil {
		return b
	}
	ref, err := b.db.Lookup(refTable, refColumn)
	if err != nil {
		return b.fail(err)
	}
	return b.Column(name, ref)
}

// Unique appends a unique constraint over the given columns. Every column
// must be a current column of this table; otherwise Unique fails with
// UnknownColumnError. Columns of other tables are rejected even if this
// table happens to declare a column with the same name.
func (b TableBuilder) Unique(cols ...Column) TableBuilder {
	if b.err != nil {
		return b
	}
	if len(cols) == 0 {
		return b.fail(ErrEmptyConstraint)
	}

	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.table != b.table.name || !b.table.HasColumn(c.name) {
			return b.fail(&UnknownColumnError{Table: b.table.name, Column: c.name})
		}
		names = append(names, c.name)
	}

	return TableBuilder{
		table: b.table.withConstraint(Constraint{kind: ConstraintUnique, columns: names}),
		db:    b.db,
	}
}

// UniqueOn is Unique with columns given by name.
func (b TableBuilder) UniqueOn(names ...string) TableBuilder {
	if b.err != nil {
		return b
	}

	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := b.table.Column(name)
		if !ok {
			return b.fail(&UnknownColumnError{Table: b.table.name, Column: name})
		}
		cols = append(cols, c)
	}
	return b.Unique(cols...)
}

func (b TableBuilder) fail(err error) TableBuilder {
	return TableBuilder{table: b.table, db: b.db, err: err}
}
