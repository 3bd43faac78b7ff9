package schema

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/schemaflow/internal/immutable"
)

// BuildFunc populates a new table. It receives an empty builder scoped to
// the table and the database as it was before the table is created, which
// it may read to mirror columns of existing tables.
type BuildFunc func(t TableBuilder, db Database) TableBuilder

// Database is an immutable snapshot of the schema at one point of a
// migration, together with the DDL statements emitted to reach it.
// The zero value is the empty database.
type Database struct {
	tables     immutable.Map[Table]
	statements []Statement
}

// Empty returns the empty database snapshot.
func Empty() Database {
	return Database{}
}

// Table looks up a table by name.
func (db Database) Table(name string) (Table, bool) {
	return db.tables.Get(name)
}

// HasTable reports whether a table with the given name exists.
func (db Database) HasTable(name string) bool {
	return db.tables.Has(name)
}

// Tables returns the tables in creation order.
func (db Database) Tables() []Table {
	return db.tables.Values()
}

// TableNames returns the table names in creation order.
func (db Database) TableNames() []string {
	return db.tables.Keys()
}

// Lookup resolves a column of an existing table. It fails with
// UnknownTableError or UnknownColumnError.
func (db Database) Lookup(table, column string) (Column, error) {
	t, ok := db.tables.Get(table)
	if !ok {
		return Column{}, &UnknownTableError{Table: table}
	}
	c, ok := t.Column(column)
	if !ok {
		return Column{}, &UnknownColumnError{Table: table, Column: column}
	}
	return c, nil
}

// Statements returns the emitted DDL statements in order.
func (db Database) Statements() []Statement {
	out := make([]Statement, len(db.statements))
	copy(out, db.statements)
	return out
}

// SQL returns the DDL script emitted so far.
func (db Database) SQL() string {
	var sb strings.Builder
	for _, s := range db.statements {
		sb.WriteString(s.SQL)
	}
	return sb.String()
}

// CreateTable returns a new snapshot containing the table produced by build.
// It fails with DuplicateTableError if the name is taken, and with any error
// recorded on the builder returned by build. A nil build creates a table
// without columns.
func (db Database) CreateTable(name string, build BuildFunc) (Database, error) {
	if err := checkIdentifier("table", name); err != nil {
		return Database{}, err
	}
	if db.tables.Has(name) {
		return Database{}, &DuplicateTableError{Table: name}
	}

	b := newTableBuilder(name, db)
	if build != nil {
		b = build(b, db)
	}
	if b.err != nil {
		return Database{}, b.err
	}
	if b.table.name != name {
		return Database{}, fmt.Errorf("create table %q: got builder for %q: %w", name, b.table.name, ErrBuilderMismatch)
	}

	return Database{
		tables: db.tables.With(name, b.table),
		statements: db.appendStatement(Statement{
			Kind:  StatementCreateTable,
			Table: name,
			SQL:   createTableSQL(b.table),
		}),
	}, nil
}

// DropTable returns a new snapshot without the named table. It fails with
// UnknownTableError if the table does not exist.
func (db Database) DropTable(name string) (Database, error) {
	if !db.tables.Has(name) {
		return Database{}, &UnknownTableError{Table: name}
	}

	return Database{
		tables: db.tables.Without(name),
		statements: db.appendStatement(Statement{
			Kind:  StatementDropTable,
			Table: name,
			SQL:   dropTableSQL(name),
		}),
	}, nil
}

// appendStatement never appends in place: sibling snapshots may share the
// backing array of db.statements.
func (db Database) appendStatement(s Statement) []Statement {
	out := make([]Statement, len(db.statements), len(db.statements)+1)
	copy(out, db.statements)
	return append(out, s)
}
