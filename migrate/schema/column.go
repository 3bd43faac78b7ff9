// Package schema holds the immutable schema model used while compiling a
// migration: columns, tables, the fluent table builder and the database
// snapshot together with the DDL it has emitted so far.
package schema

import "regexp"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TypeDescriptor describes a column type. The tag is opaque: it is stored
// and emitted as-is, never interpreted.
type TypeDescriptor interface {
	TypeName() string
}

// Type is a plain type tag such as "string" or "int".
type Type string

// TypeName returns the tag.
func (t Type) TypeName() string {
	return string(t)
}

// Column is a named, typed column of a table. Column values are immutable;
// redeclaring a column produces a new value.
type Column struct {
	name  string
	typ   string
	table string
}

// Name returns the column name.
func (c Column) Name() string {
	return c.name
}

// Type returns the column's type tag.
func (c Column) Type() string {
	return c.typ
}

// Table returns the name of the table the column was declared on.
func (c Column) Table() string {
	return c.table
}

// TypeName lets a column be used as the type of another column, copying
// its type tag.
func (c Column) TypeName() string {
	return c.typ
}

// IsZero reports whether c is the zero Column.
func (c Column) IsZero() bool {
	return c == Column{}
}

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func checkIdentifier(kind, name string) error {
	if !validIdentifier(name) {
		return &InvalidIdentifierError{Kind: kind, Name: name}
	}
	return nil
}
