package schema

import (
	"errors"
	"fmt"
)

// Error kinds for schema operations. Each typed error below matches one of
// these through errors.Is.
var (
	// ErrDuplicateTable is returned when a table name is already taken.
	ErrDuplicateTable = errors.New("duplicate table")

	// ErrUnknownTable is returned when a table does not exist.
	ErrUnknownTable = errors.New("unknown table")

	// ErrDuplicateColumn is returned when a column name is already taken in its table.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrUnknownColumn is returned when a column does not exist in its table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidIdentifier is returned for empty or malformed names.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrMissingType is returned when a column is declared without a type.
	ErrMissingType = errors.New("missing column type")

	// ErrEmptyConstraint is returned when a constraint names no columns.
	ErrEmptyConstraint = errors.New("constraint references no columns")

	// ErrBuilderMismatch is returned when a build function hands back a
	// builder that belongs to a different table.
	ErrBuilderMismatch = errors.New("builder belongs to another table")
)

// DuplicateTableError is returned by CreateTable when the table already exists.
type DuplicateTableError struct {
	Table string
}

// Error implements the error interface.
func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Table)
}

// Is checks if the error is ErrDuplicateTable.
func (e *DuplicateTableError) Is(target error) bool {
	return target == ErrDuplicateTable
}

// UnknownTableError is returned when a referenced table is absent.
type UnknownTableError struct {
	Table string
}

// Error implements the error interface.
func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %q does not exist", e.Table)
}

// Is checks if the error is ErrUnknownTable.
func (e *UnknownTableError) Is(target error) bool {
	return target == ErrUnknownTable
}

// DuplicateColumnError is returned when a column is declared twice on one table.
type DuplicateColumnError struct {
	Table  string
	Column string
}

// Error implements the error interface.
func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q already exists on table %q", e.Column, e.Table)
}

// Is checks if the error is ErrDuplicateColumn.
func (e *DuplicateColumnError) Is(target error) bool {
	return target == ErrDuplicateColumn
}

// UnknownColumnError is returned when a column reference does not resolve.
type UnknownColumnError struct {
	Table  string
	Column string
}

// Error implements the error interface.
func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist on table %q", e.Column, e.Table)
}

// Is checks if the error is ErrUnknownColumn.
func (e *UnknownColumnError) Is(target error) bool {
	return target == ErrUnknownColumn
}

// InvalidIdentifierError is returned when a table or column name is not a
// valid identifier.
type InvalidIdentifierError struct {
	Kind string // "table" or "column"
	Name string
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s name must not be empty", e.Kind)
	}
	return fmt.Sprintf("invalid %s name %q", e.Kind, e.Name)
}

// Is checks if the error is ErrInvalidIdentifier.
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// MissingTypeError is returned when a column is declared with a nil type
// descriptor or an empty type name.
type MissingTypeError struct {
	Table  string
	Column string
}

// Error implements the error interface.
func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("column %s.%s has no type", e.Table, e.Column)
}

// Is checks if the error is ErrMissingType.
func (e *MissingTypeError) Is(target error) bool {
	return target == ErrMissingType
}

// IsDuplicateTable checks if an error is a duplicate table error.
func IsDuplicateTable(err error) bool {
	return errors.Is(err, ErrDuplicateTable)
}

// IsUnknownTable checks if an error is an unknown table error.
func IsUnknownTable(err error) bool {
	return errors.Is(err, ErrUnknownTable)
}

// IsDuplicateColumn checks if an error is a duplicate column error.
func IsDuplicateColumn(err error) bool {
	return errors.Is(err, ErrDuplicateColumn)
}

// IsUnknownColumn checks if an error is an unknown column error.
func IsUnknownColumn(err error) bool {
	return errors.Is(err, ErrUnknownColumn)
}
