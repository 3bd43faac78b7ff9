// Package diff compares two schema snapshots.
package diff

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/schemaflow/migrate/history"
)

// ChangeType represents the type of change
type ChangeType string

const (
	ChangeTypeCreateTable    ChangeType = "CreateTable"
	ChangeTypeDropTable      ChangeType = "DropTable"
	ChangeTypeAddColumn      ChangeType = "AddColumn"
	ChangeTypeDropColumn     ChangeType = "DropColumn"
	ChangeTypeAlterColumn    ChangeType = "AlterColumn"
	ChangeTypeAddConstraint  ChangeType = "AddConstraint"
	ChangeTypeDropConstraint ChangeType = "DropConstraint"
	ChangeTypeReorderColumns ChangeType = "ReorderColumns"
)

// Change represents a single schema change
type Change struct {
	Type        ChangeType
	Table       string
	Column      string
	Description string
	IsSafe      bool
}

// DiffResult holds the changes that turn one snapshot into another.
type DiffResult struct {
	Changes []Change
}

// IsEmpty reports whether the snapshots are identical.
func (r *DiffResult) IsEmpty() bool {
	return len(r.Changes) == 0
}

// IsSafe reports whether applying the changes loses no data.
func (r *DiffResult) IsSafe() bool {
	for _, c := range r.Changes {
		if !c.IsSafe {
			return false
		}
	}
	return true
}

// Descriptions returns one line per change.
func (r *DiffResult) Descriptions() []string {
	out := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		out[i] = c.Description
	}
	return out
}

// Diff compares from against to. Tables present only in to are created,
// tables present only in from are dropped, and tables in both are compared
// column by column. Changes follow the table order of to, with drops last.
func Diff(from, to history.SchemaSnapshot) *DiffResult {
	result := &DiffResult{Changes: []Change{}}

	fromTables := indexTables(from)
	toTables := indexTables(to)

	for _, t := range to.Tables {
		old, ok := fromTables[t.Name]
		if !ok {
			result.Changes = append(result.Changes, Change{
				Type:        ChangeTypeCreateTable,
				Table:       t.Name,
				Description: fmt.Sprintf("create table %s", t.Name),
				IsSafe:      true,
			})
			continue
		}
		result.Changes = append(result.Changes, diffTable(old, t)...)
	}

	for _, t := range from.Tables {
		if _, ok := toTables[t.Name]; !ok {
			result.Changes = append(result.Changes, Change{
				Type:        ChangeTypeDropTable,
				Table:       t.Name,
				Description: fmt.Sprintf("drop table %s", t.Name),
			})
		}
	}

	return result
}

func indexTables(s history.SchemaSnapshot) map[string]history.TableSnapshot {
	m := make(map[string]history.TableSnapshot, len(s.Tables))
	for _, t := range s.Tables {
		m[t.Name] = t
	}
	return m
}

func diffTable(from, to history.TableSnapshot) []Change {
	var changes []Change

	fromCols := make(map[string]string, len(from.Columns))
	for _, c := range from.Columns {
		fromCols[c.Name] = c.Type
	}
	toCols := make(map[string]struct{}, len(to.Columns))

	for _, c := range to.Columns {
		toCols[c.Name] = struct{}{}
		oldType, ok := fromCols[c.Name]
		switch {
		case !ok:
			changes = append(changes, Change{
				Type:        ChangeTypeAddColumn,
				Table:       to.Name,
				Column:      c.Name,
				Description: fmt.Sprintf("add column %s.%s %s", to.Name, c.Name, c.Type),
				IsSafe:      true,
			})
		case oldType != c.Type:
			changes = append(changes, Change{
				Type:        ChangeTypeAlterColumn,
				Table:       to.Name,
				Column:      c.Name,
				Description: fmt.Sprintf("change type of %s.%s from %s to %s", to.Name, c.Name, oldType, c.Type),
			})
		}
	}

	for _, c := range from.Columns {
		if _, ok := toCols[c.Name]; !ok {
			changes = append(changes, Change{
				Type:        ChangeTypeDropColumn,
				Table:       to.Name,
				Column:      c.Name,
				Description: fmt.Sprintf("drop column %s.%s", to.Name, c.Name),
			})
		}
	}

	// Same columns in a different order still change the emitted DDL.
	if len(changes) == 0 && !sameOrder(from.Columns, to.Columns) {
		changes = append(changes, Change{
			Type:        ChangeTypeReorderColumns,
			Table:       to.Name,
			Description: fmt.Sprintf("reorder columns of %s", to.Name),
			IsSafe:      true,
		})
	}

	fromCons := constraintSet(from.Constraints)
	toCons := constraintSet(to.Constraints)
	for _, c := range to.Constraints {
		if _, ok := fromCons[constraintKey(c)]; !ok {
			changes = append(changes, Change{
				Type:        ChangeTypeAddConstraint,
				Table:       to.Name,
				Description: "add " + describeConstraint(to.Name, c),
				IsSafe:      true,
			})
		}
	}
	for _, c := range from.Constraints {
		if _, ok := toCons[constraintKey(c)]; !ok {
			changes = append(changes, Change{
				Type:        ChangeTypeDropConstraint,
				Table:       to.Name,
				Description: "drop " + describeConstraint(to.Name, c),
				IsSafe:      true,
			})
		}
	}

	return changes
}

func sameOrder(a, b []history.ColumnSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}

func constraintKey(c history.ConstraintSnapshot) string {
	return c.Kind + "(" + strings.Join(c.Columns, ",") + ")"
}

func constraintSet(cs []history.ConstraintSnapshot) map[string]struct{} {
	m := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		m[constraintKey(c)] = struct{}{}
	}
	return m
}

func describeConstraint(table string, c history.ConstraintSnapshot) string {
	return fmt.Sprintf("%s (%s) on %s", c.Kind, strings.Join(c.Columns, ", "), table)
}
