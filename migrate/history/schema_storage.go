// Package history persists compiled migrations: the DDL script, a JSON
// manifest describing it, and a serialized snapshot of the final schema.
package history

import (
	"encoding/json"
	"fmt"

	"github.com/satishbabariya/schemaflow/migrate/schema"
)

// SchemaSnapshot is the serializable form of a schema.Database.
type SchemaSnapshot struct {
	Tables []TableSnapshot `json:"tables"`
}

// TableSnapshot is the serializable form of a schema.Table.
type TableSnapshot struct {
	Name        string               `json:"name"`
	Columns     []ColumnSnapshot     `json:"columns"`
	Constraints []ConstraintSnapshot `json:"constraints,omitempty"`
}

// ColumnSnapshot is the serializable form of a schema.Column.
type ColumnSnapshot struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ConstraintSnapshot is the serializable form of a schema.Constraint.
type ConstraintSnapshot struct {
	Kind    string   `json:"kind"`
	Columns []string `json:"columns"`
}

// Snapshot captures the tables of db in creation order.
func Snapshot(db schema.Database) SchemaSnapshot {
	tables := db.Tables()
	out := SchemaSnapshot{Tables: make([]TableSnapshot, 0, len(tables))}

	for _, t := range tables {
		ts := TableSnapshot{Name: t.Name()}
		for _, c := range t.Columns() {
			ts.Columns = append(ts.Columns, ColumnSnapshot{Name: c.Name(), Type: c.Type()})
		}
		for _, c := range t.Constraints() {
			ts.Constraints = append(ts.Constraints, ConstraintSnapshot{Kind: string(c.Kind()), Columns: c.Columns()})
		}
		out.Tables = append(out.Tables, ts)
	}

	return out
}

// SerializeSchema serializes the final schema of db to indented JSON.
func SerializeSchema(db schema.Database) (string, error) {
	data, err := json.MarshalIndent(Snapshot(db), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize schema: %w", err)
	}
	return string(data), nil
}

// DeserializeSchema deserializes a JSON string produced by SerializeSchema.
func DeserializeSchema(jsonStr string) (*SchemaSnapshot, error) {
	if jsonStr == "" {
		return nil, nil
	}
	var snapshot SchemaSnapshot
	if err := json.Unmarshal([]byte(jsonStr), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to deserialize schema: %w", err)
	}
	return &snapshot, nil
}
