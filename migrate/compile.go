package migrate

import (
	"github.com/satishbabariya/schemaflow/migrate/schema"
)

// Result is a compiled migration: the final schema and the DDL script that
// produces it.
type Result struct {
	Schema schema.Database
	SQL    string
}

// Compile applies step to the empty database. On failure no script is
// returned; the error is the first failing step's, matchable with
// errors.Is and errors.As.
func Compile(step Step) (Result, error) {
	if step == nil {
		step = Compose()
	}
	if _, ok := step.(*pipeline); !ok {
		step = Compose(step)
	}

	db, err := step.Apply(schema.Empty())
	if err != nil {
		return Result{}, err
	}
	return Result{Schema: db, SQL: db.SQL()}, nil
}
