package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/schemaflow/migrate/history"
)

func users(cols ...history.ColumnSnapshot) history.TableSnapshot {
	return history.TableSnapshot{Name: "users", Columns: cols}
}

func col(name, typ string) history.ColumnSnapshot {
	return history.ColumnSnapshot{Name: name, Type: typ}
}

func TestDiffIdentical(t *testing.T) {
	s := history.SchemaSnapshot{Tables: []history.TableSnapshot{users(col("id", "string"))}}

	result := Diff(s, s)
	assert.True(t, result.IsEmpty())
	assert.True(t, result.IsSafe())
}

func TestDiffTables(t *testing.T) {
	from := history.SchemaSnapshot{Tables: []history.TableSnapshot{
		{Name: "posts", Columns: []history.ColumnSnapshot{col("id", "string")}},
	}}
	to := history.SchemaSnapshot{Tables: []history.TableSnapshot{users(col("id", "string"))}}

	result := Diff(from, to)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, ChangeTypeCreateTable, result.Changes[0].Type)
	assert.Equal(t, "users", result.Changes[0].Table)
	assert.Equal(t, ChangeTypeDropTable, result.Changes[1].Type)
	assert.Equal(t, "posts", result.Changes[1].Table)
	assert.False(t, result.IsSafe())
}

func TestDiffColumns(t *testing.T) {
	from := history.SchemaSnapshot{Tables: []history.TableSnapshot{
		users(col("id", "string"), col("email", "string"), col("age", "int")),
	}}
	to := history.SchemaSnapshot{Tables: []history.TableSnapshot{
		users(col("id", "uuid"), col("email", "string"), col("name", "string")),
	}}

	result := Diff(from, to)
	assert.Equal(t, []string{
		"change type of users.id from string to uuid",
		"add column users.name string",
		"drop column users.age",
	}, result.Descriptions())
}

func TestDiffColumnOrder(t *testing.T) {
	from := history.SchemaSnapshot{Tables: []history.TableSnapshot{users(col("a", "string"), col("b", "string"))}}
	to := history.SchemaSnapshot{Tables: []history.TableSnapshot{users(col("b", "string"), col("a", "string"))}}

	result := Diff(from, to)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, ChangeTypeReorderColumns, result.Changes[0].Type)
	assert.True(t, result.IsSafe())
}

func TestDiffConstraints(t *testing.T) {
	from := users(col("id", "string"), col("email", "string"))
	from.Constraints = []history.ConstraintSnapshot{{Kind: "unique", Columns: []string{"id"}}}
	to := users(col("id", "string"), col("email", "string"))
	to.Constraints = []history.ConstraintSnapshot{{Kind: "unique", Columns: []string{"id", "email"}}}

	result := Diff(
		history.SchemaSnapshot{Tables: []history.TableSnapshot{from}},
		history.SchemaSnapshot{Tables: []history.TableSnapshot{to}},
	)
	assert.Equal(t, []string{
		"add unique (id, email) on users",
		"drop unique (id) on users",
	}, result.Descriptions())
}
