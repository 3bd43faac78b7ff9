package migrate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/schemaflow/migrate/schema"
)

func TestCompileSingleTable(t *testing.T) {
	out, err := Compile(CreateTable("users", Column("id", schema.Type("string"))))
	require.NoError(t, err)

	assert.Equal(t, "create table users (\n\tid string\n);\n", out.SQL)
	assert.Equal(t, out.Schema.SQL(), out.SQL)
}

func TestCompileCreateThenDrop(t *testing.T) {
	out, err := Compile(Compose(
		CreateTable("posts", Column("id", schema.Type("string"))),
		DropTable("posts"),
	))
	require.NoError(t, err)

	assert.Empty(t, out.Schema.Tables())
	assert.Equal(t, "create table posts (\n\tid string\n);\ndrop table posts;", out.SQL)
}

func TestCompileUniqueConstraints(t *testing.T) {
	step := CreateTableFunc("accounts", func(tbl schema.TableBuilder, _ schema.Database) schema.TableBuilder {
		tbl1 := tbl.Column("id", schema.Type("string")).Column("userId", schema.Type("string"))
		id, _ := tbl1.Get("id")
		userID, _ := tbl1.Get("userId")
		return tbl1.Unique(id).Unique(userID)
	})

	out, err := Compile(step)
	require.NoError(t, err)

	want := "create table accounts (\n" +
		"\tid string,\n" +
		"\tuserId string,\n" +
		"\tunique id,\n" +
		"\tunique userId\n" +
		");\n"
	assert.Equal(t, want, out.SQL)
}

func TestCompileDuplicateTable(t *testing.T) {
	_, err := Compile(Compose(
		CreateTable("accounts", Column("id", schema.Type("string"))),
		CreateTable("accounts", Column("id", schema.Type("string"))),
	))

	var dup *schema.DuplicateTableError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "accounts", dup.Table)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, "create table accounts", stepErr.Step)
}

func TestCompileIsDeterministic(t *testing.T) {
	migration := Compose(
		CreateTable("posts", Column("id", schema.Type("string"))),
		CreateTable("users", Column("id", schema.Type("string")), Column("email", schema.Type("string"))),
		CreateTable("accounts",
			Column("id", schema.Type("string")),
			ColumnLike("userId", "users", "id"),
			Unique("id"),
			Unique("userId"),
		),
		DropTable("posts"),
	)

	first, err := Compile(migration)
	require.NoError(t, err)
	second, err := Compile(migration)
	require.NoError(t, err)

	assert.Equal(t, first.SQL, second.SQL)
	assert.Equal(t, first.Schema.TableNames(), second.Schema.TableNames())
	for _, tbl := range first.Schema.Tables() {
		other, ok := second.Schema.Table(tbl.Name())
		require.True(t, ok)
		assert.Equal(t, tbl.Columns(), other.Columns())
		assert.Equal(t, tbl.Constraints(), other.Constraints())
	}
}

func TestLaterStepsSeeEarlierSchema(t *testing.T) {
	first := Compose(
		CreateTable("posts", Column("id", schema.Type("string"))),
		CreateTable("users", Column("id", schema.Type("uuid"))),
	)
	second := Compose(
		CreateTableFunc("accounts", func(tbl schema.TableBuilder, db schema.Database) schema.TableBuilder {
			usersID, err := db.Lookup("users", "id")
			if err != nil {
				t.Fatalf("users.id should be visible: %v", err)
			}
			tbl1 := tbl.Column("id", schema.Type("string")).Column("userId", usersID)
			id, _ := tbl1.Get("id")
			userID, _ := tbl1.Get("userId")
			return tbl1.Unique(id).Unique(userID)
		}),
		DropTable("posts"),
	)

	out, err := Compile(Compose(first, second))
	require.NoError(t, err)

	want := "create table posts (\n\tid string\n);\n" +
		"create table users (\n\tid uuid\n);\n" +
		"create table accounts (\n\tid string,\n\tuserId uuid,\n\tunique id,\n\tunique userId\n);\n" +
		"drop table posts;"
	assert.Equal(t, want, out.SQL)
	assert.Equal(t, []string{"users", "accounts"}, out.Schema.TableNames())
}

func TestReferenceToDroppedTableFails(t *testing.T) {
	_, err := Compile(Compose(
		CreateTable("users", Column("id", schema.Type("string"))),
		DropTable("users"),
		CreateTable("accounts", ColumnLike("userId", "users", "id")),
	))

	assert.True(t, schema.IsUnknownTable(err))

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 2, stepErr.Index)
}

func TestUniqueBeforeColumnFails(t *testing.T) {
	_, err := Compile(CreateTable("accounts",
		Unique("id"),
		Column("id", schema.Type("string")),
	))

	var unknown *schema.UnknownColumnError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "accounts", unknown.Table)
	assert.Equal(t, "id", unknown.Column)
}

func TestDropUnknownTable(t *testing.T) {
	_, err := Compile(DropTable("ghosts"))
	assert.True(t, schema.IsUnknownTable(err))
}

func TestComposeFlattensAndSkipsNil(t *testing.T) {
	inner := Compose(CreateTable("a"), CreateTable("b"))
	outer := Compose(nil, inner, CreateTable("c"))

	steps := Steps(outer)
	require.Len(t, steps, 3)
	assert.Equal(t, StepCreateTable, KindOf(steps[0]))
	assert.Equal(t, StepPipeline, KindOf(outer))
	assert.Equal(t, StepDropTable, KindOf(DropTable("a")))
}

func TestComposeEmptyIsIdentity(t *testing.T) {
	out, err := Compile(Compose())
	require.NoError(t, err)
	assert.Empty(t, out.SQL)
	assert.Empty(t, out.Schema.Tables())

	out, err = Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, out.SQL)
}

func TestComposeStopsAtFirstFailure(t *testing.T) {
	var ran bool
	probe := StepFunc(func(db schema.Database) (schema.Database, error) {
		ran = true
		return db, nil
	})

	_, err := Compile(Compose(DropTable("missing"), probe))
	require.Error(t, err)
	assert.False(t, ran, "steps after a failure must not run")
	assert.Equal(t, StepCustom, KindOf(probe))
}

func TestStepFuncReceivesPreviousSnapshot(t *testing.T) {
	var seen []string
	probe := StepFunc(func(db schema.Database) (schema.Database, error) {
		seen = db.TableNames()
		return db, nil
	})

	_, err := Compile(Compose(CreateTable("users", Column("id", schema.Type("string"))), probe))
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, seen)
}
