package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderIsPersistent(t *testing.T) {
	base := newTableBuilder("users", Empty()).Column("id", Type("string"))

	withEmail := base.Column("email", Type("string"))
	withAge := base.Column("age", Type("int"))

	require.NoError(t, withEmail.Err())
	require.NoError(t, withAge.Err())

	assert.Equal(t, []string{"id"}, base.Table().ColumnNames())
	assert.Equal(t, []string{"id", "email"}, withEmail.Table().ColumnNames())
	assert.Equal(t, []string{"id", "age"}, withAge.Table().ColumnNames())

	_, ok := withEmail.Get("age")
	assert.False(t, ok, "sibling builders must not observe each other")

	again := base.Column("email", Type("text"))
	require.NoError(t, again.Err(), "receiver must still be usable after branching")
	c, _ := again.Get("email")
	assert.Equal(t, "text", c.Type())
}

func TestBuilderDuplicateColumn(t *testing.T) {
	b := newTableBuilder("users", Empty()).
		Column("id", Type("string")).
		Column("id", Type("int"))

	var dup *DuplicateColumnError
	require.True(t, errors.As(b.Err(), &dup))
	assert.Equal(t, "users", dup.Table)
	assert.Equal(t, "id", dup.Column)
	assert.True(t, IsDuplicateColumn(b.Err()))
}

func TestBuilderErrorIsSticky(t *testing.T) {
	failed := newTableBuilder("users", Empty()).
		Column("id", Type("string")).
		Column("id", Type("string"))

	after := failed.Column("email", Type("string")).UniqueOn("id")

	assert.Equal(t, failed.Err(), after.Err())
	assert.Equal(t, []string{"id"}, after.Table().ColumnNames())
	assert.Empty(t, after.Table().Constraints())
}

func TestBuilderColumnValidatesName(t *testing.T) {
	tests := []struct {
		name   string
		column string
	}{
		{name: "empty", column: ""},
		{name: "leading digit", column: "1id"},
		{name: "whitespace", column: "user id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTableBuilder("users", Empty()).Column(tt.column, Type("string"))

			var invalid *InvalidIdentifierError
			require.True(t, errors.As(b.Err(), &invalid))
			assert.Equal(t, "column", invalid.Kind)
			assert.True(t, errors.Is(b.Err(), ErrInvalidIdentifier))
		})
	}
}

func TestBuilderColumnRequiresType(t *testing.T) {
	tests := []struct {
		name string
		typ  TypeDescriptor
	}{
		{name: "nil descriptor", typ: nil},
		{name: "empty tag", typ: Type("")},
		{name: "zero column", typ: Column{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTableBuilder("users", Empty()).Column("id", tt.typ)

			var missing *MissingTypeError
			require.True(t, errors.As(b.Err(), &missing))
			assert.Equal(t, "users", missing.Table)
			assert.Equal(t, "id", missing.Column)
			assert.ErrorIs(t, b.Err(), ErrMissingType)
			assert.Empty(t, b.Table().ColumnNames())
		})
	}
}

func TestCreateTableWithUntypedColumnEmitsNothing(t *testing.T) {
	_, err := Empty().CreateTable("users", func(tb TableBuilder, _ Database) TableBuilder {
		return tb.Column("id", nil)
	})
	assert.ErrorIs(t, err, ErrMissingType)
}

func TestBuilderUnique(t *testing.T) {
	b := newTableBuilder("accounts", Empty()).
		Column("id", Type("string")).
		Column("userId", Type("string"))

	id, _ := b.Get("id")
	userID, _ := b.Get("userId")

	out := b.Unique(id).Unique(userID)
	require.NoError(t, out.Err())

	constraints := out.Table().Constraints()
	require.Len(t, constraints, 2)
	assert.Equal(t, ConstraintUnique, constraints[0].Kind())
	assert.Equal(t, []string{"id"}, constraints[0].Columns())
	assert.Equal(t, []string{"userId"}, constraints[1].Columns())
	assert.Empty(t, b.Table().Constraints(), "receiver must not gain constraints")
}

func TestBuilderUniqueWithColumnFromEarlierSnapshot(t *testing.T) {
	withID := newTableBuilder("accounts", Empty()).Column("id", Type("string"))
	id, _ := withID.Get("id")

	out := withID.Column("userId", Type("string")).Unique(id)
	require.NoError(t, out.Err())
}

func TestBuilderUniqueUnknownColumn(t *testing.T) {
	users := newTableBuilder("users", Empty()).Column("id", Type("string"))
	foreignID, _ := users.Get("id")

	tests := []struct {
		name    string
		build   func(TableBuilder) TableBuilder
		missing string
	}{
		{
			name: "undeclared name",
			build: func(b TableBuilder) TableBuilder {
				return b.UniqueOn("email")
			},
			missing: "email",
		},
		{
			name: "column from another table",
			build: func(b TableBuilder) TableBuilder {
				return b.Unique(foreignID)
			},
			missing: "id",
		},
		{
			name: "column declared on a sibling builder",
			build: func(b TableBuilder) TableBuilder {
				sibling := b.Column("email", Type("string"))
				email, _ := sibling.Get("email")
				return b.Unique(email)
			},
			missing: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTableBuilder("accounts", Empty()).Column("id", Type("string"))
			out := tt.build(b)

			var unknown *UnknownColumnError
			require.True(t, errors.As(out.Err(), &unknown))
			assert.Equal(t, "accounts", unknown.Table)
			assert.Equal(t, tt.missing, unknown.Column)
		})
	}
}

func TestBuilderUniqueRequiresColumns(t *testing.T) {
	b := newTableBuilder("accounts", Empty()).Column("id", Type("string")).Unique()
	assert.ErrorIs(t, b.Err(), ErrEmptyConstraint)
}

func TestBuilderColumnLike(t *testing.T) {
	db, err := Empty().CreateTable("users", func(t TableBuilder, _ Database) TableBuilder {
		return t.Column("id", Type("uuid"))
	})
	require.NoError(t, err)

	b := newTableBuilder("accounts", db).ColumnLike("userId", "users", "id")
	require.NoError(t, b.Err())

	c, ok := b.Get("userId")
	require.True(t, ok)
	assert.Equal(t, "uuid", c.Type())
	assert.Equal(t, "accounts", c.Table())

	missingTable := newTableBuilder("accounts", db).ColumnLike("postId", "posts", "id")
	assert.True(t, IsUnknownTable(missingTable.Err()))

	missingColumn := newTableBuilder("accounts", db).ColumnLike("userEmail", "users", "email")
	assert.True(t, IsUnknownColumn(missingColumn.Err()))
}

func TestBuilderColumnAsTypeDescriptor(t *testing.T) {
	db, err := Empty().CreateTable("users", func(t TableBuilder, _ Database) TableBuilder {
		return t.Column("id", Type("bigint"))
	})
	require.NoError(t, err)

	usersID, err := db.Lookup("users", "id")
	require.NoError(t, err)

	b := newTableBuilder("posts", db).Column("authorId", usersID)
	c, _ := b.Get("authorId")
	assert.Equal(t, "bigint", c.Type())
	assert.Equal(t, "posts", c.Table())
}
