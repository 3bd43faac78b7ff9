package history

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/schemaflow/migrate"
	"github.com/satishbabariya/schemaflow/migrate/schema"
)

func compileAccounts(t *testing.T, userIDType string) migrate.Result {
	t.Helper()
	out, err := migrate.Compile(migrate.Compose(
		migrate.CreateTable("users", migrate.Column("id", schema.Type(userIDType))),
		migrate.CreateTable("accounts",
			migrate.Column("id", schema.Type("string")),
			migrate.ColumnLike("userId", "users", "id"),
			migrate.Unique("id", "userId"),
		),
	))
	require.NoError(t, err)
	return out
}

func newTestStore() (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "out")
	store.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	return store, fs
}

func TestSnapshot(t *testing.T) {
	out := compileAccounts(t, "uuid")

	snap := Snapshot(out.Schema)
	require.Len(t, snap.Tables, 2)
	assert.Equal(t, "accounts", snap.Tables[1].Name)
	assert.Equal(t, []ColumnSnapshot{{Name: "id", Type: "string"}, {Name: "userId", Type: "uuid"}}, snap.Tables[1].Columns)
	assert.Equal(t, []ConstraintSnapshot{{Kind: "unique", Columns: []string{"id", "userId"}}}, snap.Tables[1].Constraints)
}

func TestSerializeSchemaRoundTrip(t *testing.T) {
	out := compileAccounts(t, "uuid")

	data, err := SerializeSchema(out.Schema)
	require.NoError(t, err)
	assert.Contains(t, data, `"name": "accounts"`)

	back, err := DeserializeSchema(data)
	require.NoError(t, err)
	assert.Equal(t, Snapshot(out.Schema), *back)

	empty, err := DeserializeSchema("")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestChecksumIsStable(t *testing.T) {
	assert.Equal(t, Checksum("drop table posts;"), Checksum("drop table posts;"))
	assert.NotEqual(t, Checksum("drop table posts;"), Checksum("drop table users;"))
	assert.Len(t, Checksum(""), 16)
}

func TestStoreWriteAndRead(t *testing.T) {
	store, fs := newTestStore()
	out := compileAccounts(t, "uuid")

	manifest, err := store.Write("accounts", out)
	require.NoError(t, err)
	assert.Equal(t, Checksum(out.SQL), manifest.Checksum)
	require.Len(t, manifest.Statements, 2)
	assert.Equal(t, "CreateTable", manifest.Statements[1].Kind)
	assert.Equal(t, "accounts", manifest.Statements[1].Table)

	script, err := afero.ReadFile(fs, "out/accounts.sql")
	require.NoError(t, err)
	assert.Equal(t, out.SQL, string(script))

	read, readScript, err := store.Read("accounts")
	require.NoError(t, err)
	assert.Equal(t, manifest.Checksum, read.Checksum)
	assert.Equal(t, out.SQL, readScript)
	assert.True(t, manifest.CompiledAt.Equal(read.CompiledAt))
}

func TestStoreVerify(t *testing.T) {
	store, fs := newTestStore()
	out := compileAccounts(t, "uuid")

	_, err := store.Write("accounts", out)
	require.NoError(t, err)
	require.NoError(t, store.Verify("accounts", out))

	t.Run("source changed", func(t *testing.T) {
		changed := compileAccounts(t, "bigint")

		err := store.Verify("accounts", changed)
		var drift *DriftError
		require.True(t, errors.As(err, &drift))
		assert.Equal(t, "accounts", drift.Name)
		assert.NotEmpty(t, drift.Reasons)
	})

	t.Run("script edited", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "out/accounts.sql", []byte(out.SQL+"\n-- edited"), 0o644))

		err := store.Verify("accounts", out)
		var drift *DriftError
		require.True(t, errors.As(err, &drift))
		assert.Len(t, drift.Reasons, 1)
	})
}

func TestStoreReadMissing(t *testing.T) {
	store, _ := newTestStore()

	_, _, err := store.Read("missing")
	assert.ErrorIs(t, err, ErrNoManifest)
}
