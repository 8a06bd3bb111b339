package migrations_test

import (
	"io/fs"
	"math"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/wepredict/go-api-server/migrations"
)

func TestEmbeddedMigrationsCollect(t *testing.T) {
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	collected, err := goose.CollectMigrations(".", 0, math.MaxInt64)
	require.NoError(t, err)
	require.Len(t, collected, 2)

	var versions []int64
	for _, m := range collected {
		versions = append(versions, m.Version)
		require.True(t, strings.HasSuffix(m.Source, ".sql"))
	}
	require.Equal(t, []int64{1, 2}, versions)
}

// Each file must carry up and down sections and balanced statement
// markers; a mismatch would only surface on server startup otherwise.
func TestEmbeddedMigrationsWellFormed(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			require.True(t, strings.HasSuffix(entry.Name(), ".sql"))

			raw, err := fs.ReadFile(migrations.FS, entry.Name())
			require.NoError(t, err)
			content := string(raw)

			require.Contains(t, content, "-- +goose Up")
			require.Contains(t, content, "-- +goose Down")
			require.Equal(t,
				strings.Count(content, "-- +goose StatementBegin"),
				strings.Count(content, "-- +goose StatementEnd"))
		})
	}
}

func TestStoredFunctionsMatchStoreCalls(t *testing.T) {
	raw, err := fs.ReadFile(migrations.FS, "00002_user_functions.sql")
	require.NoError(t, err)
	content := string(raw)

	// The store calls these by name; a rename here must be deliberate.
	for _, fn := range []string{
		"register_user(",
		"user_by_email(",
		"register_user_google(",
		"login_google(",
		"user_by_id(",
	} {
		require.Contains(t, content, "CREATE FUNCTION "+fn)
	}
}
