package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "0001", Version("migrations/0001_init.sql"))
	assert.Equal(t, "0002", Version("0002_vouchers_and_sequences.sql"))
	assert.Equal(t, "0003", Version("0003.sql"))
}

func TestFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.sql", "0001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0000_dir.sql"), 0o755))

	files, err := Files(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "0001_a.sql"), filepath.Join(dir, "0002_b.sql")}, files)
}

func TestFiles_ShippedMigrations(t *testing.T) {
	files, err := Files(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001", Version(files[0]))
}
