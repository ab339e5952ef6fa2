package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	migrations, err := Load(files, "sql")
	require.NoError(t, err)
	require.Len(t, migrations, 4)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "users", migrations[0].Name)
	assert.Equal(t, "library", migrations[2].Name)
	assert.Contains(t, migrations[2].SQL, "colors TEXT[]")
	assert.Equal(t, "user_start_color", migrations[3].Name)
}

func TestLoadOrdersAndSkips(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_late.sql":  {Data: []byte("SELECT 10;")},
		"m/002_early.sql": {Data: []byte("SELECT 2;")},
		"m/README.md":     {Data: []byte("docs")},
		"m/notes.sql":     {Data: []byte("SELECT 0;")},
	}
	migrations, err := Load(fsys, "m")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 2, migrations[0].Version)
	assert.Equal(t, "late", migrations[1].Name)
}

func TestLoadDuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/001_a.sql": {Data: []byte("SELECT 1;")},
		"m/001_b.sql": {Data: []byte("SELECT 1;")},
	}
	_, err := Load(fsys, "m")
	assert.ErrorContains(t, err, "share version 1")
}

func TestPending(t *testing.T) {
	all := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}
	pending := Pending(all, map[int]bool{1: true, 3: true})
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].Name)
	assert.Empty(t, Pending(all, map[int]bool{1: true, 2: true, 3: true}))
}
