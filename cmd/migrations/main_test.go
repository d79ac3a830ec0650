package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMigration(t *testing.T) {
	dir := t.TempDir()
	upSQL := []byte("CREATE TABLE things (id INT);")
	downSQL := []byte("DROP TABLE things;")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_create_things.up.sql"), upSQL, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_create_things.down.sql"), downSQL, 0o644))

	content, err := findMigration(dir, "000001_create_things.up")
	require.NoError(t, err)
	assert.Equal(t, upSQL, content)

	content, err = findMigration(dir, "create_things.down")
	require.NoError(t, err)
	assert.Equal(t, downSQL, content)

	_, err = findMigration(dir, "000002_missing.up")
	assert.Error(t, err)
}
