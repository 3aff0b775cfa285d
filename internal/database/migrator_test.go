package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFilesAreEmbeddedInOrder(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_create_erp_kv.sql", files[0])

	content, err := migrationsFS.ReadFile("migrations/" + files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "erp_kv")
}
