package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"002_runs.sql":  {Data: []byte("SELECT 1;")},
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"README.md":     {Data: []byte("docs")},
		"nested/x.sql":  {Data: []byte("SELECT 1;")},
		"010_index.sql": {Data: []byte("SELECT 1;")},
	}
	files, err := Versions(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_runs.sql", "010_index.sql"}, files)
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("001_init.sql"))
	assert.Equal(t, "002", versionOf("sql/002_add_runs_index.sql"))
}

func TestEmbeddedContainsSchema(t *testing.T) {
	files, err := Versions(Embedded())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_course_name_unique.sql"}, files)
}
