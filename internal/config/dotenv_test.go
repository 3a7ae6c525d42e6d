package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotenv(t *testing.T) {
	path := writeFile(t, ".env", `# responder
CHATWIDGET_T_URL=http://localhost:5000

CHATWIDGET_T_DOUBLE="quoted value"
CHATWIDGET_T_SINGLE='single'
export CHATWIDGET_T_EXPORTED=yes
  CHATWIDGET_T_SPACED = spaced
not a pair
=novalue
`)
	for _, k := range []string{"CHATWIDGET_T_URL", "CHATWIDGET_T_DOUBLE", "CHATWIDGET_T_SINGLE", "CHATWIDGET_T_EXPORTED", "CHATWIDGET_T_SPACED"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	require.NoError(t, LoadDotenv(path))

	assert.Equal(t, "http://localhost:5000", os.Getenv("CHATWIDGET_T_URL"))
	assert.Equal(t, "quoted value", os.Getenv("CHATWIDGET_T_DOUBLE"))
	assert.Equal(t, "single", os.Getenv("CHATWIDGET_T_SINGLE"))
	assert.Equal(t, "yes", os.Getenv("CHATWIDGET_T_EXPORTED"))
	assert.Equal(t, "spaced", os.Getenv("CHATWIDGET_T_SPACED"))
}

func TestLoadDotenvKeepsExistingValues(t *testing.T) {
	path := writeFile(t, ".env", "CHATWIDGET_T_KEEP=from-file\n")
	t.Setenv("CHATWIDGET_T_KEEP", "from-env")

	require.NoError(t, LoadDotenv(path))

	assert.Equal(t, "from-env", os.Getenv("CHATWIDGET_T_KEEP"))
}

func TestLoadDotenvMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), "nope.env")))
}
