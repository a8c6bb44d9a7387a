package mainwindow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePathKeepsEncodableName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crop.jpg")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := savePath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.FileExists(t, path)
}

func TestSavePathRemovesPlaceholder(t *testing.T) {
	for _, name := range []string{"crop", "crop.webp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, nil, 0o644))

			got, err := savePath(path)
			require.NoError(t, err)
			assert.Equal(t, path+".png", got)
			assert.NoFileExists(t, path, "empty file created by the dialog is removed")
		})
	}
}

func TestSavePathMissingPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crop")
	got, err := savePath(path)
	require.NoError(t, err)
	assert.Equal(t, path+".png", got)
}
