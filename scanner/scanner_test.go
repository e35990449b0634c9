package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	files := map[string]string{
		"benchy.gcode":          "G28",
		"cube.GCODE":            "G28",
		"part.gco":              "G28",
		"notes.txt":             "This is a text file",
		"plates/plate1.gcode":   "G28",
		".thumbnails/old.gcode": "G28",
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}

	scannedFiles, err := New(tempDir, Extensions...).Scan()
	require.NoError(t, err)

	var paths []string
	for _, file := range scannedFiles {
		paths = append(paths, file.Path)
		assert.Greater(t, file.Size, int64(0), "File size should be greater than 0")
	}

	assert.Equal(t, []string{
		filepath.Join(tempDir, "benchy.gcode"),
		filepath.Join(tempDir, "cube.GCODE"),
		filepath.Join(tempDir, "part.gco"),
		filepath.Join(tempDir, "plates/plate1.gcode"),
	}, paths)
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()
	_, err := New(filepath.Join(t.TempDir(), "missing"), Extensions...).Scan()
	assert.Error(t, err)
}

func TestIsTarget(t *testing.T) {
	t.Parallel()
	s := New(".", Extensions...)
	assert.True(t, s.IsTarget("a/b/print.gcode"))
	assert.True(t, s.IsTarget("print.G"))
	assert.False(t, s.IsTarget("print.stl"))
	assert.True(t, New(".").IsTarget("anything.bin"))
}
