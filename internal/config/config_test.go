package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "speedup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `name: ender
mesh_load: "M420 S1 Z10 ; load mesh with fade"
rules:
  load-bed-mesh:
    mode: optional
  drop-extruder-reheat:
    mode: "off"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ender", cfg.Name)
	assert.Equal(t, "M420 S1 Z10 ; load mesh with fade", cfg.MeshLoad)
	assert.Equal(t, ModeOptional, cfg.ModeFor("load-bed-mesh"))
	assert.Equal(t, ModeOff, cfg.ModeFor("drop-extruder-reheat"))
	assert.Equal(t, ModeRequired, cfg.ModeFor("skip-bed-leveling-wait"))
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "name: minimal\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMeshLoad, cfg.MeshLoad)
	assert.NotNil(t, cfg.Rules)
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()
	for _, content := range []string{"", "# only a comment\n"} {
		cfg, err := Load(writeConfig(t, content))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	}
}

func TestLoadUnknownMode(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `rules:
  load-bed-mesh:
    mode: sometimes
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "rules: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveExplicitMissing(t *testing.T) {
	t.Parallel()
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultPath)

	cfg := Default()
	cfg.Rules["load-bed-mesh"] = RuleConfig{Mode: ModeOptional}
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
