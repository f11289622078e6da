package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, EmptySectionsOmit, cfg.EmptySections)
	assert.Equal(t, PendingSplitFixme, cfg.PendingSplit)
	assert.Equal(t, 25, cfg.MinFileColumn)
	assert.Equal(t, "-", cfg.Output)
	assert.False(t, cfg.GetNoColor())
	assert.False(t, cfg.GetVerbose())
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", `
noColor: true
emptySections: placeholder
minFileColumn: 40
output: report.txt
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.GetNoColor())
	assert.Equal(t, EmptySectionsPlaceholder, cfg.EmptySections)
	assert.Equal(t, 40, cfg.MinFileColumn)
	assert.Equal(t, "report.txt", cfg.Output)
	// Unset fields keep their defaults.
	assert.Equal(t, PendingSplitFixme, cfg.PendingSplit)
}

func TestLoadConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".specviewrc.json", `{"verbose": true, "pendingSplit": "none"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.GetVerbose())
	assert.Equal(t, PendingSplitNone, cfg.PendingSplit)
}

func TestLoadConfigRejectsBadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "emptySections: sometimes\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emptySections")

	path = writeFile(t, dir, "bad2.yaml", "pendingSplit: whatever\n")
	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pendingSplit")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFindAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".specview.yaml", "minFileColumn: 30\n")

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.MinFileColumn)
}

func TestFindAndLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		NoColor:       BoolPtr(true),
		EmptySections: EmptySectionsPlaceholder,
		MinFileColumn: 50,
	}

	merged := base.Merge(override)
	assert.True(t, merged.GetNoColor())
	assert.Equal(t, EmptySectionsPlaceholder, merged.EmptySections)
	assert.Equal(t, 50, merged.MinFileColumn)
	// Fields the override leaves unset survive from the base.
	assert.Equal(t, PendingSplitFixme, merged.PendingSplit)
	assert.Equal(t, "-", merged.Output)

	// The receiver is never mutated.
	assert.Equal(t, EmptySectionsOmit, base.EmptySections)

	assert.Equal(t, base, base.Merge(nil))
}

func TestMergeBoolPointers(t *testing.T) {
	base := &Config{NoColor: BoolPtr(true)}

	// An unset pointer does not clobber the base value.
	merged := base.Merge(&Config{})
	assert.True(t, merged.GetNoColor())

	// An explicit false does.
	merged = base.Merge(&Config{NoColor: BoolPtr(false)})
	assert.False(t, merged.GetNoColor())
}
