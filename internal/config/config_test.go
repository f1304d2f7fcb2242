package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "lookup:\n  max_words: 3\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Lookup.MaxWords)
	assert.Equal(t, 20, cfg.Lookup.MaxNames)
	assert.True(t, cfg.Lookup.KanjiFallback)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "utf-8", cfg.Data.Encoding)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "lookup: [\n"},
		{"negative budget", "lookup:\n  max_translate: -1\n"},
		{"unknown encoding", "data:\n  encoding: latin-1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.Data.Dir = "/srv/yomi"
	cfg.Data.Encoding = "euc-jp"
	cfg.Display.HidePOS = true
	cfg.Display.KanjiInfo = []string{"H", "U"}

	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Lookup.MaxWords = 0
	cfg.Lookup.MaxNames = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_words")
	assert.Contains(t, err.Error(), "max_names")

	cfg = Default()
	cfg.Data.Encoding = "Shift_JIS"
	assert.NoError(t, cfg.Validate())
}

func TestDataDir(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/cfg", "data"), cfg.DataDir("/cfg"))

	cfg.Data.Dir = "/opt/dict"
	assert.Equal(t, "/opt/dict", cfg.DataDir("/cfg"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg.Data.Dir = "~/dict"
	assert.Equal(t, filepath.Join(home, "dict"), cfg.DataDir("/cfg"))
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "yomi")
	cfg := Default()
	require.NoError(t, EnsureConfigDir(dir, cfg))
	assert.DirExists(t, filepath.Join(dir, "data"))

	cfg.Data.Dir = filepath.Join(t.TempDir(), "elsewhere")
	require.NoError(t, EnsureConfigDir(dir, cfg))
	assert.DirExists(t, cfg.Data.Dir)
}
