package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 22, cfg.Trivia.Category)
	assert.Equal(t, "multiple", cfg.Trivia.Type)
	assert.Equal(t, 10*time.Second, cfg.Trivia.Timeout)
	assert.Equal(t, 5, cfg.Trivia.MapBatchSize)
	assert.Equal(t, 50, cfg.Trivia.MaxCount)
	assert.Equal(t, 1000, cfg.Desktop.Width)
	assert.Equal(t, 600, cfg.Desktop.Height)
	assert.Equal(t, "app", cfg.Desktop.Mode)
	assert.Equal(t, "templates", cfg.Storage.LocalPath)
	assert.Equal(t, "map.html", cfg.Storage.SnapshotName)
	assert.Equal(t, "Made by: Tek Narayan Yadav, Shivam Sharma, Abhishek Kumar Singh", cfg.Map.Credits)
	assert.Empty(t, cfg.File)

	_, err = os.Stat(filepath.Join(dir, "templates"))
	assert.NoError(t, err)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := []byte("server:\n  port: 9191\ndesktop:\n  mode: none\nstorage:\n  type: none\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))
	t.Setenv("QUIZ_TRIVIA_CATEGORY", "9")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "none", cfg.Desktop.Mode)
	assert.Equal(t, 9, cfg.Trivia.Category)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestLoadConfigRejectsInvalidMode(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("desktop:\n  mode: kiosk\n"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigStorageDirError(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocker"), []byte("x"), 0644))
	yaml := []byte("storage:\n  type: local\n  local_path: blocker/maps\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "storage dir")
}
