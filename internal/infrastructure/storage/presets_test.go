package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePresetFile(t *testing.T, dir, id string) {
	t.Helper()
	content := `{"id":"` + id + `","name":"` + id + `","description":"d","difficulty":"Beginner","graph":{"nodes":[],"edges":[]},"traffic_profile":{"users":10,"requests_per_user":1}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(content), 0o644))
}

func TestPresetCatalog_ListAndGet(t *testing.T) {
	dir := t.TempDir()
	writePresetFile(t, dir, "booking_system")
	writePresetFile(t, dir, "url_shortener")

	c := NewPresetCatalog(dir)

	list, err := c.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "booking_system", list[0].ID)
	assert.Equal(t, "url_shortener", list[1].ID)

	preset, err := c.Get("booking_system")
	require.NoError(t, err)
	assert.Equal(t, "Beginner", preset.Difficulty)
}

func TestPresetCatalog_RejectsInvalidID(t *testing.T) {
	c := NewPresetCatalog(t.TempDir())
	_, err := c.Get("../../etc/passwd")
	assert.Error(t, err)
}

func TestPresetCatalog_GetMissingReturnsError(t *testing.T) {
	c := NewPresetCatalog(t.TempDir())
	_, err := c.Get("no_such_preset")
	assert.Error(t, err)
}

func TestPresetCatalog_ListOnMissingDirReturnsEmpty(t *testing.T) {
	c := NewPresetCatalog(filepath.Join(t.TempDir(), "does-not-exist"))
	list, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
