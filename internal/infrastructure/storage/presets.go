package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// presetIDPattern mirrors the Python PRESET_ID_PATTERN guard in
// api/schemas.py: preset ids are filesystem-derived, so anything outside
// this shape is rejected before it ever reaches a filepath.Join.
var presetIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Preset is a bundled example topology a user can load into a workspace,
// condensed from the Python SystemDesign model down to the fields this
// service actually surfaces: the learning stages/FAQ content belongs to a
// content-authoring concern this repository does not implement.
type Preset struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Difficulty     string          `json:"difficulty"`
	Graph          json.RawMessage `json:"graph"`
	TrafficProfile json.RawMessage `json:"traffic_profile"`
}

// PresetCatalog serves the bundled JSON preset files under dir, caching
// parsed presets by id the way the original DesignRegistry caches
// SystemDesign objects.
type PresetCatalog struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Preset
}

// NewPresetCatalog creates a catalog reading presets from dir.
func NewPresetCatalog(dir string) *PresetCatalog {
	return &PresetCatalog{
		dir:   dir,
		cache: make(map[string]*Preset),
	}
}

// List returns every valid *.json preset file under dir, sorted by id.
func (c *PresetCatalog) List() ([]*Preset, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Preset{}, nil
		}
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		if presetIDPattern.MatchString(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]*Preset, 0, len(ids))
	for _, id := range ids {
		preset, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, preset)
	}
	return out, nil
}

// Get loads the preset with the given id. Invalid ids (per presetIDPattern)
// are rejected before any path is built, matching the original's defense
// against path traversal through the preset name.
func (c *PresetCatalog) Get(id string) (*Preset, error) {
	if !presetIDPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid preset id: %q", id)
	}

	c.mu.RLock()
	if p, ok := c.cache[id]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	path := filepath.Join(c.dir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset not found: %s", id)
	}

	var preset Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("preset %s could not be loaded: %w", id, err)
	}
	if preset.ID == "" {
		preset.ID = id
	}

	c.mu.Lock()
	c.cache[id] = &preset
	c.mu.Unlock()

	return &preset, nil
}
