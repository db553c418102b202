// Package run records what one edakit invocation produced.
package run

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/utils"
	"github.com/google/uuid"
)

const manifestFileName = "manifest.json"

// Manifest describes a single analysis run persisted next to its figures.
type Manifest struct {
	ID         string          `json:"id"`
	Command    string          `json:"command"`
	Input      string          `json:"input"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Figures    []render.Figure `json:"figures"`
	// Error is set when the run failed after writing some figures.
	Error string `json:"error,omitempty"`

	// Not serialized: directory the manifest is written to.
	dir string `json:"-"`
}

// New starts a manifest for command over input, to be saved into dir.
func New(command, input, dir string) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Command:   command,
		Input:     input,
		StartedAt: time.Now(),
		dir:       dir,
	}
}

// Dir returns the directory the manifest is saved to.
func (m *Manifest) Dir() string { return m.dir }

// Path returns the manifest file path.
func (m *Manifest) Path() string { return filepath.Join(m.dir, manifestFileName) }

// AddFigures appends written figures.
func (m *Manifest) AddFigures(figs ...render.Figure) {
	m.Figures = append(m.Figures, figs...)
}

// Save stamps the finish time and writes manifest.json atomically.
func (m *Manifest) Save() error {
	if m.dir == "" {
		return errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(m.dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	m.FinishedAt = time.Now()
	if m.Figures == nil {
		m.Figures = []render.Figure{}
	}
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(m.Path(), data)
}

// Load reads manifest.json from dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.dir = dir
	return &m, nil
}
