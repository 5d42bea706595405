package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/KaramelBytes/pareto-cli/internal/source"
	"github.com/KaramelBytes/pareto-cli/internal/utils"
)

// FileName is the name of the file that marks a project directory.
const FileName = "project.json"

// Project is a named list of saved sources persisted on disk.
type Project struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Sources     map[string]*Source `json:"sources"`
	Config      *ProjectConfig     `json:"config"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// Not serialized: on-disk location of the project.json
	rootDir string `json:"-"`
}

// ProjectConfig overrides global analysis defaults for one project.
// Empty fields inherit from the global config.
type ProjectConfig struct {
	Language string `json:"language,omitempty"`
}

// NewProject constructs an in-memory project. Call Save() to persist.
func NewProject(name, description, rootDir string) *Project {
	now := time.Now()
	return &Project{
		Name:        name,
		Description: description,
		Sources:     make(map[string]*Source),
		Config:      &ProjectConfig{},
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
	}
}

// LoadProject loads a project.json from the provided directory.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("project not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if p.Sources == nil {
		p.Sources = make(map[string]*Source)
	}
	if p.Config == nil {
		p.Config = &ProjectConfig{}
	}
	p.rootDir = dir
	return &p, nil
}

// FindRoot returns the nearest directory at or above start holding a
// project file. An empty start means the working directory.
func FindRoot(start string) (string, error) {
	dir, err := utils.FindUp(start, FileName)
	if err != nil {
		return "", fmt.Errorf("project root not found: %w", err)
	}
	return dir, nil
}

// RootDir returns the on-disk project directory path.
func (p *Project) RootDir() string { return p.rootDir }

// Save writes project.json using atomic write.
func (p *Project) Save() error {
	if p.rootDir == "" {
		return errors.New("project root directory not set")
	}
	if err := utils.EnsureDir(p.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	p.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(p.rootDir, FileName), data)
}

// AddSource records a locator. Local paths must exist and are stored
// absolute; URLs must use http or https. Adding a locator twice is an error.
func (p *Project) AddSource(locator, description string) (*Source, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, errors.New("locator is required")
	}
	var name string
	if source.IsRemote(locator) {
		if _, err := source.ResolveURL(locator); err != nil {
			return nil, err
		}
		name = locator
	} else {
		abs, err := filepath.Abs(locator)
		if err != nil {
			return nil, fmt.Errorf("resolve path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat source: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("source %s is a directory", abs)
		}
		locator = abs
		name = filepath.Base(abs)
	}
	now := time.Now()
	for _, s := range p.Sources {
		if s.Locator == locator {
			return nil, fmt.Errorf("source already added: %s", locator)
		}
		// keep AddedAt strictly increasing so SortedSources follows insertion order
		if !now.After(s.AddedAt) {
			now = s.AddedAt.Add(time.Nanosecond)
		}
	}
	s := &Source{
		ID:          uuid.NewString(),
		Locator:     locator,
		Name:        name,
		Description: strings.TrimSpace(description),
		AddedAt:     now,
	}
	if p.Sources == nil {
		p.Sources = make(map[string]*Source)
	}
	p.Sources[s.ID] = s
	p.UpdatedAt = time.Now()
	return s, nil
}

// RemoveSource deletes a source by id or locator.
func (p *Project) RemoveSource(ref string) error {
	for id, s := range p.Sources {
		if id == ref || s.Locator == ref {
			delete(p.Sources, id)
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("source not found: %s", ref)
}

// SortedSources returns sources in the order they were added.
func (p *Project) SortedSources() []*Source {
	out := make([]*Source, 0, len(p.Sources))
	for _, s := range p.Sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SetLanguage sets the project message language. An empty tag clears it.
func (p *Project) SetLanguage(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag != "" {
		t, err := language.Parse(tag)
		if err != nil {
			return fmt.Errorf("invalid language tag %q: %w", tag, err)
		}
		tag = t.String()
	}
	if p.Config == nil {
		p.Config = &ProjectConfig{}
	}
	p.Config.Language = tag
	p.UpdatedAt = time.Now()
	return nil
}

// Language returns the project language or fallback when unset.
func (p *Project) Language(fallback string) string {
	if p != nil && p.Config != nil && p.Config.Language != "" {
		return p.Config.Language
	}
	return fallback
}
