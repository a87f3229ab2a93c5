// internal/config/config.go
//
// This package handles configuration and the .roadmap directory structure.
// Every project that uses the roadmap builder gets a .roadmap/ folder in its
// root holding config.yaml and the activity log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LearnData-lab/RoadmapBuilder/internal/roadmap"
)

const (
	// RoadmapDir is the name of the directory we create in each project
	RoadmapDir = ".roadmap"

	defaultNorthStar = "Define your North Star metric or goal"
)

const defaultProjectConfigYAML = `# roadmap builder configuration
version: 1

# Where "Export Timeline" writes north-star-roadmap.svg. Relative paths are
# resolved against the project directory.
export:
  dir: .

# Starting roadmap for each session. Nothing edited in the UI is written back.
seed:
  north_star: Define your North Star metric or goal
  initiatives:
    - title: Example Initiative
      description: Brief description of what needs to be done
      quarter: Q1 2026
      owner: Team Lead
      status: committed
`

// ExportConfig controls where exported documents are written.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// SeedConfig is the roadmap every session starts from.
type SeedConfig struct {
	NorthStar   string               `yaml:"north_star"`
	Initiatives []roadmap.Initiative `yaml:"initiatives,omitempty"`
}

// ProjectConfig models .roadmap/config.yaml.
type ProjectConfig struct {
	Version int          `yaml:"version"`
	Export  ExportConfig `yaml:"export"`
	Seed    SeedConfig   `yaml:"seed"`
}

// Config holds the runtime configuration for the roadmap builder.
type Config struct {
	// ProjectDir is the directory the builder was started from
	ProjectDir string

	// RoadmapProjectDir is ProjectDir/.roadmap
	RoadmapProjectDir string

	Project ProjectConfig
}

// InitRoadmapDir creates the .roadmap directory structure in the given
// project directory and writes a default config.yaml when none exists.
//
// Structure created:
// .roadmap/
// ├── config.yaml
// └── logs/         <- activity log
func InitRoadmapDir(projectDir string) error {
	roadmapDir := filepath.Join(projectDir, RoadmapDir)
	if err := os.MkdirAll(filepath.Join(roadmapDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(roadmapDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:        projectDir,
		RoadmapProjectDir: filepath.Join(projectDir, RoadmapDir),
		Project:           defaultProjectConfig(projectDir),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.RoadmapProjectDir, "logs")
}

// LogPath returns the activity log file
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.RoadmapProjectDir, "config.yaml")
}

// ExportDir returns the absolute directory exports are written to.
func (c *Config) ExportDir() string {
	return c.Project.Export.Dir
}

// SeedState builds the starting roadmap from the seed block.
func (c *Config) SeedState(opts ...roadmap.Option) roadmap.State {
	base := []roadmap.Option{
		roadmap.WithNorthStar(c.Project.Seed.NorthStar),
		roadmap.WithInitiatives(c.Project.Seed.Initiatives...),
	}
	return roadmap.New(append(opts, base...)...)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig(projectDir string) ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Export:  ExportConfig{Dir: resolvePath(projectDir, ".")},
		Seed:    SeedConfig{NorthStar: defaultNorthStar},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Export.Dir) == "" {
		pc.Export.Dir = "."
	}
	for i := range pc.Seed.Initiatives {
		seed := &pc.Seed.Initiatives[i]
		if seed.Quarter == "" {
			seed.Quarter = roadmap.DefaultQuarter()
		}
		if seed.Status == "" {
			seed.Status = roadmap.StatusAvailable
		}
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Export.Dir = resolvePath(base, pc.Export.Dir)
	for i := range pc.Seed.Initiatives {
		seed := &pc.Seed.Initiatives[i]
		seed.Quarter = roadmap.Quarter(strings.TrimSpace(string(seed.Quarter)))
		seed.Status = roadmap.Status(strings.ToLower(strings.TrimSpace(string(seed.Status))))
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	for i, seed := range pc.Seed.Initiatives {
		if !seed.Quarter.Valid() {
			return fmt.Errorf("seed.initiatives[%d]: %w: %q", i, roadmap.ErrInvalidQuarter, seed.Quarter)
		}
		if !seed.Status.Valid() {
			return fmt.Errorf("seed.initiatives[%d]: %w: %q", i, roadmap.ErrInvalidStatus, seed.Status)
		}
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
