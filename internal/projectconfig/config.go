// Package projectconfig provides the ProjectConfig struct and loader for
// .comborank.yaml configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/comborank/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working directory.
const FileName = ".comborank.yaml"

// maxWalkUp bounds how many parent directories Locate inspects.
const maxWalkUp = 10

// Default values for project configuration. Ranking defaults live in the
// models package; these cover everything around a run.
const (
	DefaultOutputFormat = "text"
	DefaultWorkers      = 1
	DefaultServerPort   = 3000
	DefaultUploadPrefix = "comborank"
	DefaultCacheDir     = ".comborank-cache"
	DefaultResultsDir   = "results/"
)

// GameConfig describes the number pool and the variant size.
type GameConfig struct {
	TotalNumbers    int `yaml:"total_numbers,omitempty"`
	NumbersPerCombo int `yaml:"numbers_per_combo,omitempty"`
}

// OutputConfig controls what a run emits.
type OutputConfig struct {
	Count     int    `yaml:"count,omitempty"`
	Format    string `yaml:"format,omitempty"`
	Path      string `yaml:"path,omitempty"`
	Interpret *bool  `yaml:"interpret,omitempty"`
}

// EngineConfig holds scoring execution settings.
type EngineConfig struct {
	Workers int `yaml:"workers,omitempty"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	ResultsDir     string   `yaml:"results_dir,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// UploadConfig holds Azure Blob Storage export settings. Export is disabled
// while AccountURL or Container is empty.
type UploadConfig struct {
	AccountURL string   `yaml:"account_url,omitempty"`
	Container  string   `yaml:"container,omitempty"`
	Prefix     string   `yaml:"prefix,omitempty"`
	Formats    []string `yaml:"formats,omitempty"`
}

// Enabled reports whether enough is configured to upload.
func (u UploadConfig) Enabled() bool {
	return u.AccountURL != "" && u.Container != ""
}

// ProjectConfig is the top-level configuration loaded from .comborank.yaml.
type ProjectConfig struct {
	Game    GameConfig      `yaml:"game,omitempty"`
	Weights *models.Weights `yaml:"weights,omitempty"`
	Output  OutputConfig    `yaml:"output,omitempty"`
	Engine  EngineConfig    `yaml:"engine,omitempty"`
	Cache   CacheConfig     `yaml:"cache,omitempty"`
	Server  ServerConfig    `yaml:"server,omitempty"`
	Upload  UploadConfig    `yaml:"upload,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	weights := models.DefaultWeights()
	return &ProjectConfig{
		Game: GameConfig{
			TotalNumbers:    models.DefaultTotalNumbers,
			NumbersPerCombo: models.DefaultNumbersPerCombo,
		},
		Weights: &weights,
		Output: OutputConfig{
			Count:     models.DefaultOutputCount,
			Format:    DefaultOutputFormat,
			Interpret: boolPtr(false),
		},
		Engine: EngineConfig{
			Workers: DefaultWorkers,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(false),
			Dir:     DefaultCacheDir,
		},
		Server: ServerConfig{
			Port:       DefaultServerPort,
			ResultsDir: DefaultResultsDir,
		},
		Upload: UploadConfig{
			Prefix:  DefaultUploadPrefix,
			Formats: []string{DefaultOutputFormat},
		},
	}
}

// RunConfig extracts the ranking parameters.
func (c *ProjectConfig) RunConfig() models.RunConfig {
	rc := models.RunConfig{
		TotalNumbers:    c.Game.TotalNumbers,
		NumbersPerCombo: c.Game.NumbersPerCombo,
		OutputCount:     c.Output.Count,
		Workers:         c.Engine.Workers,
	}
	if c.Weights != nil {
		rc.Weights = *c.Weights
	}
	return rc
}

// Load finds .comborank.yaml by walking up from startDir, unmarshals it,
// and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	path, err := Locate(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return LoadFile(path)
}

// LoadFile reads one config file and merges it over the defaults.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Locate walks up from dir looking for .comborank.yaml.
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func Locate(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxWalkUp {
		p := filepath.Join(dir, FileName)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Game
	if src.Game.TotalNumbers != 0 {
		dst.Game.TotalNumbers = src.Game.TotalNumbers
	}
	if src.Game.NumbersPerCombo != 0 {
		dst.Game.NumbersPerCombo = src.Game.NumbersPerCombo
	}

	// Weights only make sense as a complete set, so they replace wholesale.
	if src.Weights != nil {
		w := *src.Weights
		dst.Weights = &w
	}

	// Output
	if src.Output.Count != 0 {
		dst.Output.Count = src.Output.Count
	}
	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Path != "" {
		dst.Output.Path = src.Output.Path
	}
	if src.Output.Interpret != nil {
		dst.Output.Interpret = src.Output.Interpret
	}

	// Engine
	if src.Engine.Workers != 0 {
		dst.Engine.Workers = src.Engine.Workers
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ResultsDir != "" {
		dst.Server.ResultsDir = src.Server.ResultsDir
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}

	// Upload
	if src.Upload.AccountURL != "" {
		dst.Upload.AccountURL = src.Upload.AccountURL
	}
	if src.Upload.Container != "" {
		dst.Upload.Container = src.Upload.Container
	}
	if src.Upload.Prefix != "" {
		dst.Upload.Prefix = src.Upload.Prefix
	}
	if len(src.Upload.Formats) > 0 {
		dst.Upload.Formats = src.Upload.Formats
	}
}

func boolPtr(b bool) *bool {
	return &b
}
