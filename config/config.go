// Package config loads the floorconv configuration from YAML and merges
// command-line overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// TargetAuto converts every level to the format it is not in.
const TargetAuto = "auto"

var (
	// ErrBadTarget indicates a target other than auto, legacy or mesh.
	ErrBadTarget = errors.New("config: target must be auto, legacy or mesh")
	// ErrBadLogLevel indicates an unknown log level name.
	ErrBadLogLevel = errors.New("config: unknown log level")
	// ErrBadLang indicates a message language that is not a BCP 47 tag.
	ErrBadLang = errors.New("config: lang must be a BCP 47 tag")
)

// Config holds every floorconv setting.
type Config struct {
	// Target is "auto" (toggle), "legacy" or "mesh".
	Target string `yaml:"target"`
	// Lang is the BCP 47 tag used for user-facing messages.
	Lang string `yaml:"lang"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Workers bounds concurrent file conversions.
	Workers int `yaml:"workers"`
	// Extensions lists the level file suffixes picked up by batch and watch.
	Extensions []string `yaml:"extensions"`
	// Verify re-expands every conversion and fails when geometry changed.
	Verify bool `yaml:"verify"`

	Watch   WatchConfig   `yaml:"watch"`
	Preview PreviewConfig `yaml:"preview"`
}

// WatchConfig configures the directory watcher.
type WatchConfig struct {
	Dirs       []string `yaml:"dirs"`
	DebounceMS int      `yaml:"debounce_ms"`
}

// PreviewConfig configures preview rendering.
type PreviewConfig struct {
	Size   int     `yaml:"size"`
	Margin int     `yaml:"margin"`
	Stroke float64 `yaml:"stroke"`
	// Format is the extension used when a directory of previews is written.
	Format string `yaml:"format"`
}

// Flags holds command-line values that override file settings.
// Zero values mean "not set".
type Flags struct {
	Target   string
	Lang     string
	LogLevel string
	Workers  int
	Verify   bool
}

// Load reads a YAML config file. Fields absent from the file keep their
// zero values until Resolve fills them.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flag overrides, then fills defaults, then validates.
func (c *Config) Resolve(flags Flags) error {
	if flags.Target != "" {
		c.Target = flags.Target
	}
	if flags.Lang != "" {
		c.Lang = flags.Lang
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Verify {
		c.Verify = true
	}

	if c.Target == "" {
		c.Target = TargetAuto
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".adofai", ".json"}
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = 100
	}
	if c.Preview.Size <= 0 {
		c.Preview.Size = 512
	}
	if c.Preview.Margin <= 0 {
		c.Preview.Margin = 24
	}
	if c.Preview.Stroke <= 0 {
		c.Preview.Stroke = 4
	}
	if c.Preview.Format == "" {
		c.Preview.Format = "png"
	}

	c.Target = strings.ToLower(c.Target)
	switch c.Target {
	case TargetAuto, "legacy", "mesh":
	default:
		return fmt.Errorf("%w: %q", ErrBadTarget, c.Target)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := language.Parse(c.Lang); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadLang, c.Lang, err)
	}
	return nil
}

// Language returns the parsed message language, English when unparsable.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Lang)
	if err != nil {
		return language.English
	}
	return tag
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLogLevel, c.LogLevel)
	}
	return lvl, nil
}

// HasExtension reports whether path ends in one of the configured extensions.
func (c Config) HasExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
