package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	storage "github.com/inference-gateway/gridpick/internal/infra/storage"
	yaml "gopkg.in/yaml.v3"
)

const (
	ConfigDirName     = ".gridpick"
	ConfigFileName    = "config.yaml"
	DefaultConfigPath = ConfigDirName + "/" + ConfigFileName
	EnvPrefix         = "GRIDPICK"
	LogFileName       = "gridpick.log"
)

// Config represents the gridpick configuration
type Config struct {
	Grid     domain.GridConfig     `yaml:"grid" mapstructure:"grid"`
	Zoom     ZoomConfig            `yaml:"zoom" mapstructure:"zoom"`
	Display  DisplayConfig         `yaml:"display" mapstructure:"display"`
	Dispatch DispatchConfig        `yaml:"dispatch" mapstructure:"dispatch"`
	Surface  SurfaceConfig         `yaml:"surface" mapstructure:"surface"`
	Storage  storage.StorageConfig `yaml:"storage" mapstructure:"storage"`
	Logging  LoggingConfig         `yaml:"logging" mapstructure:"logging"`
}

// ZoomConfig controls the magnified view shown after a cell pick
type ZoomConfig struct {
	Factor            float64 `yaml:"factor" mapstructure:"factor"`
	Padding           float64 `yaml:"padding" mapstructure:"padding"`
	Interpolation     string  `yaml:"interpolation" mapstructure:"interpolation"`
	MaxViewportWidth  int     `yaml:"max_viewport_width" mapstructure:"max_viewport_width"`
	MaxViewportHeight int     `yaml:"max_viewport_height" mapstructure:"max_viewport_height"`
}

// DisplayConfig selects the display server and the target display
type DisplayConfig struct {
	Policy string `yaml:"policy" mapstructure:"policy"`
	Index  int    `yaml:"index" mapstructure:"index"`
	Server string `yaml:"server" mapstructure:"server"`
	Name   string `yaml:"name" mapstructure:"name"`
}

// DispatchConfig controls how the final click is injected
type DispatchConfig struct {
	Button      string          `yaml:"button" mapstructure:"button"`
	Cooldown    time.Duration   `yaml:"cooldown" mapstructure:"cooldown"`
	Timeout     time.Duration   `yaml:"timeout" mapstructure:"timeout"`
	Backend     string          `yaml:"backend" mapstructure:"backend"`
	XdotoolPath string          `yaml:"xdotool_path" mapstructure:"xdotool_path"`
	RateLimit   RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimitConfig bounds the number of dispatches within a sliding window
type RateLimitConfig struct {
	Enabled             bool `yaml:"enabled" mapstructure:"enabled"`
	MaxActionsPerMinute int  `yaml:"max_actions_per_minute" mapstructure:"max_actions_per_minute"`
	WindowSeconds       int  `yaml:"window_seconds" mapstructure:"window_seconds"`
}

// SurfaceConfig selects the UI layer the picker talks to
type SurfaceConfig struct {
	Type         string           `yaml:"type" mapstructure:"type"`
	FramesDir    string           `yaml:"frames_dir" mapstructure:"frames_dir"`
	FrameFormat  string           `yaml:"frame_format" mapstructure:"frame_format"`
	FrameQuality int              `yaml:"frame_quality" mapstructure:"frame_quality"`
	Web          WebSurfaceConfig `yaml:"web" mapstructure:"web"`
}

// WebSurfaceConfig contains the websocket surface listener settings
type WebSurfaceConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// AllowedOrigins lists extra browser origins that may open the websocket
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" mapstructure:"allowed_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Debug bool   `yaml:"debug" mapstructure:"debug"`
	Dir   string `yaml:"dir" mapstructure:"dir"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Grid: domain.GridConfig{
			Rows: 6,
			Cols: 10,
		},
		Zoom: ZoomConfig{
			Factor:        3,
			Padding:       0.5,
			Interpolation: "nearest",
		},
		Display: DisplayConfig{
			Policy: "largest",
			Index:  0,
			Server: "auto",
			Name:   ":0",
		},
		Dispatch: DispatchConfig{
			Button:      "left",
			Cooldown:    3 * time.Second,
			Timeout:     5 * time.Second,
			Backend:     "display",
			XdotoolPath: "xdotool",
			RateLimit: RateLimitConfig{
				Enabled:             true,
				MaxActionsPerMinute: 60,
				WindowSeconds:       60,
			},
		},
		Surface: SurfaceConfig{
			Type:         "stdio",
			FramesDir:    filepath.Join(ConfigDirName, "frames"),
			FrameFormat:  "png",
			FrameQuality: 85,
			Web: WebSurfaceConfig{
				Host: "127.0.0.1",
				Port: 8765,
			},
		},
		Storage: storage.StorageConfig{
			Type: "jsonl",
			JSONL: storage.JSONLConfig{
				Path: filepath.Join(ConfigDirName, "dispatches.jsonl"),
			},
			SQLite: storage.SQLiteConfig{
				Path: filepath.Join(ConfigDirName, "gridpick.db"),
			},
			Postgres: storage.PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "gridpick",
				Username: "gridpick",
				SSLMode:  "disable",
			},
			Redis: storage.RedisConfig{
				Host: "localhost",
				Port: 6379,
			},
		},
		Logging: LoggingConfig{
			Debug: false,
			Dir:   "",
		},
	}
}

// ZoomViewportLimit returns the configured maximum viewport, zero meaning unbounded
func (c *Config) ZoomViewportLimit() domain.Size {
	return domain.Size{Width: c.Zoom.MaxViewportWidth, Height: c.Zoom.MaxViewportHeight}
}

// Clone returns an independent copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// GetConfigPath resolves the config file path. An explicit path wins, then
// GRIDPICK_CONFIG, then the project-local default. With userScope the
// default lives under the home directory instead of the working directory.
func GetConfigPath(userScope bool) string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	if userScope {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, DefaultConfigPath)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return DefaultConfigPath
	}
	return filepath.Join(wd, DefaultConfigPath)
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close YAML encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveConfig writes the configuration to configPath, creating its directory
func (c *Config) SaveConfig(configPath string) error {
	if configPath == "" {
		configPath = GetConfigPath(false)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
