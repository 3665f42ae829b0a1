package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
	yaml "gopkg.in/yaml.v3"
)

var sections = []string{"grid", "zoom", "display", "dispatch", "surface", "storage", "logging"}

// Loader reads the configuration file, GRIDPICK_* environment variables
// and an optional .env file through viper
type Loader struct {
	viper *viper.Viper
	path  string
}

// NewLoader creates a loader for configPath. An empty path resolves to the
// project-local default.
func NewLoader(configPath string) *Loader {
	if configPath == "" {
		configPath = GetConfigPath(false)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range DefaultKeys() {
		v.SetDefault(key, value)
	}

	return &Loader{viper: v, path: configPath}
}

// Viper exposes the underlying viper instance
func (l *Loader) Viper() *viper.Viper {
	return l.viper
}

// Path returns the config file path the loader reads
func (l *Loader) Path() string {
	return l.path
}

// Load reads the configuration. A missing file is not an error. Keys with
// invalid values fall back to their defaults and are reported in the
// returned ConfigErrors; only an unreadable or unparsable file fails.
func (l *Loader) Load() (*Config, domain.ConfigErrors, error) {
	if err := loadDotEnv(filepath.Dir(l.path)); err != nil {
		return nil, nil, err
	}

	if err := l.viper.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !isConfigNotFound(err) {
			return nil, nil, fmt.Errorf("failed to read config file %s: %w", l.path, err)
		}
	}

	return l.decode(DefaultConfig())
}

// Reload re-reads the file and decodes it with fallback supplying the value
// of every invalid key
func (l *Loader) Reload(fallback *Config) (*Config, domain.ConfigErrors, error) {
	if err := l.viper.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("failed to re-read config file: %w", err)
	}
	return l.decode(fallback)
}

func (l *Loader) decode(fallback *Config) (*Config, domain.ConfigErrors, error) {
	cfg := fallback.Clone()
	var errs domain.ConfigErrors

	if err := l.viper.Unmarshal(cfg); err != nil {
		cfg = fallback.Clone()
		for _, section := range sections {
			target := sectionTarget(cfg, section)
			snapshot := fallback.Clone()
			if err := l.viper.UnmarshalKey(section, target); err != nil {
				errs = append(errs, &domain.ConfigError{Key: section, Value: l.viper.Get(section), Reason: err.Error()})
				restoreSection(cfg, snapshot, section)
			}
		}
	}

	errs = append(errs, cfg.Sanitize(fallback)...)
	return cfg, errs, nil
}

func sectionTarget(cfg *Config, section string) any {
	switch section {
	case "grid":
		return &cfg.Grid
	case "zoom":
		return &cfg.Zoom
	case "display":
		return &cfg.Display
	case "dispatch":
		return &cfg.Dispatch
	case "surface":
		return &cfg.Surface
	case "storage":
		return &cfg.Storage
	default:
		return &cfg.Logging
	}
}

func restoreSection(cfg, from *Config, section string) {
	switch section {
	case "grid":
		cfg.Grid = from.Grid
	case "zoom":
		cfg.Zoom = from.Zoom
	case "display":
		cfg.Display = from.Display
	case "dispatch":
		cfg.Dispatch = from.Dispatch
	case "surface":
		cfg.Surface = from.Surface
	case "storage":
		cfg.Storage = from.Storage
	default:
		cfg.Logging = from.Logging
	}
}

// Load reads the configuration at configPath, reporting nothing about
// keys that fell back to defaults
func Load(configPath string) (*Config, error) {
	cfg, _, err := NewLoader(configPath).Load()
	return cfg, err
}

// DefaultKeys flattens the default configuration into dotted viper keys
func DefaultKeys() map[string]any {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return map[string]any{}
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return map[string]any{}
	}

	keys := make(map[string]any)
	flatten("", tree, keys)
	return keys
}

// SortedKeys returns every known configuration key in order
func SortedKeys() []string {
	keys := make([]string, 0)
	for k := range DefaultKeys() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func flatten(prefix string, tree map[string]any, out map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flatten(key, child, out)
			continue
		}
		out[key] = v
	}
}

// loadDotEnv loads .env from the working directory and from the config
// directory. Variables already set in the environment win.
func loadDotEnv(configDir string) error {
	candidates := []string{".env", filepath.Join(configDir, ".env")}
	seen := make(map[string]bool)

	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := gotenv.Load(abs); err != nil {
			return fmt.Errorf("failed to load %s: %w", abs, err)
		}
	}
	return nil
}

func isConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}
