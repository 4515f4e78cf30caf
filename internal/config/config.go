// Package config handles loading and saving user configuration for SMT.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	"github.com/f3rmion/smt/internal/logger"
	"github.com/f3rmion/smt/internal/smt"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration for the SMT client.
type Config struct {
	Service   ServiceConfig  `yaml:"service"`
	Languages []smt.Language `yaml:"languages"`
	Defaults  DefaultsConfig `yaml:"defaults"`
	Notify    NotifyConfig   `yaml:"notify"`
	Log       LogConfig      `yaml:"log"`
	History   HistoryConfig  `yaml:"history"`
}

// ServiceConfig locates the translation and evaluation service.
type ServiceConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // 0 disables the per-request timeout
	// BreakerThreshold opens the circuit after this many consecutive
	// transport failures. 0 disables the breaker.
	BreakerThreshold uint32 `yaml:"breaker_threshold"`
}

// DefaultsConfig selects the initial language pair.
type DefaultsConfig struct {
	SourceLang string `yaml:"source_lang"`
	TargetLang string `yaml:"target_lang"`
}

// NotifyConfig tunes the notification area.
type NotifyConfig struct {
	SuccessDelay time.Duration `yaml:"success_delay"`
}

// LogConfig selects the log level and optional log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// HistoryConfig enables the evaluation history database.
type HistoryConfig struct {
	Path string `yaml:"path"` // empty disables history
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			URL:     "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Languages: []smt.Language{
			{Code: "en", Name: "English"},
			{Code: "hi", Name: "Hindi"},
			{Code: "fr", Name: "French"},
			{Code: "es", Name: "Spanish"},
			{Code: "de", Name: "German"},
			{Code: "it", Name: "Italian"},
			{Code: "pt", Name: "Portuguese"},
			{Code: "ja", Name: "Japanese"},
			{Code: "zh-cn", Name: "Chinese (Simplified)"},
		},
		Defaults: DefaultsConfig{SourceLang: "en", TargetLang: "hi"},
		Notify:   NotifyConfig{SuccessDelay: 3 * time.Second},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to the defaults when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks the configuration and fills in missing language names
// from the English display names of their tags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Service.URL) == "" {
		return errors.New("service.url is required")
	}
	if c.Service.Timeout < 0 {
		return errors.New("service.timeout must not be negative")
	}
	if c.Notify.SuccessDelay < 0 {
		return errors.New("notify.success_delay must not be negative")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if len(c.Languages) < 2 {
		return errors.New("at least two languages are required")
	}
	seen := make(map[string]bool, len(c.Languages))
	for i := range c.Languages {
		lang := &c.Languages[i]
		lang.Code = strings.TrimSpace(lang.Code)
		tag, err := language.Parse(lang.Code)
		if err != nil {
			return fmt.Errorf("languages[%d]: invalid code %q: %w", i, lang.Code, err)
		}
		if seen[lang.Code] {
			return fmt.Errorf("languages[%d]: duplicate code %q", i, lang.Code)
		}
		seen[lang.Code] = true
		if strings.TrimSpace(lang.Name) == "" {
			lang.Name = display.English.Tags().Name(tag)
		}
	}

	if !seen[c.Defaults.SourceLang] {
		return fmt.Errorf("defaults.source_lang %q is not a configured language", c.Defaults.SourceLang)
	}
	if !seen[c.Defaults.TargetLang] {
		return fmt.Errorf("defaults.target_lang %q is not a configured language", c.Defaults.TargetLang)
	}
	if c.Defaults.SourceLang == c.Defaults.TargetLang {
		return errors.New("defaults.source_lang and defaults.target_lang must be different")
	}
	return nil
}

// LanguageIndex returns the position of code in Languages, or -1.
func (c *Config) LanguageIndex(code string) int {
	for i, l := range c.Languages {
		if l.Code == code {
			return i
		}
	}
	return -1
}

// ApplyOverrides copies flag and environment values bound in v over the
// file values.
func (c *Config) ApplyOverrides(v *viper.Viper) {
	if v.IsSet("service.url") {
		c.Service.URL = v.GetString("service.url")
	}
	if v.IsSet("service.timeout") {
		c.Service.Timeout = v.GetDuration("service.timeout")
	}
	if v.IsSet("service.breaker_threshold") {
		c.Service.BreakerThreshold = v.GetUint32("service.breaker_threshold")
	}
	if v.IsSet("log.level") {
		c.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.file") {
		c.Log.File = v.GetString("log.file")
	}
	if v.IsSet("history.path") {
		c.History.Path = v.GetString("history.path")
	}
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "smt"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}
