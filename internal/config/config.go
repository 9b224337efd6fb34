package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// dateFormat is the day granularity used by the recall gate.
const dateFormat = "2006-01-02"

type AIConfig struct {
	Provider string `yaml:"provider"` // "claude" or "openai"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

type Config struct {
	Vault       string    `yaml:"vault"`
	NotesFolder string    `yaml:"notes_folder"`
	RecallFile  string    `yaml:"recall_file"`
	Ignore      []string  `yaml:"ignore,omitempty"`
	LastRunDate string    `yaml:"last_run_date"`
	AI          *AIConfig `yaml:"ai,omitempty"`
}

// AIEnabled returns true if AI is configured with a valid API key.
func (c *Config) AIEnabled() bool {
	if c.AI == nil {
		return false
	}
	key := c.AI.APIKey
	if key == "" {
		key = os.Getenv("RESURFACE_AI_KEY")
	}
	return key != ""
}

// AIKey returns the resolved API key (config or env var).
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv("RESURFACE_AI_KEY")
}

// VaultDir returns the vault root with ~ expanded.
func (c *Config) VaultDir() string {
	return expandHome(c.Vault)
}

// RecallName returns the recall file path relative to the vault,
// defaulting to "recall.md".
func (c *Config) RecallName() string {
	if c.RecallFile == "" {
		return "recall.md"
	}
	return c.RecallFile
}

// RecallPath returns the absolute path of the recall note.
func (c *Config) RecallPath() string {
	return filepath.Join(c.VaultDir(), filepath.FromSlash(c.RecallName()))
}

// IsNewDay reports whether the stored last-run date differs from now's date.
// A failed run never updates the date, so the next check retries.
func (c *Config) IsNewDay(now time.Time) bool {
	return c.LastRunDate != now.Format(dateFormat)
}

// MarkRun records now as the last successful run day. The caller persists.
func (c *Config) MarkRun(now time.Time) {
	c.LastRunDate = now.Format(dateFormat)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "resurface", "config.yaml")
}

func JournalPath() string {
	return filepath.Join(xdg.DataHome, "resurface", "journal.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default path), merged over the
// embedded defaults: keys present in the file win, missing keys keep their
// default values. First run writes the default file for the user to edit.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return cfg, nil
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save persists the whole record to path (or the default path). Every
// settings mutation goes through here; there is no partial write.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.AI != nil {
		switch cfg.AI.Provider {
		case "", "claude", "openai":
		default:
			return fmt.Errorf("ai provider %q unknown (valid: claude, openai)", cfg.AI.Provider)
		}
	}
	if cfg.RecallFile != "" && filepath.IsAbs(cfg.RecallFile) {
		return fmt.Errorf("recall_file must be relative to the vault, got %q", cfg.RecallFile)
	}
	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("ignore pattern %q is not a valid glob", pat)
		}
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
