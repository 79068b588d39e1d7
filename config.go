package decktrivia

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for a converter.
type Config struct {
	// Round1Title is the slide title that opens the first round section.
	Round1Title string `toml:"round1_title" json:"round1_title"`

	// Round2Title is the slide title that opens the second round section.
	Round2Title string `toml:"round2_title" json:"round2_title"`

	// FinalTitle is the slide title of the final clue slide.
	FinalTitle string `toml:"final_title" json:"final_title"`

	// OutputPath is where the game content JSON is written.
	OutputPath string `toml:"output_path" json:"output_path"`

	// AssetsDir is the root of the extracted assets tree; images/ and
	// audio/ subdirectories are created under it.
	AssetsDir string `toml:"assets_dir" json:"assets_dir"`

	// ReviewWorkbook, when set, is the path of an xlsx review workbook
	// written alongside the JSON output.
	ReviewWorkbook string `toml:"review_workbook" json:"review_workbook,omitempty"`

	// Catalog configures the optional conversion catalog database.
	Catalog CatalogConfig `toml:"catalog" json:"catalog"`
}

// CatalogConfig configures the sqlite conversion catalog.
type CatalogConfig struct {
	// Enabled turns the catalog on. When off, every conversion runs from
	// scratch and no history is recorded.
	Enabled bool `toml:"enabled" json:"enabled"`

	// Path is the catalog database file. If empty, defaults to
	// ~/.decktrivia/catalog.db.
	Path string `toml:"path" json:"path,omitempty"`
}

// DefaultConfig returns a Config with the conventional authoring defaults.
func DefaultConfig() Config {
	return Config{
		Round1Title: "ROUND 1",
		Round2Title: "ROUND 2",
		FinalTitle:  "FINAL JEOPARDY",
		OutputPath:  "game-data.json",
		AssetsDir:   "assets",
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	keys := make(map[string]string, 3)
	for name, title := range map[string]string{
		"round1_title": c.Round1Title,
		"round2_title": c.Round2Title,
		"final_title":  c.FinalTitle,
	} {
		key := strings.ToUpper(strings.TrimSpace(title))
		if key == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, name)
		}
		if other, ok := keys[key]; ok {
			return fmt.Errorf("%w: %s and %s are both %q", ErrInvalidConfig, other, name, key)
		}
		keys[key] = name
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.AssetsDir) == "" {
		return fmt.Errorf("%w: assets_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}

// resolveCatalogPath computes the catalog database path from config fields.
func (c *Config) resolveCatalogPath() string {
	if c.Catalog.Path != "" {
		return c.Catalog.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "catalog.db" // fallback to cwd
	}
	return filepath.Join(home, ".decktrivia", "catalog.db")
}
