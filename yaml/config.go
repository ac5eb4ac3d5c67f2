package yaml

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/fwojciec/folio"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when no path is configured.
const DefaultConfigPath = "folio.yaml"

// Config is the site tooling configuration.
type Config struct {
	ContentDir string `yaml:"content"`
	OutputDir  string `yaml:"output"`
	Database   string `yaml:"database"`
	SiteURL    string `yaml:"site_url"`

	Search SearchConfig `yaml:"search"`
	Build  BuildConfig  `yaml:"build"`
	Import ImportConfig `yaml:"import"`
}

// SearchConfig tunes indexing and ranking.
type SearchConfig struct {
	Weights       folio.FieldWeights `yaml:"weights"`
	Debounce      time.Duration      `yaml:"debounce"`
	Limit         int                `yaml:"limit"`
	TitleBoost    int                `yaml:"title_boost"`
	ExcerptLength int                `yaml:"excerpt_length"`
}

// BuildConfig controls the build pipeline.
type BuildConfig struct {
	AssignIDs   bool `yaml:"assign_ids"`
	Concurrency int  `yaml:"concurrency"`
}

// ImportConfig controls legacy imports.
type ImportConfig struct {
	Collection  folio.Collection `yaml:"collection"`
	Locale      folio.Locale     `yaml:"locale"`
	Concurrency int              `yaml:"concurrency"`
	RateLimit   float64          `yaml:"rate_limit"`
	Burst       int              `yaml:"burst"`

	// HostLimits overrides RateLimit for individual hosts; 0 is unlimited.
	HostLimits map[string]float64 `yaml:"host_limits"`

	// DefaultDate is the pubDate of articles whose page shows none.
	DefaultDate string `yaml:"default_date"`

	// HeroImage is the hero image pattern; {slug} is replaced.
	HeroImage string `yaml:"hero_image"`

	// Include and Exclude are regular expressions over article URLs.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// URLFilter compiles the include and exclude patterns.
// Returns nil when no pattern is configured.
func (c ImportConfig) URLFilter() (*folio.URLFilter, error) {
	if len(c.Include) == 0 && len(c.Exclude) == 0 {
		return nil, nil
	}
	f := &folio.URLFilter{}
	for _, p := range c.Include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, folio.Errorf(folio.EINVALID, "import include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range c.Exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, folio.Errorf(folio.EINVALID, "import exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// PublishedDefault parses DefaultDate. Returns the zero time when unset.
func (c ImportConfig) PublishedDefault() (time.Time, error) {
	if c.DefaultDate == "" {
		return time.Time{}, nil
	}
	return ParseDate(c.DefaultDate)
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		ContentDir: "src/content",
		OutputDir:  "dist",
		Database:   "folio.db",
		Search: SearchConfig{
			Weights:       folio.DefaultFieldWeights,
			Debounce:      200 * time.Millisecond,
			Limit:         folio.DefaultSearchLimit,
			TitleBoost:    folio.DefaultTitleBoost,
			ExcerptLength: DefaultExcerptLength,
		},
		Build: BuildConfig{
			AssignIDs:   true,
			Concurrency: 8,
		},
		Import: ImportConfig{
			Collection:  folio.CollectionBlog,
			Locale:      folio.LocaleES,
			Concurrency: 4,
			RateLimit:   1,
			Burst:       1,
			DefaultDate: "2025-01-01",
			HeroImage:   "/images/placeholder-article-{slug}.svg",
		},
	}
}

// LoadConfig reads the configuration at path over the defaults. A missing
// file is not an error. The FOLIO_CONTENT, FOLIO_OUTPUT and FOLIO_DB
// environment variables override the file.
// Returns EINVALID if the file is not valid YAML or sets invalid values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, folio.Errorf(folio.EINVALID, "config %s: %v", path, err)
		}
	}

	if v := os.Getenv("FOLIO_CONTENT"); v != "" {
		cfg.ContentDir = v
	}
	if v := os.Getenv("FOLIO_OUTPUT"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("FOLIO_DB"); v != "" {
		cfg.Database = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	w := c.Search.Weights
	if w.Title < 0 || w.Tags < 0 || w.Excerpt < 0 || w.Body < 0 {
		return folio.Errorf(folio.EINVALID, "search weights must not be negative")
	}
	if c.Search.Debounce < 0 {
		return folio.Errorf(folio.EINVALID, "search debounce must not be negative")
	}
	if c.Search.Limit <= 0 {
		return folio.Errorf(folio.EINVALID, "search limit must be positive")
	}
	if !c.Import.Locale.Valid() {
		return folio.Errorf(folio.EINVALID, "import locale %q unsupported", c.Import.Locale)
	}
	if c.Import.RateLimit < 0 || c.Import.Burst < 0 {
		return folio.Errorf(folio.EINVALID, "import rate_limit and burst must not be negative")
	}
	for host, rps := range c.Import.HostLimits {
		if rps < 0 {
			return folio.Errorf(folio.EINVALID, "import host_limits: %s must not be negative", host)
		}
	}
	if _, err := c.Import.URLFilter(); err != nil {
		return err
	}
	if _, err := c.Import.PublishedDefault(); err != nil {
		return folio.Errorf(folio.EINVALID, "import default_date: %s", folio.ErrorMessage(err))
	}
	return nil
}

// SearchOptions returns the ranking options.
func (c *Config) SearchOptions() folio.SearchOptions {
	return folio.SearchOptions{Limit: c.Search.Limit, TitleBoost: c.Search.TitleBoost}
}
