package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sheetsite/pkg/renderers/sections"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Environment variables that override file values.
const (
	EnvPublicationID  = "SHEETSITE_PUBLICATION_ID"
	EnvRequestTimeout = "SHEETSITE_REQUEST_TIMEOUT"
	EnvWorkbook       = "SHEETSITE_WORKBOOK"
	EnvAddr           = "SHEETSITE_ADDR"
)

const (
	// DefaultAddr is the listen address of serve mode.
	DefaultAddr = ":8080"
	// DefaultConcurrency bounds simultaneous section fetches.
	DefaultConcurrency = 4
	// DefaultPath is the config file name looked up by the CLI.
	DefaultPath = "sheetsite.yaml"
)

// Config is the on-disk configuration.
type Config struct {
	PublicationID  string            `yaml:"publication_id"`
	BaseURL        string            `yaml:"base_url,omitempty"`
	Workbook       string            `yaml:"workbook,omitempty"`
	Sections       map[string]string `yaml:"sections"`
	RequestTimeout time.Duration     `yaml:"request_timeout"`
	Concurrency    int               `yaml:"concurrency"`
	Strict         bool              `yaml:"strict"`
	PageTemplate   string            `yaml:"page_template,omitempty"`
	Addr           string            `yaml:"addr"`
	Render         RenderConfig      `yaml:"render"`
	Theme          *ThemeConfig      `yaml:"theme,omitempty"`
}

// RenderConfig tunes the section renderers.
type RenderConfig struct {
	RevealDelay    time.Duration `yaml:"reveal_delay"`
	MaxRating      int           `yaml:"max_rating"`
	DefaultIcon    string        `yaml:"default_icon,omitempty"`
	MarkdownFields []string      `yaml:"markdown_fields,omitempty"`
	TemplatesDir   string        `yaml:"templates_dir,omitempty"`
}

// ThemeConfig describes design tokens applied as CSS custom properties.
// Token names are written without the leading dashes ("color-primary").
// A variant missing from Variants renders the base tokens.
type ThemeConfig struct {
	Name     string                       `yaml:"name"`
	Variant  string                       `yaml:"variant,omitempty"`
	Tokens   map[string]string            `yaml:"tokens,omitempty"`
	Variants map[string]map[string]string `yaml:"variants,omitempty"`
}

// Default returns a configuration with every default filled in.
func Default() Config {
	return Config{
		BaseURL:        sheet.DefaultBaseURL,
		Sections:       map[string]string{},
		RequestTimeout: sheet.DefaultRequestTimeout,
		Concurrency:    DefaultConcurrency,
		Addr:           DefaultAddr,
		Render: RenderConfig{
			RevealDelay: sections.DefaultRevealDelay,
			MaxRating:   sections.DefaultMaxRating,
			DefaultIcon: sections.DefaultIcon,
		},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from lookup, typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	if value, ok := lookup(EnvPublicationID); ok && strings.TrimSpace(value) != "" {
		c.PublicationID = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvWorkbook); ok && strings.TrimSpace(value) != "" {
		c.Workbook = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvAddr); ok && strings.TrimSpace(value) != "" {
		c.Addr = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvRequestTimeout); ok && strings.TrimSpace(value) != "" {
		timeout, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = timeout
	}
	return nil
}

// parseDuration accepts Go duration strings and bare seconds.
func parseDuration(raw string) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	if seconds, err := strconv.Atoi(trimmed); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(trimmed)
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.PublicationID) == "" && strings.TrimSpace(c.Workbook) == "" {
		return errors.New("config: publication_id or workbook is required")
	}
	if len(c.Sections) == 0 && c.Workbook == "" {
		return errors.New("config: at least one section is required")
	}
	for _, name := range c.sectionNames() {
		if !sheet.SectionID(name).Valid() {
			return fmt.Errorf("config: section %q: %w", name, sheet.ErrUnknownSection)
		}
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("config: concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Render.RevealDelay < 0 {
		return fmt.Errorf("config: render.reveal_delay must not be negative, got %s", c.Render.RevealDelay)
	}
	if c.Render.MaxRating < 1 {
		return fmt.Errorf("config: render.max_rating must be at least 1, got %d", c.Render.MaxRating)
	}
	if _, err := c.ThemeManifest(); err != nil {
		return err
	}
	return nil
}

func (c Config) sectionNames() []string {
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SheetConfig converts the section handles into a sheet.Config. With a
// workbook and no sections listed, every section is read from its tab.
func (c Config) SheetConfig() (sheet.Config, error) {
	handles := make(map[sheet.SectionID]string, len(c.Sections))
	for name, handle := range c.Sections {
		handles[sheet.SectionID(strings.TrimSpace(name))] = handle
	}
	if len(handles) == 0 && c.Workbook != "" {
		for _, id := range sheet.Sections() {
			handles[id] = ""
		}
	}

	options := []sheet.ConfigOption{sheet.WithBaseURL(c.BaseURL)}
	if c.Workbook != "" {
		options = append(options, sheet.WithWorkbook(c.Workbook))
	}
	cfg, err := sheet.NewConfig(c.PublicationID, handles, options...)
	if err != nil {
		return sheet.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// SectionOptions converts the render block into section renderer options.
func (c Config) SectionOptions() []sections.Option {
	options := []sections.Option{
		sections.WithRevealDelay(c.Render.RevealDelay),
		sections.WithMaxRating(c.Render.MaxRating),
		sections.WithDefaultIcon(c.Render.DefaultIcon),
	}
	if len(c.Render.MarkdownFields) > 0 {
		options = append(options, sections.WithMarkdownFields(c.Render.MarkdownFields...))
	}
	if c.Render.TemplatesDir != "" {
		options = append(options, sections.WithTemplatesDir(c.Render.TemplatesDir))
	}
	return options
}

// DefaultThemeName names the theme manifest when the theme block has none.
const DefaultThemeName = "site"

// ThemeManifest builds and validates a go-theme manifest from the theme
// block, or returns nil when no theme is configured.
func (c Config) ThemeManifest() (*theme.Manifest, error) {
	if c.Theme == nil {
		return nil, nil
	}
	name := strings.TrimSpace(c.Theme.Name)
	if name == "" {
		name = DefaultThemeName
	}
	manifest := &theme.Manifest{
		Name:    name,
		Version: "1.0.0",
		Tokens:  copyMap(c.Theme.Tokens),
	}
	if len(c.Theme.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(c.Theme.Variants))
		for name, tokens := range c.Theme.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: copyMap(tokens)}
		}
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("config: theme: %w", err)
	}
	return manifest, nil
}

// ThemeVariant returns the configured variant name.
func (c Config) ThemeVariant() string {
	if c.Theme == nil {
		return ""
	}
	return c.Theme.Variant
}

// PageTemplateBytes reads the configured page template, or returns nil to use
// the built-in page.
func (c Config) PageTemplateBytes() ([]byte, error) {
	if strings.TrimSpace(c.PageTemplate) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.PageTemplate)
	if err != nil {
		return nil, fmt.Errorf("config: read page template: %w", err)
	}
	return data, nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
