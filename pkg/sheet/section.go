package sheet

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SectionID names one content area of the page backed by a spreadsheet tab.
type SectionID string

const (
	SectionSettings SectionID = "settings"
	SectionHero     SectionID = "hero"
	SectionServices SectionID = "services"
	SectionTeam     SectionID = "team"
	SectionAreas    SectionID = "areas"
	SectionFAQ      SectionID = "faq"
	SectionReviews  SectionID = "reviews"
	SectionWhyUs    SectionID = "why_us"
)

// DefaultBaseURL is the prefix used by published Google Sheets exports.
const DefaultBaseURL = "https://docs.google.com/spreadsheets/d/e"

// ErrUnknownSection is returned when a section is not present in a Config.
var ErrUnknownSection = errors.New("sheet: unknown section")

// Sections lists every known section in document order.
func Sections() []SectionID {
	return []SectionID{
		SectionSettings,
		SectionHero,
		SectionServices,
		SectionTeam,
		SectionAreas,
		SectionFAQ,
		SectionReviews,
		SectionWhyUs,
	}
}

// Valid reports whether id is one of the known sections.
func (id SectionID) Valid() bool {
	for _, known := range Sections() {
		if id == known {
			return true
		}
	}
	return false
}

func (id SectionID) String() string {
	return string(id)
}

// Config maps sections to their remote handles. It is immutable once built;
// accessors hand out copies.
type Config struct {
	publicationID string
	baseURL       string
	workbook      string
	handles       map[SectionID]string
	order         []SectionID
}

// ConfigOption customises a Config during construction.
type ConfigOption func(*Config)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(raw string) ConfigOption {
	return func(c *Config) {
		trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithWorkbook resolves every section to a tab of a local .xlsx export instead
// of the published URL. Tabs are looked up by section name.
func WithWorkbook(path string) ConfigOption {
	return func(c *Config) {
		c.workbook = strings.TrimSpace(path)
	}
}

// NewConfig validates the handles and returns an immutable Config.
func NewConfig(publicationID string, handles map[SectionID]string, options ...ConfigOption) (Config, error) {
	cfg := Config{
		publicationID: strings.TrimSpace(publicationID),
		baseURL:       DefaultBaseURL,
		handles:       make(map[SectionID]string, len(handles)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.publicationID == "" && cfg.workbook == "" {
		return Config{}, errors.New("sheet: publication id is required")
	}

	for id, handle := range handles {
		if !id.Valid() {
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownSection, id)
		}
		trimmed := strings.TrimSpace(handle)
		if trimmed == "" && cfg.workbook == "" {
			return Config{}, fmt.Errorf("sheet: section %q has an empty handle", id)
		}
		cfg.handles[id] = trimmed
	}

	for _, id := range Sections() {
		if _, ok := cfg.handles[id]; ok {
			cfg.order = append(cfg.order, id)
		}
	}
	return cfg, nil
}

// MustNewConfig panics when NewConfig fails. Useful for tests and examples.
func MustNewConfig(publicationID string, handles map[SectionID]string, options ...ConfigOption) Config {
	cfg, err := NewConfig(publicationID, handles, options...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// PublicationID returns the shared publication identifier.
func (c Config) PublicationID() string {
	return c.publicationID
}

// Sections returns the configured sections in document order.
func (c Config) Sections() []SectionID {
	return append([]SectionID(nil), c.order...)
}

// Has reports whether id is configured.
func (c Config) Has(id SectionID) bool {
	_, ok := c.handles[id]
	return ok
}

// Handle returns the opaque remote handle (the tab gid) for id.
func (c Config) Handle(id SectionID) (string, bool) {
	handle, ok := c.handles[id]
	return handle, ok
}

// URL builds the published TSV export URL for id.
func (c Config) URL(id SectionID) (string, error) {
	handle, ok := c.handles[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	query := url.Values{}
	query.Set("gid", handle)
	query.Set("single", "true")
	query.Set("output", "tsv")
	return fmt.Sprintf("%s/%s/pub?%s", c.baseURL, url.PathEscape(c.publicationID), query.Encode()), nil
}

// Source resolves id into the Source a Loader understands.
func (c Config) Source(id SectionID) (Source, error) {
	if !c.Has(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	if c.workbook != "" {
		return SourceFromWorkbook(c.workbook, string(id)), nil
	}
	raw, err := c.URL(id)
	if err != nil {
		return nil, err
	}
	return SourceFromURL(raw), nil
}
