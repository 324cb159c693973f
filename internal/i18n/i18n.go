// Package i18n loads the bot's localized string tables.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// ErrUnsupportedLanguage is returned for tags without a string table
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Strings is the fixed set of named strings every locale provides
type Strings struct {
	Name string `yaml:"name"`

	// Buttons
	Start     string `yaml:"start"`
	Language  string `yaml:"language"`
	Help      string `yaml:"help"`
	Admin     string `yaml:"admin"`
	Code      string `yaml:"code"`
	Feedback  string `yaml:"feedback"`
	Privacy   string `yaml:"privacy"`
	Subscribe string `yaml:"subscribe_button"`
	AdminLink string `yaml:"admin_button"`

	// Messages
	Welcome         string   `yaml:"welcome"`
	ChooseLanguage  string   `yaml:"choose_language"`
	LanguageChanged string   `yaml:"language_changed"`
	HelpText        string   `yaml:"help_text"`
	PrivacyText     string   `yaml:"privacy_text"`
	AdminContact    string   `yaml:"admin_contact"`
	EnterCode       string   `yaml:"enter_code"`
	VideoNotFound   string   `yaml:"video_not_found"`
	SubscribeFirst  string   `yaml:"subscribe_first"`
	FeedbackPrompt  string   `yaml:"feedback_prompt"`
	FeedbackThanks  string   `yaml:"feedback_thanks"`
	Jokes           []string `yaml:"jokes"`
}

// Provider maps language tags to string tables
type Provider struct {
	tables   map[string]*Strings
	fallback string
}

// NewProvider loads the embedded tables. fallback must be one of them.
func NewProvider(fallback string) (*Provider, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	p := &Provider{tables: make(map[string]*Strings), fallback: fallback}
	for _, e := range entries {
		tag := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", tag, err)
		}

		var s Strings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", tag, err)
		}
		p.tables[tag] = &s
	}

	if _, ok := p.tables[fallback]; !ok {
		return nil, fmt.Errorf("%w: fallback %q", ErrUnsupportedLanguage, fallback)
	}
	return p, nil
}

// Get returns the table for tag, or the fallback table for unknown tags
func (p *Provider) Get(tag string) *Strings {
	if s, ok := p.tables[tag]; ok {
		return s
	}
	return p.tables[p.fallback]
}

// IsSupported reports whether tag has a string table
func (p *Provider) IsSupported(tag string) bool {
	_, ok := p.tables[tag]
	return ok
}

// Supported returns all tags in a stable order, fallback first
func (p *Provider) Supported() []string {
	tags := make([]string, 0, len(p.tables))
	for tag := range p.tables {
		if tag != p.fallback {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return append([]string{p.fallback}, tags...)
}

// Default returns the fallback tag
func (p *Provider) Default() string {
	return p.fallback
}
