package i18n

import (
	_ "embed"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"thurianx/internal/domain/entity"
)

//go:embed texts.yaml
var textsYAML []byte

// Texts is one language's string table.
type Texts struct {
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle"`
	Support    string `yaml:"support"`
	Camera     string `yaml:"camera"`
	Upload     string `yaml:"upload"`
	Analyze    string `yaml:"analyze"`
	Processing string `yaml:"processing"`
	Result     string `yaml:"result"`
	History    string `yaml:"history"`
	Toggle     string `yaml:"toggle"`
	Footer     string `yaml:"footer"`

	// chat front-end only
	Usage         string `yaml:"usage"`
	ImageReceived string `yaml:"image_received"`
	NeedImage     string `yaml:"need_image"`
	Busy          string `yaml:"busy"`
	NoHistory     string `yaml:"no_history"`
	ImageRejected string `yaml:"image_rejected"`
	Reset         string `yaml:"reset"`
}

// Catalog holds the two string tables.
type Catalog struct {
	tables map[entity.Language]Texts
}

// Load parses the embedded string tables.
func Load() (*Catalog, error) {
	return Parse(textsYAML)
}

// MustLoad is Load for package initialisation; it panics on a broken table.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse reads string tables from YAML. Both languages must be present.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]Texts
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse string tables: %w", err)
	}

	tables := make(map[entity.Language]Texts, len(raw))
	for key, texts := range raw {
		lang, err := entity.ParseLanguage(key)
		if err != nil {
			return nil, err
		}
		tables[lang] = texts
	}

	for _, lang := range []entity.Language{entity.LanguageThai, entity.LanguageEnglish} {
		if _, ok := tables[lang]; !ok {
			return nil, fmt.Errorf("missing string table for %q", lang)
		}
	}
	return &Catalog{tables: tables}, nil
}

// For returns the table for lang, falling back to Thai.
func (c *Catalog) For(lang entity.Language) Texts {
	if t, ok := c.tables[lang]; ok {
		return t
	}
	return c.tables[entity.LanguageThai]
}
