// Package hebrew holds the nikud catalogs and the syllable generation rules.
package hebrew

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Vav carries the holam maleh and shuruk vowels and never takes an ordinary
// diacritic in this model.
const Vav = "ו"

// Vowel is a single nikud mark. Symbol is one or two code points; for the
// vav-embedded vowels it already includes the vav glyph.
type Vowel struct {
	ID        string `yaml:"id" json:"id"`
	Symbol    string `yaml:"symbol" json:"symbol"`
	Label     string `yaml:"label" json:"label"`
	EmbedsVav bool   `yaml:"embeds_vav" json:"embeds_vav"`
}

// DageshPair is a letter with distinct soft (rafe) and hard (dagesh) forms.
type DageshPair struct {
	Rafe   string `yaml:"rafe" json:"rafe"`
	Dagesh string `yaml:"dagesh" json:"dagesh"`
}

// Consonants partitions the letters into three disjoint sets.
type Consonants struct {
	Base        []string     `yaml:"base" json:"base"`
	DageshPairs []DageshPair `yaml:"dagesh_pairs" json:"dagesh_pairs"`
	Finals      []string     `yaml:"finals" json:"finals"`
}

// Catalog is the fixed set of vowel marks and consonant letters the quiz
// draws from.
type Catalog struct {
	Vowels     []Vowel    `yaml:"vowels" json:"vowels"`
	Consonants Consonants `yaml:"consonants" json:"consonants"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var defaultCatalog *Catalog

func init() {
	c, err := LoadCatalog(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("hebrew: embedded catalog is invalid: %v", err))
	}
	defaultCatalog = c
}

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog
}

// LoadCatalog parses and validates a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Vowels) == 0 {
		return nil, fmt.Errorf("catalog has no vowels")
	}
	seen := map[string]struct{}{}
	for _, v := range c.Vowels {
		if v.ID == "" || v.Symbol == "" {
			return nil, fmt.Errorf("vowel with empty id or symbol")
		}
		if _, dup := seen[v.ID]; dup {
			return nil, fmt.Errorf("duplicate vowel id %q", v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	for _, p := range c.Consonants.DageshPairs {
		if p.Rafe == "" || p.Dagesh == "" {
			return nil, fmt.Errorf("dagesh pair with empty form")
		}
	}
	return &c, nil
}

// Vowel looks up a vowel mark by id.
func (c *Catalog) Vowel(id string) (Vowel, bool) {
	for _, v := range c.Vowels {
		if v.ID == id {
			return v, true
		}
	}
	return Vowel{}, false
}

// VowelsByID resolves a list of vowel ids against the catalog. Unknown ids
// are an error so a stale client cannot silently shrink the selection.
func (c *Catalog) VowelsByID(ids []string) ([]Vowel, error) {
	out := make([]Vowel, 0, len(ids))
	for _, id := range ids {
		v, ok := c.Vowel(id)
		if !ok {
			return nil, fmt.Errorf("unknown vowel id %q", id)
		}
		out = append(out, v)
	}
	return out, nil
}

// ConsonantPolicy selects consonant letters either as an explicit glyph set
// or as three toggles resolved against the catalog. An explicit set takes
// precedence over the toggles.
type ConsonantPolicy struct {
	Glyphs        []string
	IncludeBase   bool
	IncludeDagesh bool
	IncludeFinal  bool
}

// ResolveConsonants turns a policy into a deduplicated letter set.
// With IncludeDagesh off, the rafe forms of the dagesh pairs are still
// included so those letter sounds stay selectable.
func (c *Catalog) ResolveConsonants(p ConsonantPolicy) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(glyph string) {
		if glyph == "" {
			return
		}
		if _, ok := seen[glyph]; ok {
			return
		}
		seen[glyph] = struct{}{}
		out = append(out, glyph)
	}

	// A non-nil explicit set wins, even when empty: an empty selection is a
	// valid state that leaves only the standalone vav vowels reachable.
	if p.Glyphs != nil {
		for _, g := range p.Glyphs {
			add(g)
		}
		return out
	}

	if p.IncludeBase {
		for _, g := range c.Consonants.Base {
			add(g)
		}
	}
	for _, pair := range c.Consonants.DageshPairs {
		add(pair.Rafe)
		if p.IncludeDagesh {
			add(pair.Dagesh)
		}
	}
	if p.IncludeFinal {
		for _, g := range c.Consonants.Finals {
			add(g)
		}
	}
	return out
}

// AllConsonants returns every letter form in the catalog, used when
// enumerating syllables for audio synthesis.
func (c *Catalog) AllConsonants() []string {
	return c.ResolveConsonants(ConsonantPolicy{
		IncludeBase:   true,
		IncludeDagesh: true,
		IncludeFinal:  true,
	})
}
