package hebrew_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noamlvn/nikudquiz/internal/hebrew"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := hebrew.Default()

	assert.Len(t, catalog.Vowels, 9, "fixed catalog of nine vowel marks")

	var embedded []string
	for _, v := range catalog.Vowels {
		if v.EmbedsVav {
			embedded = append(embedded, v.ID)
		}
	}
	assert.ElementsMatch(t, []string{"holam_maleh", "shuruk"}, embedded)

	assert.Contains(t, catalog.Consonants.Base, hebrew.Vav)
	assert.Len(t, catalog.Consonants.DageshPairs, 3)
	assert.Len(t, catalog.Consonants.Finals, 5)
}

func TestCatalog_VowelsByID(t *testing.T) {
	catalog := hebrew.Default()

	vowels, err := catalog.VowelsByID([]string{"kamatz", "shuruk"})
	require.NoError(t, err)
	assert.Len(t, vowels, 2)
	assert.Equal(t, "kamatz", vowels[0].ID)

	_, err = catalog.VowelsByID([]string{"kamatz", "nope"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestResolveConsonants_Toggles(t *testing.T) {
	catalog := hebrew.Default()

	all := catalog.ResolveConsonants(hebrew.ConsonantPolicy{
		IncludeBase:   true,
		IncludeDagesh: true,
		IncludeFinal:  true,
	})
	// 19 base + 3 rafe + 3 dagesh + 5 finals
	assert.Len(t, all, 30)

	softOnly := catalog.ResolveConsonants(hebrew.ConsonantPolicy{IncludeBase: true})
	assert.Contains(t, softOnly, "ב")
	assert.NotContains(t, softOnly, "בּ")
	assert.NotContains(t, softOnly, "ך")

	// Rafe forms stay selectable without any toggle.
	none := catalog.ResolveConsonants(hebrew.ConsonantPolicy{})
	assert.ElementsMatch(t, []string{"ב", "כ", "פ"}, none)
}

func TestResolveConsonants_Deduplicates(t *testing.T) {
	catalog := hebrew.Default()

	got := catalog.ResolveConsonants(hebrew.ConsonantPolicy{
		Glyphs: []string{"א", "א", "ב", "", "ב"},
	})
	assert.Equal(t, []string{"א", "ב"}, got)
}

func TestResolveConsonants_ExplicitEmptySet(t *testing.T) {
	catalog := hebrew.Default()

	got := catalog.ResolveConsonants(hebrew.ConsonantPolicy{
		Glyphs:      []string{},
		IncludeBase: true, // ignored: the explicit set wins
	})
	assert.Empty(t, got)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	_, err := hebrew.LoadCatalog([]byte("vowels: []"))
	assert.Error(t, err)

	_, err = hebrew.LoadCatalog([]byte("vowels:\n  - id: a\n    symbol: x\n  - id: a\n    symbol: y"))
	assert.Error(t, err, "duplicate vowel ids must be rejected")

	_, err = hebrew.LoadCatalog([]byte("not: [valid"))
	assert.Error(t, err)
}
