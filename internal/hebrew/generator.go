package hebrew

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Constructible enumerates every syllable that can be written from the given
// vowels and consonants, before audio availability is considered. The result
// has set semantics: deduplicated, sorted, no empty strings, every syllable
// in Unicode canonical (NFC) form.
//
// Rules for each (consonant, vowel) pair:
//   - vav with a vav-embedded vowel yields the vowel symbol alone, since the
//     symbol already contains the vav;
//   - vav with any other vowel yields nothing;
//   - a vav-embedded vowel attaches to no other consonant;
//   - everything else is consonant glyph + vowel symbol.
//
// Selected vav-embedded vowels are additionally emitted on their own, so they
// stay reachable even when vav is filtered out of the consonant set.
func Constructible(vowels []Vowel, consonants []string) []string {
	seen := make(map[string]struct{})
	var out []string
	emit := func(s string) {
		// Concatenation yields consonant+dagesh+vowel mark order; canonical
		// ordering puts the vowel mark first. Normalize so the result matches
		// NFC-keyed audio indexes.
		s = norm.NFC.String(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, c := range consonants {
		for _, v := range vowels {
			switch {
			case c == Vav && v.EmbedsVav:
				emit(v.Symbol)
			case c == Vav:
				// vav takes no ordinary diacritic in this model
			case v.EmbedsVav:
				// holam maleh and shuruk are complete syllables, not marks
			default:
				emit(c + v.Symbol)
			}
		}
	}

	for _, v := range vowels {
		if v.EmbedsVav {
			emit(v.Symbol)
		}
	}

	sort.Strings(out)
	return out
}

// GenerateAllowed returns the constructible syllables that have a recording
// in the audio index. Syllables without audio are dropped silently; an empty
// result is valid and must be handled by the caller.
func GenerateAllowed(vowels []Vowel, consonants []string, index map[string]string) []string {
	var out []string
	for _, s := range Constructible(vowels, consonants) {
		if _, ok := index[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
