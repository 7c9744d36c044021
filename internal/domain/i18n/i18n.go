// Package i18n holds language codes and the per-language translation set
// attached to catalog records.
package i18n

import (
	"slices"
	"strings"
)

// Lang is a short language code such as "en" or "es".
type Lang string

const (
	// English is the default and fallback language of the catalog.
	English Lang = "en"
	// Spanish is the second seeded language.
	Spanish Lang = "es"
)

// Fallback is the language used when a requested translation is absent.
const Fallback = English

// Supported lists the languages the catalog is seeded in, fallback first.
var Supported = []Lang{English, Spanish}

// ParseLang normalizes a user supplied language code. Empty input resolves
// to Fallback.
func ParseLang(s string) Lang {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Fallback
	}
	return Lang(s)
}

// Translations maps a language code to the translated fields of one record.
type Translations[T any] map[Lang]T

// Set stores the variant for lang, allocating the map on first use.
func (t *Translations[T]) Set(lang Lang, v T) {
	if *t == nil {
		*t = make(Translations[T], len(Supported))
	}
	(*t)[lang] = v
}

// Get returns the exact variant for lang.
func (t Translations[T]) Get(lang Lang) (T, bool) {
	v, ok := t[lang]
	return v, ok
}

// In returns the variant for lang, falling back to the Fallback language.
// If neither is present the zero value is returned.
func (t Translations[T]) In(lang Lang) T {
	if v, ok := t[lang]; ok {
		return v
	}
	return t[Fallback]
}

// Langs returns the stored languages in Supported order followed by any
// other languages present, sorted by code.
func (t Translations[T]) Langs() []Lang {
	out := make([]Lang, 0, len(t))
	for _, l := range Supported {
		if _, ok := t[l]; ok {
			out = append(out, l)
		}
	}
	known := len(out)
	for l := range t {
		if !slices.Contains(Supported, l) {
			out = append(out, l)
		}
	}
	slices.Sort(out[known:])
	return out
}
