package product

import (
	"strings"

	"github.com/xenking/shop-backoffice/internal/domain/i18n"
)

// MaxSlugLen is the maximum slug length in characters.
const MaxSlugLen = 200

var (
	englishSlug = strings.NewReplacer(" ", "-", "&", "and")
	spanishSlug = strings.NewReplacer(" ", "-", "á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")
)

// Slugify derives the slug of a product name for the given language.
// The name is lower-cased and spaces become hyphens. English names also
// spell out "&" as "and"; Spanish names lose the acute accent on vowels.
// The result is truncated to MaxSlugLen characters.
//
// Distinct names may normalize to the same slug; no suffix is added.
func Slugify(lang i18n.Lang, name string) string {
	s := strings.ToLower(name)
	switch lang {
	case i18n.Spanish:
		s = spanishSlug.Replace(s)
	default:
		s = englishSlug.Replace(s)
	}
	return truncate(s, MaxSlugLen)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
