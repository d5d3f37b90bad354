package util

import "github.com/gosimple/slug"

// Slugify turns a title into a URL slug. Non-ASCII letters are
// transliterated, everything else collapses into single dashes.
func Slugify(s string) string {
	return slug.Make(s)
}
