package domain

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFallback is used when a title cleans down to nothing.
const slugFallback = "listing"

var (
	hyphenRuns   = regexp.MustCompile(`[\s-]+`)
	slugDisallow = regexp.MustCompile(`[^a-z0-9_-]`)

	// stripMarks removes combining marks left behind by NFD decomposition,
	// so "á" → "a" and "ñ" → "n".
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// MakeSlug derives a URL-safe identifier from free text. The cleaned base is
// suffixed with a random token, so two calls with the same input yield two
// different slugs and no uniqueness round-trip is needed before insert.
// Malformed input degrades to a fixed fallback word; MakeSlug never fails.
func MakeSlug(candidate string) string {
	base := strings.ToLower(strings.TrimSpace(candidate))

	if cleaned, _, err := transform.String(stripMarks, base); err == nil {
		base = cleaned
	}

	base = hyphenRuns.ReplaceAllString(base, "-")
	base = slugDisallow.ReplaceAllString(base, "")
	base = strings.Trim(base, "-")

	if base == "" {
		base = slugFallback
	}

	return base + "-" + slugToken()
}

// slugToken returns an 8-hex-char random token. The nanosecond clock is only
// a fallback for an exhausted entropy source.
func slugToken() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%08x", b)
}
