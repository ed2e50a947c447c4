package utils

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

const (
	slugAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugSuffixLength = 6
	slugMaxAttempts  = 5
)

var (
	whitespacePattern  = regexp.MustCompile(`\s+`)
	nonWordPattern     = regexp.MustCompile(`[^\w-]+`)
	multiHyphenPattern = regexp.MustCompile(`-{2,}`)
)

// Slugify normalizes free text to a URL-safe identifier: lowercase, strip
// diacritics (é -> e, ñ -> n), whitespace to hyphens, drop everything that is
// not a word character, collapse and trim hyphens.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	s = whitespacePattern.ReplaceAllString(s, "-")
	s = nonWordPattern.ReplaceAllString(s, "")
	s = multiHyphenPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}

// CreateUniqueSlug derives a slug from the title and probes it against
// checkExists, retrying with a random 6-char suffix until it is free. After
// slugMaxAttempts collisions the current timestamp is appended without a
// further check; two racing inserts can still collide there and are stopped
// by the unique index on the slug column.
func CreateUniqueSlug(title string, checkExists func(slug string) (bool, error)) (string, error) {
	base := Slugify(title)

	candidate := base
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		exists, err := checkExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%s", base, randomSlugSuffix(slugSuffixLength))
	}

	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli()), nil
}

func randomSlugSuffix(length int) string {
	buf := make([]byte, length)
	// crypto/rand never fails on supported platforms; an all-zero buffer
	// would still yield a valid suffix
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = slugAlphabet[int(b)%len(slugAlphabet)]
	}
	return string(buf)
}
