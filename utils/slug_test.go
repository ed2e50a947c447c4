package utils

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title    string
		expected string
	}{
		{"Hello, World!", "hello-world"},
		{"Crème Brûlée Recipe", "creme-brulee-recipe"},
		{"  spaced   out  title  ", "spaced-out-title"},
		{"100% Pure --- Go!!!", "100-pure-go"},
		{"---", ""},
		{"Señor Développeur", "senor-developpeur"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Slugify(tc.title), "title: %q", tc.title)
	}
}

func TestCreateUniqueSlug_NoCollision(t *testing.T) {
	slug, err := CreateUniqueSlug("Hello, World!", func(s string) (bool, error) {
		return false, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello-world", slug)
}

func TestCreateUniqueSlug_CollisionAddsSuffix(t *testing.T) {
	taken := map[string]bool{"hello-world": true}

	slug, err := CreateUniqueSlug("Hello, World!", func(s string) (bool, error) {
		return taken[s], nil
	})

	assert.NoError(t, err)
	assert.NotEqual(t, "hello-world", slug)
	assert.Regexp(t, regexp.MustCompile(`^hello-world-[a-z0-9]{6}$`), slug)
}

func TestCreateUniqueSlug_ResultPassesOwnExistsCheck(t *testing.T) {
	taken := map[string]bool{"hello-world": true}

	slug, err := CreateUniqueSlug("Hello, World!", func(s string) (bool, error) {
		return taken[s], nil
	})

	assert.NoError(t, err)
	assert.False(t, taken[slug])
}

func TestCreateUniqueSlug_TimestampFallback(t *testing.T) {
	attempts := 0

	slug, err := CreateUniqueSlug("Hello, World!", func(s string) (bool, error) {
		attempts++
		return true, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, attempts)
	assert.True(t, strings.HasPrefix(slug, "hello-world-"))
	assert.Regexp(t, regexp.MustCompile(`^hello-world-\d+$`), slug)
}

func TestCreateUniqueSlug_ExistsCheckError(t *testing.T) {
	probeErr := errors.New("database down")

	_, err := CreateUniqueSlug("Hello, World!", func(s string) (bool, error) {
		return false, probeErr
	})

	assert.ErrorIs(t, err, probeErr)
}
