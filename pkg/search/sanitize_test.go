package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "dune", expected: "dune"},
		{input: "100% wolf", expected: `100\% wolf`},
		{input: "snake_case", expected: `snake\_case`},
		{input: `back\slash`, expected: `back\\slash`},
		{input: `%_\`, expected: `\%\_\\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EscapeLike(tt.input))
	}
}

func TestBuildContainsPattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%dune%", BuildContainsPattern("dune"))
	assert.Equal(t, "%dune%", BuildContainsPattern("  dune  "))
	assert.Equal(t, `%100\%%`, BuildContainsPattern("100%"))
	assert.Equal(t, "", BuildContainsPattern(""))
	assert.Equal(t, "", BuildContainsPattern("   "))
}

func TestBuildContainsPatternTruncates(t *testing.T) {
	t.Parallel()

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	pattern := BuildContainsPattern(string(long))
	// 100 chars plus the two wildcard delimiters.
	assert.Len(t, pattern, maxQueryLength+2)
}

func TestBuildContainsPatternTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	pattern := BuildContainsPattern(strings.Repeat("é", 150))
	assert.True(t, utf8.ValidString(pattern))
	// 100 runes plus the two wildcard delimiters.
	assert.Equal(t, maxQueryLength+2, utf8.RuneCountInString(pattern))
}
