package search

import "strings"

const maxQueryLength = 100

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE metacharacters so user input matches literally.
// Queries using the result must declare ESCAPE '\'.
func EscapeLike(input string) string {
	return likeEscaper.Replace(input)
}

// BuildContainsPattern turns user input into a LIKE pattern that matches
// the input as a literal substring. Returns "" when the input is blank,
// which callers treat as "no results" rather than "match everything".
func BuildContainsPattern(input string) string {
	input = strings.TrimSpace(input)
	// Truncate on rune boundaries so multi-byte input stays valid UTF-8.
	if runes := []rune(input); len(runes) > maxQueryLength {
		input = string(runes[:maxQueryLength])
	}
	if input == "" {
		return ""
	}
	return "%" + EscapeLike(input) + "%"
}
