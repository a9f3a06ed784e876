package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Username length bounds
	UsernameMinLength = 2
	UsernameMaxLength = 40

	// Comment content max length
	CommentMaxLength = 2000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// NonEmpty reports whether the value contains anything besides whitespace
func NonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidEmail reports whether the value looks like an email address
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(value))
}

// ValidUsername reports whether the value fits the username bounds
func ValidUsername(value string) bool {
	v := strings.TrimSpace(value)
	return len(v) >= UsernameMinLength && len(v) <= UsernameMaxLength
}

// ValidComment reports whether comment content is non-empty and within bounds
func ValidComment(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && len(v) <= CommentMaxLength
}
