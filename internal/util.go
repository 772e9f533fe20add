// Package internal provides internal utility functionality for the DeepPath MCP adapter.
package internal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrAPIKeyTooShort is returned by ValidateAPIKey for keys shorter than 8 characters.
// Such a key is suspicious but not unusable, callers may treat it as a warning.
var ErrAPIKeyTooShort = errors.New("API key should be at least 8 characters in length")

// ValidateAPIKey checks if a user-provided DeepPath API key is plausible.
// It doesn't impose many conditions; the DeepPath API is the authority on whether a key is valid.
func ValidateAPIKey(key string) error {
	if hasWhitespace(key) {
		return fmt.Errorf("API key should not contain whitespace characters")
	}
	if len(key) < 8 {
		return ErrAPIKeyTooShort
	}
	return nil
}

// MaskAPIKey returns a printable form of key that only reveals its first 8 characters.
func MaskAPIKey(key string) string {
	const visible = 8
	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}
	return key[:visible] + "..."
}

// hasWhitespace checks if the API key contains any whitespace characters.
func hasWhitespace(key string) bool {
	for _, r := range key {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
