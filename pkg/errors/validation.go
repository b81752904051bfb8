package errors

import (
	"strings"
	"unicode"
)

// ValidateRoom validates a room identifier for safety and correctness.
// Room identifiers appear in storage keys, file names, and URL paths, so the
// rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateRoom(room string) error {
	if room == "" {
		return New(ErrCodeInvalidRoom, "room identifier cannot be empty")
	}

	if len(room) > 128 {
		return New(ErrCodeInvalidRoom, "room identifier too long (max 128 characters)")
	}

	for _, r := range room {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoom, "room identifier contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(room, pattern) {
			return New(ErrCodeInvalidRoom, "room identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
