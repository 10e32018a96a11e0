package errors

import (
	"strings"
	"unicode"
)

// ValidateNetworkName validates a stored-network name for safety and
// correctness. It rejects names that could be used for path traversal when
// the file-backed store maps names onto the filesystem.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences (.., /, \)
//   - Maximum length of 128 characters
func ValidateNetworkName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "network name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "network name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "network name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "network name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateMaxDrop validates the maximum allowed voltage-drop fraction used
// by the electrical solver. The value is a fraction of nominal voltage, not
// a percentage: 0.10 means a 10% drop budget.
func ValidateMaxDrop(maxDrop float64) error {
	if maxDrop <= 0 || maxDrop >= 1 {
		return New(ErrCodeInvalidInput, "max drop must be in (0, 1), got %g", maxDrop)
	}
	return nil
}
