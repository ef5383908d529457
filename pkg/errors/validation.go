package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameLength bounds box names, in characters.
const maxNameLength = 256

// ValidateBoxName validates a box name as declared by a `box <name>` line.
//
// The rules:
//   - No empty names
//   - No control characters or whitespace
//   - No dots: connection endpoints use the last dot segment as the box name,
//     so a dotted box name could never be referenced
//   - Maximum length of 256 characters
func ValidateBoxName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "box name cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return New(ErrCodeInvalidName, "box name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "box name %q contains whitespace or control characters", name)
		}
	}

	if strings.Contains(name, ".") {
		return New(ErrCodeInvalidName, "box name %q cannot contain '.'", name)
	}

	return nil
}

// ValidatePath validates an input or output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
