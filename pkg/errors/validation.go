package errors

import (
	"unicode"
)

// ValidateTaskID validates a task identifier for safety and correctness.
// Task IDs come from user-supplied dot and CSV files, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateTaskID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "task ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "task ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "task ID %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateOutputDir validates a directory path used for image output.
// It prevents path traversal outside the caller's intent and rejects
// obviously broken values before any file is written.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output directory too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	return nil
}
