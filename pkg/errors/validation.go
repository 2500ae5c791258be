package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePersonID validates a person id for safety and correctness.
// Ids end up in family ids, cache keys and file names, so the rules are
// intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 256 characters
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPerson, "person id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidPerson, "person id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPerson, "person id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidPerson, "person id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// relationshipTypes are the wire-level relationship type strings the
// graph codec accepts.
var relationshipTypes = map[string]bool{
	"parent_child": true,
	"spouse":       true,
	"partner":      true,
	"sibling":      true,
}

// ValidateRelationshipType validates a wire-level relationship type string.
func ValidateRelationshipType(typ string) error {
	if typ == "" {
		return New(ErrCodeInvalidRelationship, "relationship type cannot be empty")
	}

	if !relationshipTypes[typ] {
		return New(ErrCodeInvalidRelationship, "unknown relationship type: %q", typ)
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// outputFormats are the render formats the pipeline understands.
var outputFormats = map[string]bool{
	"svg":  true,
	"json": true,
	"dot":  true,
}

// ValidateOutputFormat validates a render output format name.
func ValidateOutputFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	}

	if !outputFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported output format: %q", format)
	}

	return nil
}

// cacheKeyRegex matches safe cache key fragments.
var cacheKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateCacheKey validates a cache key fragment. Keys become file names
// under the file backend, so only a conservative character set is allowed.
func ValidateCacheKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "cache key cannot be empty")
	}

	if !cacheKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid cache key: %q", key)
	}

	return nil
}
