package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a dataset or config path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !IsRemote(rawURL) {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}

// IsRemote reports whether s looks like an http(s) URL rather than a local path.
func IsRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// tagNameRegex matches element names accepted by createElement: a letter followed by
// letters, digits, hyphens, underscores, dots or a single namespace colon.
var tagNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*(:[A-Za-z][A-Za-z0-9._-]*)?$`)

// ValidateTagName validates an element tag name.
func ValidateTagName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "tag name cannot be empty")
	}
	if !tagNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid tag name: %q", name)
	}
	return nil
}

// attrNameRegex matches attribute names: no whitespace, quotes, '>', '/' or '='.
var attrNameRegex = regexp.MustCompile(`^[^\s"'>/=\x00]+$`)

// ValidateAttrName validates an attribute name.
func ValidateAttrName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "attribute name cannot be empty")
	}
	if !attrNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid attribute name: %q", name)
	}
	return nil
}
