package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFilenameLength is the common filesystem limit in bytes.
const maxFilenameLength = 255

var ErrInvalidFilename = errors.New("invalid file name")

// ValidateFilename accepts a bare file name that can be joined to the
// artifact directory without escaping it.
func ValidateFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: empty", ErrInvalidFilename)
	case len(name) > maxFilenameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidFilename, maxFilenameLength)
	case !utf8.ValidString(name):
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidFilename)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: hidden file", ErrInvalidFilename)
	case strings.ContainsAny(name, `/\:`):
		return fmt.Errorf("%w: contains a path separator", ErrInvalidFilename)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: contains control characters", ErrInvalidFilename)
	}
	return nil
}

// SanitizeFilename replaces characters that could break a quoted header
// value or a path with '_', keeps other Unicode, and truncates to 255 bytes
// keeping the extension. Blank input becomes "file".
func SanitizeFilename(name string) string {
	result := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`"\/:`, r) {
			return '_'
		}
		return r
	}, name))

	if strings.Trim(result, "_") == "" {
		return "file"
	}

	if len(result) > maxFilenameLength {
		ext := filepath.Ext(result)
		if ext == "" || len(ext) >= maxFilenameLength {
			return truncateToBytes(result, maxFilenameLength)
		}
		base := strings.TrimSuffix(result, ext)
		result = truncateToBytes(base, maxFilenameLength-len(ext)) + ext
	}
	return result
}

// truncateToBytes cuts s to at most maxBytes without splitting a rune.
func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}

// ContentDisposition returns a header value naming filename, as an attachment
// unless inline is set.
func ContentDisposition(filename string, inline bool) string {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	return fmt.Sprintf("%s; filename=%q", disposition, SanitizeFilename(filename))
}
