package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const MediaTypeMP4 = "video/mp4"

var mediaTypeExtensions = map[string]string{
	MediaTypeMP4: "mp4",
}

func IsMediaTypeAllowed(mediaType string) bool {
	_, ok := mediaTypeExtensions[mediaType]
	return ok
}

// ExtensionForMediaType returns the file extension (without dot) for an allowed media type.
func ExtensionForMediaType(mediaType string) (string, error) {
	ext, ok := mediaTypeExtensions[mediaType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
	return ext, nil
}

// GenerateFileName returns "<uuid>.<ext>" for an allowed media type.
func GenerateFileName(mediaType string) (string, error) {
	ext, err := ExtensionForMediaType(mediaType)
	if err != nil {
		return "", err
	}
	return uuid.NewString() + "." + ext, nil
}

// ExtractExtension returns the part after the single dot in name, or "" when
// name has no dot or more than one.
func ExtractExtension(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
