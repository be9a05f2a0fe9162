package domain

import "fmt"

type Quality string

const (
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
)

const (
	MinQualityFactor = 10
	MaxQualityFactor = 50
	MinFrameRate     = 1
	MaxFrameRate     = 60
)

// ParseQuality accepts only the two supported presets.
func ParseQuality(s string) (Quality, error) {
	switch Quality(s) {
	case Quality720p, Quality1080p:
		return Quality(s), nil
	default:
		return "", fmt.Errorf("%w: quality must be 720p or 1080p", ErrInvalidParams)
	}
}

// Height is the output vertical resolution. Anything but 1080p maps to 720.
func (q Quality) Height() int {
	if q == Quality1080p {
		return 1080
	}
	return 720
}

type CompressionParams struct {
	OriginalFilePath    string
	DestinationFilePath string
	Quality             Quality
	QualityFactor       int
	FrameRate           int
}

func (p CompressionParams) Validate() error {
	if p.OriginalFilePath == "" || p.DestinationFilePath == "" {
		return fmt.Errorf("%w: source and destination paths are required", ErrInvalidParams)
	}
	if _, err := ParseQuality(string(p.Quality)); err != nil {
		return err
	}
	if p.QualityFactor < MinQualityFactor || p.QualityFactor > MaxQualityFactor {
		return fmt.Errorf("%w: factor must be between %d and %d", ErrInvalidParams, MinQualityFactor, MaxQualityFactor)
	}
	if p.FrameRate < MinFrameRate || p.FrameRate > MaxFrameRate {
		return fmt.Errorf("%w: framerate must be between %d and %d", ErrInvalidParams, MinFrameRate, MaxFrameRate)
	}
	return nil
}
