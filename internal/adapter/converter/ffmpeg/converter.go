package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains null byte")
)

// stderrTail bounds how much ffmpeg output ends up in an error.
const stderrTail = 512

type Converter struct {
	binary string
}

func NewConverter(binary string) *Converter {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Converter{binary: binary}
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	return nil
}

// Compress re-encodes params.OriginalFilePath into params.DestinationFilePath.
// The process is killed when ctx is done.
func (c *Converter) Compress(ctx context.Context, params domain.CompressionParams) error {
	if err := validatePath(params.OriginalFilePath); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if err := validatePath(params.DestinationFilePath); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.binary, buildArgs(params)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", ctxErr)
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail(stderr.String()))
	}
	return nil
}

func buildArgs(params domain.CompressionParams) []string {
	return []string{
		"-i", params.OriginalFilePath,
		"-fpsmax", strconv.Itoa(params.FrameRate),
		"-crf", strconv.Itoa(params.QualityFactor),
		"-c:v", "libx264",
		"-filter:v", fmt.Sprintf("scale=trunc(oh*a/2)*2:%d", params.Quality.Height()),
		"-y",
		"-threads", "1",
		params.DestinationFilePath,
	}
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTail {
		s = s[len(s)-stderrTail:]
	}
	return s
}

var _ port.Compressor = (*Converter)(nil)
