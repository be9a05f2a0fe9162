package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
)

// MediaService stores uploaded media in the artifact directory and resolves
// client-supplied file names back to paths inside it.
type MediaService struct {
	dir string
}

func NewMediaService(dir string) *MediaService {
	return &MediaService{dir: dir}
}

// Save writes r under a generated "<uuid>.<ext>" name and returns that name
// and the full path. A partial file is removed on error.
func (s *MediaService) Save(mediaType string, r io.Reader) (name, path string, err error) {
	name, err = domain.GenerateFileName(mediaType)
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		logger.Error.Printf("failed to create artifact directory: %v", err)
		return "", "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}

	path = filepath.Join(s.dir, name)
	if err = os.Rename(tmp.Name(), path); err != nil {
		logger.Error.Printf("failed to save upload %s: %v", name, err)
		return "", "", fmt.Errorf("failed to save upload: %w", err)
	}

	logger.Info.Printf("file uploaded: %s (%s)", name, mediaType)
	return name, path, nil
}

// Resolve maps a bare file name to its path in the artifact directory. Only
// existing .mp4 files are accepted.
func (s *MediaService) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid file name", domain.ErrInvalidParams)
	}
	if domain.ExtractExtension(name) != "mp4" {
		return "", fmt.Errorf("%w: only .mp4 files can be compressed", domain.ErrInvalidParams)
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: file %s", domain.ErrNotFound, name)
		}
		return "", fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: file %s", domain.ErrNotFound, name)
	}
	return path, nil
}
