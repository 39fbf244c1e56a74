package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pcormier/wax/internal/domain"
)

// DownloadService saves tracks to the local music directory
type DownloadService struct {
	catalog domain.CatalogRepository
	dir     string
	logger  *slog.Logger
}

// NewDownloadService creates a new download service
func NewDownloadService(catalog domain.CatalogRepository, dir string, logger *slog.Logger) *DownloadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadService{catalog: catalog, dir: dir, logger: logger}
}

// Download fetches the track's audio and writes it as
// "Artist - Title.mp3" under the download directory, returning the path.
func (s *DownloadService) Download(ctx context.Context, track domain.Track) (string, error) {
	data, err := s.catalog.Download(ctx, track.ID, track.Title, track.Artist)
	if err != nil {
		s.logger.Error("download failed", "title", track.Title, "error", err)
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path := filepath.Join(s.dir, sanitizeFilename(track.DisplayName())+".mp3")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	s.logger.Info("track downloaded", "path", path, "bytes", len(data))
	return path, nil
}

// sanitizeFilename strips characters that are unsafe in file names
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
	)
	return strings.TrimSpace(replacer.Replace(name))
}
