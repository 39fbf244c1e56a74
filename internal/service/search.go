package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pcormier/wax/internal/domain"
)

// SearchService fronts catalog search for the UI
type SearchService struct {
	catalog domain.CatalogRepository
	logger  *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(catalog domain.CatalogRepository, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{catalog: catalog, logger: logger}
}

// Tracks searches the catalog for tracks. Blank queries skip the network
// and return nothing.
func (s *SearchService) Tracks(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	s.logger.Debug("searching tracks", "query", query)
	return s.catalog.SearchTracks(ctx, query)
}

// Albums searches the catalog for albums
func (s *SearchService) Albums(ctx context.Context, query string) ([]domain.AlbumResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	s.logger.Debug("searching albums", "query", query)
	return s.catalog.SearchAlbums(ctx, query)
}
