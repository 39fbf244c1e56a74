package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pcormier/wax/internal/domain"
)

// RateService records album ratings with the backend
type RateService struct {
	repo   domain.RatingRepository
	logger *slog.Logger
}

// NewRateService creates a new rating service
func NewRateService(repo domain.RatingRepository, logger *slog.Logger) *RateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateService{repo: repo, logger: logger}
}

// Rate submits a 1-5 rating for an album
func (s *RateService) Rate(ctx context.Context, album, artist string, rating int) (domain.APIResult, error) {
	if rating < 1 || rating > 5 {
		return domain.APIResult{}, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	return s.repo.RateAlbum(ctx, album, artist, rating)
}
