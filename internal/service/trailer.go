package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// detailSource is the subset of CatalogService used to find trailers
type detailSource interface {
	MovieDetail(ctx context.Context, id int) (*domain.MovieDetail, error)
}

// TrailerService finds a movie's YouTube trailer and opens it
type TrailerService struct {
	details detailSource
	opener  domain.URLOpener
	logger  *slog.Logger
}

// NewTrailerService creates a new trailer service
func NewTrailerService(details detailSource, opener domain.URLOpener, logger *slog.Logger) *TrailerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrailerService{
		details: details,
		opener:  opener,
		logger:  logger,
	}
}

// Open fetches the movie's detail and opens its trailer. Returns
// domain.ErrNoTrailer when the movie has none.
func (s *TrailerService) Open(ctx context.Context, movieID int) error {
	detail, err := s.details.MovieDetail(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to load trailer: %w", err)
	}
	return s.OpenDetail(detail)
}

// OpenDetail opens the trailer of an already loaded detail
func (s *TrailerService) OpenDetail(detail *domain.MovieDetail) error {
	url := detail.TrailerURL()
	if url == "" {
		s.logger.Debug("no trailer for movie", "id", detail.ID)
		return domain.ErrNoTrailer
	}

	s.logger.Info("opening trailer", "id", detail.ID, "url", url)
	if err := s.opener.Open(url); err != nil {
		s.logger.Error("failed to open trailer", "url", url, "error", err)
		return fmt.Errorf("failed to open trailer: %w", err)
	}
	return nil
}

// NoticeText returns the user-facing message for a trailer error
func NoticeText(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrNoTrailer) {
		return "Trailer not available yet."
	}
	return "Failed to load trailer."
}
