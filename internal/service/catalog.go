package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// DefaultCacheTTL is how long a cached response is served
const DefaultCacheTTL = 5 * time.Minute

// cachedResult stores cached data with timestamp
type cachedResult struct {
	Value     interface{}
	FetchedAt time.Time
}

// CatalogService fetches movie lists and details with an in-memory request
// cache keyed by query.
type CatalogService struct {
	source domain.MovieSource
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	cache   map[string]cachedResult
	cacheMu sync.RWMutex
}

// NewCatalogService creates a new catalog service. A non-positive ttl uses
// DefaultCacheTTL.
func NewCatalogService(source domain.MovieSource, ttl time.Duration, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CatalogService{
		source: source,
		logger: logger,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]cachedResult),
	}
}

// Trending returns this week's trending movies
func (s *CatalogService) Trending(ctx context.Context) ([]domain.Movie, error) {
	if cached, ok := s.getFromCache(KeyTrending); ok {
		return cached.([]domain.Movie), nil
	}

	movies, err := s.source.Trending(ctx)
	if err != nil {
		s.logger.Error("failed to get trending movies", "error", err)
		return nil, err
	}

	s.setCache(KeyTrending, movies)
	s.logger.Info("loaded trending movies", "count", len(movies))
	return movies, nil
}

// NowPlaying returns one page of new releases
func (s *CatalogService) NowPlaying(ctx context.Context, page int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	key := nowPlayingKey(page)
	if cached, ok := s.getFromCache(key); ok {
		return cached.(domain.Page), nil
	}

	result, err := s.source.NowPlaying(ctx, page)
	if err != nil {
		s.logger.Error("failed to get new releases", "page", page, "error", err)
		return domain.Page{}, err
	}

	s.setCache(key, result)
	s.logger.Info("loaded new releases", "page", page, "count", len(result.Movies))
	return result, nil
}

// Search returns ranked results for term. An empty term never reaches the
// API and returns no results.
func (s *CatalogService) Search(ctx context.Context, term string) ([]domain.Movie, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	key := searchKey(term)
	if cached, ok := s.getFromCache(key); ok {
		return cached.([]domain.Movie), nil
	}

	s.logger.Debug("searching", "query", term)
	results, err := s.source.Search(ctx, term)
	if err != nil {
		s.logger.Warn("search failed", "query", term, "error", err)
		return nil, err
	}

	ranked := search.Rank(results, term)
	s.setCache(key, ranked)
	s.logger.Debug("search complete", "query", term, "results", len(ranked))
	return ranked, nil
}

// MovieDetail returns full details for a movie
func (s *CatalogService) MovieDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	key := movieDetailKey(id)
	if cached, ok := s.getFromCache(key); ok {
		return cached.(*domain.MovieDetail), nil
	}

	detail, err := s.source.MovieDetail(ctx, id)
	if err != nil {
		s.logger.Error("failed to get movie detail", "id", id, "error", err)
		return nil, err
	}

	s.setCache(key, detail)
	return detail, nil
}

// CachedMovieDetail returns a detail already in the cache without fetching
func (s *CatalogService) CachedMovieDetail(id int) (*domain.MovieDetail, bool) {
	cached, ok := s.getFromCache(movieDetailKey(id))
	if !ok {
		return nil, false
	}
	return cached.(*domain.MovieDetail), true
}

// RefreshLists drops cached lists so the next request refetches them
func (s *CatalogService) RefreshLists() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	for key := range s.cache {
		for _, prefix := range ListCachePrefixes() {
			if strings.HasPrefix(key, prefix) {
				delete(s.cache, key)
				break
			}
		}
	}
	s.logger.Debug("refreshed list caches")
}

// getFromCache retrieves an unexpired entry from memory cache
func (s *CatalogService) getFromCache(key string) (interface{}, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	cached, ok := s.cache[key]
	if !ok || s.now().Sub(cached.FetchedAt) >= s.ttl {
		return nil, false
	}
	s.logger.Debug("cache hit", "key", key)
	return cached.Value, true
}

// setCache stores an entry in cache
func (s *CatalogService) setCache(key string, value interface{}) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[key] = cachedResult{
		Value:     value,
		FetchedAt: s.now(),
	}
}
