package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
)

type fakeSource struct {
	trending   []domain.Movie
	pages      map[int]domain.Page
	results    map[string][]domain.Movie
	details    map[int]*domain.MovieDetail
	err        error
	calls      map[string]int
	lastSearch string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:   make(map[int]domain.Page),
		results: make(map[string][]domain.Movie),
		details: make(map[int]*domain.MovieDetail),
		calls:   make(map[string]int),
	}
}

func (f *fakeSource) Trending(ctx context.Context) ([]domain.Movie, error) {
	f.calls["trending"]++
	return f.trending, f.err
}

func (f *fakeSource) NowPlaying(ctx context.Context, page int) (domain.Page, error) {
	f.calls["now-playing"]++
	return f.pages[page], f.err
}

func (f *fakeSource) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	f.calls["search"]++
	f.lastSearch = query
	return f.results[query], f.err
}

func (f *fakeSource) MovieDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	f.calls["detail"]++
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return d, nil
}

func TestCatalogTrendingCacheHit(t *testing.T) {
	src := newFakeSource()
	src.trending = []domain.Movie{{ID: 1, Title: "Dune"}}
	svc := NewCatalogService(src, time.Minute, log.NullLogger())

	for i := 0; i < 3; i++ {
		movies, err := svc.Trending(context.Background())
		if err != nil {
			t.Fatalf("Trending() error = %v", err)
		}
		if len(movies) != 1 || movies[0].ID != 1 {
			t.Fatalf("Trending() = %+v", movies)
		}
	}
	if src.calls["trending"] != 1 {
		t.Errorf("source called %d times, want 1", src.calls["trending"])
	}
}

func TestCatalogCacheExpires(t *testing.T) {
	src := newFakeSource()
	svc := NewCatalogService(src, time.Minute, log.NullLogger())
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.Trending(context.Background())
	now = now.Add(30 * time.Second)
	svc.Trending(context.Background())
	if src.calls["trending"] != 1 {
		t.Fatalf("calls before expiry = %d, want 1", src.calls["trending"])
	}

	now = now.Add(time.Minute)
	svc.Trending(context.Background())
	if src.calls["trending"] != 2 {
		t.Errorf("calls after expiry = %d, want 2", src.calls["trending"])
	}
}

func TestCatalogNowPlayingKeyedByPage(t *testing.T) {
	src := newFakeSource()
	src.pages[1] = domain.Page{Number: 1, TotalPages: 2, Movies: []domain.Movie{{ID: 1}}}
	src.pages[2] = domain.Page{Number: 2, TotalPages: 2, Movies: []domain.Movie{{ID: 2}}}
	svc := NewCatalogService(src, time.Minute, log.NullLogger())

	p1, _ := svc.NowPlaying(context.Background(), 1)
	p2, _ := svc.NowPlaying(context.Background(), 2)
	svc.NowPlaying(context.Background(), 1)

	if p1.Movies[0].ID != 1 || p2.Movies[0].ID != 2 {
		t.Fatalf("pages mixed up: %+v %+v", p1, p2)
	}
	if src.calls["now-playing"] != 2 {
		t.Errorf("source called %d times, want 2", src.calls["now-playing"])
	}

	// Page zero is treated as the first page
	svc.NowPlaying(context.Background(), 0)
	if src.calls["now-playing"] != 2 {
		t.Errorf("page 0 refetched; calls = %d", src.calls["now-playing"])
	}
}

func TestCatalogSearch(t *testing.T) {
	src := newFakeSource()
	src.results["inception"] = []domain.Movie{
		{ID: 2, Title: "The Inception Story"},
		{ID: 1, Title: "Inception"},
	}
	svc := NewCatalogService(src, time.Minute, log.NullLogger())

	results, err := svc.Search(context.Background(), "  inception ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if src.lastSearch != "inception" {
		t.Errorf("source query = %q, want trimmed", src.lastSearch)
	}
	if len(results) != 2 || results[0].ID != 1 {
		t.Errorf("Search() = %+v, want exact match first", results)
	}

	svc.Search(context.Background(), "INCEPTION")
	if src.calls["search"] != 1 {
		t.Errorf("case variant refetched; calls = %d", src.calls["search"])
	}
}

func TestCatalogEmptySearchSkipsSource(t *testing.T) {
	src := newFakeSource()
	svc := NewCatalogService(src, time.Minute, log.NullLogger())

	results, err := svc.Search(context.Background(), "   ")
	if err != nil || results != nil {
		t.Fatalf("Search(blank) = %v, %v", results, err)
	}
	if src.calls["search"] != 0 {
		t.Errorf("source called for blank query")
	}
}

func TestCatalogErrorsNotCached(t *testing.T) {
	src := newFakeSource()
	src.err = domain.ErrAPIUnreachable
	svc := NewCatalogService(src, time.Minute, log.NullLogger())

	if _, err := svc.Trending(context.Background()); !errors.Is(err, domain.ErrAPIUnreachable) {
		t.Fatalf("Trending() error = %v", err)
	}

	src.err = nil
	src.trending = []domain.Movie{{ID: 9}}
	movies, err := svc.Trending(context.Background())
	if err != nil || len(movies) != 1 {
		t.Errorf("Trending() after recovery = %v, %v", movies, err)
	}
}

func TestCatalogRefreshListsKeepsDetails(t *testing.T) {
	src := newFakeSource()
	src.details[7] = &domain.MovieDetail{Movie: domain.Movie{ID: 7}}
	svc := NewCatalogService(src, time.Minute, log.NullLogger())

	svc.Trending(context.Background())
	svc.MovieDetail(context.Background(), 7)
	svc.RefreshLists()

	svc.Trending(context.Background())
	svc.MovieDetail(context.Background(), 7)

	if src.calls["trending"] != 2 {
		t.Errorf("trending calls = %d, want 2", src.calls["trending"])
	}
	if src.calls["detail"] != 1 {
		t.Errorf("detail calls = %d, want 1", src.calls["detail"])
	}
	if _, ok := svc.CachedMovieDetail(7); !ok {
		t.Error("CachedMovieDetail(7) missing")
	}
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{nowPlayingKey(3), "now-playing:3"},
		{movieDetailKey(42), "movie-detail:42"},
		{searchKey(" Dune "), "search:dune"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
