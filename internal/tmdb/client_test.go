package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "secret-token", log.NullLogger(), WithLanguage("en-US"))
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestClient_TrendingSendsBearerAndLanguage(t *testing.T) {
	var gotAuth, gotPath string
	var gotQuery url.Values

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[
			{"id":1,"title":"Dune","poster_path":"/dune.jpg","backdrop_path":null,"vote_average":8.2},
			{"id":2,"name":"Arcane","poster_path":null,"vote_average":9}
		]}`))
	})

	movies, err := c.Trending(testContext(t))
	if err != nil {
		t.Fatalf("Trending returned error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("Authorization = %q, want Bearer secret-token", gotAuth)
	}
	if gotPath != "/trending/movie/week" || gotQuery.Get("language") != "en-US" {
		t.Fatalf("request = %s?%s", gotPath, gotQuery.Encode())
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies, want 2", len(movies))
	}
	if movies[0].PosterPath != "/dune.jpg" || movies[0].BackdropPath != "" {
		t.Fatalf("movie[0] = %+v", movies[0])
	}
	if movies[1].DisplayTitle("Untitled") != "Arcane" {
		t.Fatalf("DisplayTitle = %q, want Arcane", movies[1].DisplayTitle("Untitled"))
	}
}

func TestClient_NowPlayingPaging(t *testing.T) {
	var gotPage string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"page":2,"total_pages":3,"total_results":45,"results":[{"id":7}]}`))
	})

	page, err := c.NowPlaying(testContext(t), 2)
	if err != nil {
		t.Fatalf("NowPlaying returned error: %v", err)
	}
	if gotPage != "2" {
		t.Fatalf("page param = %q, want 2", gotPage)
	}
	if page.Number != 2 || !page.HasMore() || len(page.Movies) != 1 {
		t.Fatalf("page = %+v", page)
	}
}

func TestClient_SearchEncodesQuery(t *testing.T) {
	var gotQuery url.Values
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results":[]}`))
	})

	movies, err := c.Search(testContext(t), " star wars ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery.Get("query") != "star wars" || gotQuery.Get("include_adult") != "false" {
		t.Fatalf("query = %v", gotQuery)
	}
	if len(movies) != 0 {
		t.Fatalf("got %d movies, want 0", len(movies))
	}
}

func TestClient_SearchEmptySkipsRequest(t *testing.T) {
	called := false
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	movies, err := c.Search(testContext(t), "   ")
	if err != nil || movies != nil {
		t.Fatalf("Search = (%v, %v), want (nil, nil)", movies, err)
	}
	if called {
		t.Fatalf("empty search issued a request")
	}
}

func TestClient_MovieDetail(t *testing.T) {
	var gotQuery url.Values
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"id":42,"title":"The Answer","release_date":"2024-03-01","adult":false,
			"genres":[{"id":18,"name":"Drama"}],
			"videos":{"results":[
				{"id":"a","key":"teaser1","site":"YouTube","type":"Teaser"},
				{"id":"b","key":"abc123","site":"YouTube","type":"Trailer"}
			]},
			"credits":{"cast":[{"id":1,"name":"Actor","character":"Lead","profile_path":null}]}
		}`))
	})

	d, err := c.MovieDetail(testContext(t), 42)
	if err != nil {
		t.Fatalf("MovieDetail returned error: %v", err)
	}
	if gotQuery.Get("append_to_response") != "videos,credits" {
		t.Fatalf("append_to_response = %q", gotQuery.Get("append_to_response"))
	}
	if d.ID != 42 || d.MainGenre() != "Drama" || d.AgeLimit() != "13" {
		t.Fatalf("detail = %+v", d)
	}
	if d.TrailerURL() != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("TrailerURL = %q", d.TrailerURL())
	}
	if d.FormattedReleaseDate() != "01 March 2024" {
		t.Fatalf("FormattedReleaseDate = %q", d.FormattedReleaseDate())
	}
	if len(d.Cast) != 1 || d.Cast[0].Character != "Lead" {
		t.Fatalf("cast = %+v", d.Cast)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"not found", http.StatusNotFound, domain.ErrMovieNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"status_code":7,"status_message":"nope"}`))
			})
			_, err := c.MovieDetail(testContext(t), 1)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("server error", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		if _, err := c.Trending(testContext(t)); err == nil {
			t.Fatalf("expected error for 500")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":`))
		})
		if _, err := c.Trending(testContext(t)); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewClient(server.URL, "t", log.NullLogger())
	_, err := c.Trending(testContext(t))
	if !errors.Is(err, domain.ErrAPIUnreachable) {
		t.Fatalf("err = %v, want ErrAPIUnreachable", err)
	}
}

func TestImages(t *testing.T) {
	img := Images{PosterBase: "https://image.tmdb.org/t/p/w500/", BackdropBase: "https://image.tmdb.org/t/p/original"}
	if got := img.PosterURL("/a.jpg"); got != "https://image.tmdb.org/t/p/w500/a.jpg" {
		t.Fatalf("PosterURL = %q", got)
	}
	if got := img.BackdropURL(""); got != "" {
		t.Fatalf("BackdropURL(\"\") = %q, want empty", got)
	}
}
