package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (r *recordingOpener) Open(url string) error {
	r.urls = append(r.urls, url)
	return r.err
}

func detailWithVideos(id int, videos ...domain.Video) *domain.MovieDetail {
	return &domain.MovieDetail{Movie: domain.Movie{ID: id}, Videos: videos}
}

func TestTrailerOpen(t *testing.T) {
	src := newFakeSource()
	src.details[1] = detailWithVideos(1,
		domain.Video{Key: "teaser", Site: "YouTube", Type: "Teaser"},
		domain.Video{Key: "abc", Site: "YouTube", Type: "Trailer"},
	)
	opener := &recordingOpener{}
	svc := NewTrailerService(src, opener, log.NullLogger())

	if err := svc.Open(context.Background(), 1); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(opener.urls) != 1 || opener.urls[0] != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("opened %v", opener.urls)
	}
}

func TestTrailerOpenErrors(t *testing.T) {
	src := newFakeSource()
	src.details[1] = detailWithVideos(1, domain.Video{Key: "v", Site: "Vimeo", Type: "Trailer"})
	src.details[2] = detailWithVideos(2, domain.Video{Key: "ok", Site: "YouTube", Type: "Trailer"})

	tests := []struct {
		name      string
		id        int
		openerErr error
		want      error
		notice    string
	}{
		{"no youtube trailer", 1, nil, domain.ErrNoTrailer, "Trailer not available yet."},
		{"detail fetch fails", 99, nil, domain.ErrMovieNotFound, "Failed to load trailer."},
		{"browser fails", 2, errors.New("no browser"), nil, "Failed to load trailer."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := &recordingOpener{err: tt.openerErr}
			svc := NewTrailerService(src, opener, log.NullLogger())

			err := svc.Open(context.Background(), tt.id)
			if err == nil {
				t.Fatal("Open() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Open() error = %v, want %v", err, tt.want)
			}
			if got := NoticeText(err); got != tt.notice {
				t.Errorf("NoticeText() = %q, want %q", got, tt.notice)
			}
		})
	}
}

func TestNoticeTextNil(t *testing.T) {
	if got := NoticeText(nil); got != "" {
		t.Errorf("NoticeText(nil) = %q", got)
	}
}
