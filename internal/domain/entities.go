package domain

import (
	"fmt"
	"time"
)

// Movie is the summary record returned by list endpoints (trending, now
// playing, search). JSON tags follow the TMDB field names so persisted
// favorites keep the upstream shape.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"` // Some endpoints use name instead of title
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
}

// DisplayTitle returns the first non-empty of Title and Name, or fallback.
func (m Movie) DisplayTitle(fallback string) string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return fallback
}

// ImagePath returns the backdrop path, falling back to the poster path.
func (m Movie) ImagePath() string {
	if m.BackdropPath != "" {
		return m.BackdropPath
	}
	return m.PosterPath
}

// FormattedRating returns the vote average with one decimal place
func (m Movie) FormattedRating() string {
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// Genre is a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is an entry of a movie's videos sub-resource
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// URL returns the watch URL for YouTube videos, empty otherwise
func (v Video) URL() string {
	if v.Site != "YouTube" || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// CastMember is a credited actor
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// MovieDetail is the full record returned by the movie endpoint with videos
// and credits appended.
type MovieDetail struct {
	Movie
	ReleaseDate string       `json:"release_date,omitempty"`
	Genres      []Genre      `json:"genres,omitempty"`
	Adult       bool         `json:"adult"`
	Videos      []Video      `json:"videos,omitempty"`
	Cast        []CastMember `json:"cast,omitempty"`
}

// Trailer returns the first YouTube trailer
func (d MovieDetail) Trailer() (Video, bool) {
	for _, v := range d.Videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v, true
		}
	}
	return Video{}, false
}

// TrailerURL returns the trailer watch URL, empty when there is no trailer
func (d MovieDetail) TrailerURL() string {
	if v, ok := d.Trailer(); ok {
		return v.URL()
	}
	return ""
}

// MainGenre returns the first genre name or "Unknown"
func (d MovieDetail) MainGenre() string {
	if len(d.Genres) == 0 || d.Genres[0].Name == "" {
		return "Unknown"
	}
	return d.Genres[0].Name
}

// AgeLimit returns the audience label derived from the adult flag
func (d MovieDetail) AgeLimit() string {
	if d.Adult {
		return "18+"
	}
	return "13"
}

// FormattedReleaseDate renders the release date as "02 January 2006".
// Returns empty for missing or unparseable dates.
func (d MovieDetail) FormattedReleaseDate() string {
	if d.ReleaseDate == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", d.ReleaseDate)
	if err != nil {
		return ""
	}
	return t.Format("02 January 2006")
}

// TopCast returns at most n cast members in billing order
func (d MovieDetail) TopCast(n int) []CastMember {
	if n <= 0 || len(d.Cast) == 0 {
		return nil
	}
	if len(d.Cast) < n {
		n = len(d.Cast)
	}
	return d.Cast[:n]
}

// Page is one page of a paginated list endpoint
type Page struct {
	Number       int
	TotalPages   int
	TotalResults int
	Movies       []Movie
}

// HasMore reports whether another page exists
func (p Page) HasMore() bool {
	return p.Number < p.TotalPages
}
