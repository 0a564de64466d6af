package favorites

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

// Export formats
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// exportEntry is the flattened shape written by Export
type exportEntry struct {
	ID           int     `json:"id" toml:"id"`
	Title        string  `json:"title" toml:"title"`
	Overview     string  `json:"overview,omitempty" toml:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty" toml:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty" toml:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average" toml:"vote_average"`
}

type exportDocument struct {
	Favorites []exportEntry `json:"favorites" toml:"favorite"`
}

// Export writes movies to w in the given format ("json" or "toml").
func Export(w io.Writer, movies []domain.Movie, format string) error {
	doc := exportDocument{Favorites: make([]exportEntry, 0, len(movies))}
	for _, m := range movies {
		doc.Favorites = append(doc.Favorites, exportEntry{
			ID:           m.ID,
			Title:        m.DisplayTitle(""),
			Overview:     m.Overview,
			PosterPath:   m.PosterPath,
			BackdropPath: m.BackdropPath,
			VoteAverage:  m.VoteAverage,
		})
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode favorites: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("failed to encode favorites: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	return nil
}
