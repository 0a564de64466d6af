package favorites

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

func exportFixture() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "Arrival", VoteAverage: 7.6, PosterPath: "/a.jpg"},
		{ID: 2, Name: "Dune", VoteAverage: 8.1},
	}
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, exportFixture(), FormatJSON); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc exportDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(doc.Favorites) != 2 {
		t.Fatalf("got %d favorites, want 2", len(doc.Favorites))
	}
	if doc.Favorites[1].Title != "Dune" {
		t.Errorf("Name should fill the title, got %q", doc.Favorites[1].Title)
	}
}

func TestExport_TOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, exportFixture(), "TOML"); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), "[[favorite]]") {
		t.Errorf("expected an array of tables, got:\n%s", buf.String())
	}

	var doc exportDocument
	if err := toml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not TOML: %v", err)
	}
	if len(doc.Favorites) != 2 || doc.Favorites[0].ID != 1 || doc.Favorites[0].PosterPath != "/a.jpg" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestExport_EmptyAndUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, ""); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"favorites": []`) {
		t.Errorf("empty export should be an empty list, got %s", buf.String())
	}

	if err := Export(&buf, nil, "yaml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
