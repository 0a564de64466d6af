package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/store"
)

// testEnv points storage and logging at a temp dir and returns the config path
func testEnv(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("MARQUEE_STORAGE_PATH", filepath.Join(dir, "marquee.db"))
	t.Setenv("MARQUEE_LOGGING_FILE", filepath.Join(dir, "marquee.log"))
	t.Setenv("MARQUEE_TMDB_TOKEN", "")
	return dir, filepath.Join(dir, "config.yaml")
}

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(strings.NewReader(input), &out)
	err := newApp(r).Run(context.Background(), append([]string{"marquee"}, args...))
	return out.String(), err
}

func seedFavorites(t *testing.T, dir string, movies ...domain.Movie) {
	t.Helper()
	st, err := store.Open(filepath.Join(dir, "marquee.db"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	defer st.Close()

	favs := favorites.New(st, nil, nil)
	for _, m := range movies {
		if _, err := favs.Toggle(m); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
	}
}

func TestVersion(t *testing.T) {
	testEnv(t)
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if out != "marquee dev\n" {
		t.Errorf("version output = %q", out)
	}
}

func TestBrowse_NotConfigured(t *testing.T) {
	_, cfgPath := testEnv(t)
	_, err := run(t, "", "--config", cfgPath, "browse")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("browse error = %v, want ErrNotConfigured", err)
	}
}

func TestSetup_SavesToken(t *testing.T) {
	_, cfgPath := testEnv(t)

	out, err := run(t, "\n  secret-token \n", "--config", cfgPath, "setup")
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}
	if !strings.Contains(out, "Token cannot be empty") {
		t.Errorf("empty line should be rejected, got:\n%s", out)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TMDB.Token != "secret-token" {
		t.Errorf("token = %q, want secret-token", cfg.TMDB.Token)
	}
}

func TestSetup_InputClosed(t *testing.T) {
	_, cfgPath := testEnv(t)
	if _, err := run(t, "", "--config", cfgPath, "setup"); err == nil {
		t.Error("expected an error when input ends before a token is read")
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Error("config should not be written without a token")
	}
}

func TestFavorites_ListExportClear(t *testing.T) {
	dir, cfgPath := testEnv(t)
	seedFavorites(t, dir,
		domain.Movie{ID: 10, Title: "Arrival", VoteAverage: 7.6},
		domain.Movie{ID: 20, Title: "Dune", VoteAverage: 8.1},
	)

	out, err := run(t, "", "--config", cfgPath, "favorites", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if strings.Index(out, "Arrival") > strings.Index(out, "Dune") || !strings.Contains(out, "7.6") {
		t.Errorf("list should show favorites in insertion order:\n%s", out)
	}

	exportPath := filepath.Join(dir, "favorites.toml")
	if _, err := run(t, "", "--config", cfgPath, "favorites", "export", "--format", "toml", "--output", exportPath); err != nil {
		t.Fatalf("export error = %v", err)
	}
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), `title = 'Dune'`) && !strings.Contains(string(data), `title = "Dune"`) {
		t.Errorf("unexpected TOML export:\n%s", data)
	}

	out, err = run(t, "", "--config", cfgPath, "favorites", "clear")
	if err != nil {
		t.Fatalf("clear error = %v", err)
	}
	if !strings.Contains(out, "Removed 2") {
		t.Errorf("clear output = %q", out)
	}

	out, err = run(t, "", "--config", cfgPath, "favorites", "list", "--json")
	if err != nil {
		t.Fatalf("list --json error = %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("favorites should be empty after clear, got %q", out)
	}
}
