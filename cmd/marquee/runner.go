package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/browser"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/notify"
	"github.com/mmcdole/marquee/internal/selection"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNotConfigured is returned when no TMDB token is available
var ErrNotConfigured = errors.New("no TMDB token configured, run `marquee setup`")

// Runner holds the I/O streams shared by every command action
type Runner struct {
	input  io.Reader
	lines  *bufio.Reader
	output io.Writer

	// readSecret reads a line without echo when input is a terminal
	readSecret func() (string, error)
}

// NewRunner creates a Runner reading from in and writing to out
func NewRunner(in io.Reader, out io.Writer) *Runner {
	r := &Runner{input: in, output: out}
	r.readSecret = r.readToken
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		browseCommand, setupCommand, favoritesCommand, versionCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// loadConfig reads the config named by --config and sets up file logging
func (r *Runner) loadConfig(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// Browse runs the TUI
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Info("starting marquee", "version", Version)

	if !cfg.IsConfigured() {
		return ErrNotConfigured
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer st.Close()

	notifier := notify.New(cfg.UI.NoticeDuration)
	favs := favorites.New(st, notifier, logger)

	client := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.Token, logger,
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond),
	)
	catalog := service.NewCatalogService(client, cfg.Cache.TTL, logger)
	trailers := service.NewTrailerService(catalog, browser.New(cfg.UI.Browser, logger), logger)

	model := tui.NewModel(tui.Deps{
		Catalog:   catalog,
		Trailers:  trailers,
		Selection: selection.New(),
		Favorites: favs,
		Notifier:  notifier,
		Images: tmdb.Images{
			PosterBase:   cfg.TMDB.ImageBaseURL,
			BackdropBase: cfg.TMDB.BackdropBaseURL,
		},
		UI:     cfg.UI,
		Logger: logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// Setup prompts for a TMDB token and writes it to the config file
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output)
	fmt.Fprintln(r.output, "Welcome to Marquee!")
	fmt.Fprintln(r.output)
	fmt.Fprintln(r.output, "Create a read access token at https://www.themoviedb.org/settings/api")

	var token string
	for token == "" {
		fmt.Fprint(r.output, "TMDB read access token: ")
		token, err = r.readSecret()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if token == "" {
			fmt.Fprintln(r.output, "Token cannot be empty. Please try again.")
		}
	}
	cfg.TMDB.Token = token

	if err := config.SaveConfig(cfg, cmd.String("config")); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	logger.Info("config saved")

	fmt.Fprintln(r.output)
	fmt.Fprintln(r.output, "✓ Configuration saved!")
	fmt.Fprintln(r.output, "Run marquee again to start browsing.")
	return nil
}

// readToken reads the token without echo from a terminal, or a plain line
// from any other input
func (r *Runner) readToken() (string, error) {
	if f, ok := r.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(r.output)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	if r.lines == nil {
		r.lines = bufio.NewReader(r.input)
	}
	line, err := r.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(line), nil
}

// openFavorites opens the durable store and hydrates the favorites from it
func (r *Runner) openFavorites(cmd *cli.Command) (*favorites.Store, func(), error) {
	cfg, logger, err := r.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}
	return favorites.New(st, nil, logger), closeFn, nil
}

// FavoritesList prints the favorites in insertion order
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	favs, closeFn, err := r.openFavorites(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	movies := favs.List()
	if cmd.Bool("json") {
		enc := json.NewEncoder(r.output)
		enc.SetIndent("", "  ")
		return enc.Encode(movies)
	}

	if len(movies) == 0 {
		fmt.Fprintln(r.output, "You don't have a favorite movie yet")
		return nil
	}

	w := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tRATING")
	for _, m := range movies {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.DisplayTitle("Untitled"), m.FormattedRating())
	}
	return w.Flush()
}

// FavoritesExport writes the favorites as JSON or TOML
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	favs, closeFn, err := r.openFavorites(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	out := r.output
	if path := cmd.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return favorites.Export(out, favs.List(), cmd.String("format"))
}

// FavoritesClear removes every favorite
func (r *Runner) FavoritesClear(ctx context.Context, cmd *cli.Command) error {
	favs, closeFn, err := r.openFavorites(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	n := favs.Len()
	if err := favs.Clear(); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	fmt.Fprintf(r.output, "Removed %d favorite(s)\n", n)
	return nil
}

// Version prints the build version
func (r *Runner) Version(ctx context.Context, cmd *cli.Command) error {
	fmt.Fprintf(r.output, "marquee %s\n", Version)
	return nil
}
