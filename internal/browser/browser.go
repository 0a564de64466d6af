// Package browser opens URLs with the system default handler.
package browser

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener opens URLs in the system browser, or in a configured command
type Opener struct {
	command string // configured browser command, empty for system default
	logger  *slog.Logger
	start   func(name string, args ...string) error
}

// New creates a new Opener. An empty command uses the platform default
// (open, xdg-open or cmd start).
func New(command string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		logger:  logger,
		start:   startDetached,
	}
}

// Open launches the URL without waiting for the browser to exit
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open %q: not an http(s) URL", rawURL)
	}

	name, args := o.commandFor(rawURL, runtime.GOOS)
	o.logger.Info("opening url", "command", name, "url", rawURL)

	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	return nil
}

// commandFor returns the command line used to open rawURL on goos
func (o *Opener) commandFor(rawURL, goos string) (string, []string) {
	if o.command != "" {
		return o.command, []string{rawURL}
	}

	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "cmd", []string{"/c", "start", "", rawURL}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{rawURL}
	}
}

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}
