package browser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mmcdole/marquee/internal/log"
)

func TestCommandFor(t *testing.T) {
	const u = "https://www.youtube.com/watch?v=abc"
	tests := []struct {
		goos     string
		command  string
		wantName string
		wantArgs []string
	}{
		{"darwin", "", "open", []string{u}},
		{"linux", "", "xdg-open", []string{u}},
		{"freebsd", "", "xdg-open", []string{u}},
		{"windows", "", "cmd", []string{"/c", "start", "", u}},
		{"linux", "firefox", "firefox", []string{u}},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.command, func(t *testing.T) {
			o := New(tt.command, log.NullLogger())
			name, args := o.commandFor(u, tt.goos)
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	o := New("mybrowser", log.NullLogger())
	var gotName string
	var gotArgs []string
	o.start = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	if err := o.Open("https://example.com/x"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if gotName != "mybrowser" || len(gotArgs) != 1 || gotArgs[0] != "https://example.com/x" {
		t.Errorf("launched %q %q", gotName, gotArgs)
	}
}

func TestOpenRejectsNonHTTP(t *testing.T) {
	o := New("", log.NullLogger())
	o.start = func(string, ...string) error {
		t.Fatal("start called for rejected URL")
		return nil
	}

	for _, u := range []string{"file:///etc/passwd", "javascript:alert(1)", "::nope"} {
		if err := o.Open(u); err == nil {
			t.Errorf("Open(%q) error = nil", u)
		}
	}
}

func TestOpenLaunchFailure(t *testing.T) {
	o := New("", log.NullLogger())
	o.start = func(string, ...string) error { return errors.New("not found") }

	if err := o.Open("https://example.com"); err == nil {
		t.Fatal("Open() error = nil, want launch failure")
	}
}
