// Package browser opens notebook server pages outside the terminal.
package browser

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// Launcher starts name with args and does not wait for it.
type Launcher func(name string, args ...string) error

func start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Viewer implements notebook.Viewer with the platform opener, or with a
// configured command when one is set.
type Viewer struct {
	command []string
	launch  Launcher
}

// New returns a Viewer. An empty command selects the platform opener.
func New(command string) *Viewer {
	return &Viewer{command: strings.Fields(command), launch: start}
}

// WithLauncher replaces how commands are started.
func (v *Viewer) WithLauncher(l Launcher) *Viewer {
	v.launch = l
	return v
}

// Open opens url. An empty url returns a placeholder that opens on its
// first Navigate.
func (v *Viewer) Open(url string) (notebook.View, error) {
	w := &view{viewer: v}
	if url == "" {
		return w, nil
	}
	if err := w.Navigate(url); err != nil {
		return nil, err
	}
	return w, nil
}

func (v *Viewer) open(url string) error {
	name, args := v.argv(url)
	if name == "" {
		return errors.New("no browser command")
	}
	err := v.launch(name, args...)
	events.Export.Open(url)
	return err
}

func (v *Viewer) argv(url string) (string, []string) {
	if len(v.command) > 0 {
		args := append([]string(nil), v.command[1:]...)
		replaced := false
		for i, a := range args {
			if strings.Contains(a, "%s") {
				args[i] = strings.ReplaceAll(a, "%s", url)
				replaced = true
			}
		}
		if !replaced {
			args = append(args, url)
		}
		return v.command[0], args
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", url}
	default:
		return "xdg-open", []string{url}
	}
}

// view tracks whether anything was opened. A browser tab started by an
// external command cannot be closed from here, so Close only forgets it.
type view struct {
	viewer *Viewer

	mu     sync.Mutex
	url    string
	closed bool
}

func (w *view) Navigate(url string) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errors.New("view closed")
	}
	w.url = url
	w.mu.Unlock()
	return w.viewer.open(url)
}

func (w *view) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}
