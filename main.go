package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/app"
	"github.com/atomicstack/notebook-menubar/internal/config"
	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"golang.org/x/term"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stderr, app.Run))
}

// run loads configuration, sets up logging and starts the menubar with
// start. It returns the process exit code.
func run(args, environ []string, stderr io.Writer, start func(app.Config) error) int {
	cfg, err := config.LoadArgs(args, environ)
	if errors.Is(err, flag.ErrHelp) {
		config.Usage(stderr)
		return exitOK
	}
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitConfig
	}

	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if logging.TraceEnabled() {
		events.App.Start(newStartupTrace(cfg))
	}

	if err := start(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

const redactedToken = "<redacted>"

// startupTrace is the first trace entry of a run.
type startupTrace struct {
	Argv            []string          `json:"argv"`
	Flags           map[string]string `json:"flags"`
	Config          config.Config     `json:"config"`
	ConfigFile      string            `json:"configFile,omitempty"`
	LogFile         string            `json:"logFile"`
	Executable      string            `json:"executable,omitempty"`
	ExecutableError string            `json:"executableError,omitempty"`
	Cwd             string            `json:"cwd,omitempty"`
	CwdError        string            `json:"cwdError,omitempty"`
	TTY             ttyDetails        `json:"tty"`
}

// newStartupTrace collects the runtime context worth having when a user
// sends in a trace log. The server token never appears in it.
func newStartupTrace(cfg config.Config) startupTrace {
	redacted := cfg
	if redacted.App.Token != "" {
		redacted.App.Token = redactedToken
	}
	flags := make(map[string]string, len(cfg.Flags)+1)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = fmt.Sprint(cfg.Logging.Trace)

	trace := startupTrace{
		Argv:       redactArgs(cfg.Args),
		Flags:      flags,
		Config:     redacted,
		ConfigFile: cfg.File,
		LogFile:    logging.Path(),
		TTY:        collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		trace.Executable = exe
	} else {
		trace.ExecutableError = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		trace.Cwd = cwd
	} else {
		trace.CwdError = err.Error()
	}
	return trace
}

// redactArgs hides the value of -token in the traced argv.
func redactArgs(args []string) []string {
	out := append([]string(nil), args...)
	for i, arg := range out {
		name := strings.TrimLeft(arg, "-")
		switch {
		case name == "token" && i+1 < len(out):
			out[i+1] = redactedToken
		case strings.HasPrefix(name, "token="):
			out[i] = arg[:strings.Index(arg, "=")+1] + redactedToken
		}
	}
	return out
}

type ttyDetails struct {
	Detected *ttyProbe  `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails probes the standard descriptors. Detected is the
// first one that reports a size, which is what the TUI will lay out to.
func collectTTYDetails() ttyDetails {
	details := ttyDetails{}
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		probe := probeTTY(strings.TrimPrefix(f.Name(), "/dev/"), int(f.Fd()))
		details.Probes = append(details.Probes, probe)
		if details.Detected == nil && probe.Width > 0 {
			detected := probe
			details.Detected = &detected
		}
	}
	return details
}

func probeTTY(name string, fd int) ttyProbe {
	probe := ttyProbe{Name: name}
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	return probe
}
