package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/notebook-menubar/internal/app"
	"github.com/caarlos0/env/v11"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// File is the config file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Tour    bool
}

const (
	envPrefix     = "NOTEBOOK_MENUBAR_"
	envConfigFile = envPrefix + "CONFIG"
	envXDGConfig  = "XDG_CONFIG_HOME"
	envHome       = "HOME"
	configDirName = "notebook-menubar"
	configName    = "config.toml"
)

// settings is the flat view shared by the config file, the environment
// and the command line.
type settings struct {
	URL            string        `toml:"url" env:"URL"`
	Token          string        `toml:"token" env:"TOKEN"`
	Notebook       string        `toml:"notebook" env:"NOTEBOOK"`
	Kernel         string        `toml:"kernel" env:"KERNEL"`
	Width          int           `toml:"width" env:"WIDTH"`
	Height         int           `toml:"height" env:"HEIGHT"`
	Footer         bool          `toml:"footer" env:"FOOTER"`
	Trace          bool          `toml:"trace" env:"TRACE"`
	Verbose        bool          `toml:"verbose" env:"VERBOSE"`
	LogFile        string        `toml:"log_file" env:"LOG_FILE"`
	Browser        string        `toml:"browser" env:"BROWSER"`
	Poll           time.Duration `toml:"poll" env:"POLL"`
	Locale         string        `toml:"locale" env:"LOCALE"`
	ExportEndpoint string        `toml:"export_endpoint" env:"EXPORT_ENDPOINT"`
	Root           string        `toml:"root" env:"ROOT"`
	Tour           bool          `toml:"tour" env:"TOUR"`
	Editor         string        `toml:"editor" env:"EDITOR"`
}

func defaults() settings {
	return settings{
		URL:            "http://localhost:8888",
		Poll:           30 * time.Second,
		ExportEndpoint: "convert",
		Tour:           true,
	}
}

// newFlagSet declares every command-line flag. Values land in cli and
// configPath; output is discarded so callers decide how to report errors.
func newFlagSet(cli *settings, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("notebook-menubar", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&cli.URL, "url", "", "Jupyter server base URL (default http://localhost:8888)")
	fs.StringVar(&cli.Token, "token", "", "Jupyter server token")
	fs.StringVar(&cli.Notebook, "notebook", "", "notebook path relative to the server root")
	fs.StringVar(&cli.Kernel, "kernel", "", "kernel name for new sessions (server default when empty)")
	fs.IntVar(&cli.Width, "width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&cli.Height, "height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.BoolVar(&cli.Footer, "footer", false, "enable footer hint row (disabled by default)")
	fs.BoolVar(&cli.Trace, "trace", false, "enable verbose JSON trace logging")
	fs.BoolVar(&cli.Verbose, "verbose", false, "print success messages for actions")
	fs.StringVar(&cli.LogFile, "log-file", "", "path to the log file")
	fs.StringVar(&cli.Browser, "browser", "", "command used to open URLs; %s is replaced by the URL")
	fs.DurationVar(&cli.Poll, "poll", 0, "checkpoint poll interval (default 30s, negative disables)")
	fs.StringVar(&cli.Locale, "locale", "", "locale for checkpoint timestamps, e.g. de-DE")
	fs.StringVar(&cli.ExportEndpoint, "export-endpoint", "", "server endpoint used for exports (default convert)")
	fs.StringVar(&cli.Root, "root", "", "open a submenu such as cell or file:download as the root menu")
	fs.BoolVar(&cli.Tour, "tour", false, "offer the user interface tour (default true)")
	fs.StringVar(&cli.Editor, "editor", "", "editor command for notebook metadata")

	return fs
}

// Usage writes the flag summary to w.
func Usage(w io.Writer) {
	fs := newFlagSet(&settings{}, new(string))
	fmt.Fprintf(w, "Usage: notebook-menubar [flags] [notebook.ipynb]\n\nFlags:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// Load parses configuration from CLI arguments, environment variables and
// the optional config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then config file, then built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	envMap := parseEnv(environ)

	var cli settings
	var configPath string
	fs := newFlagSet(&cli, &configPath)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	merged := defaults()
	file, err := resolveConfigFile(configPath, envMap)
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		if _, err := toml.DecodeFile(file, &merged); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	if err := env.ParseWithOptions(&merged, env.Options{Prefix: envPrefix, Environment: envMap}); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		applyFlag(&merged, &cli, f.Name)
	})
	if merged.Notebook == "" && fs.NArg() > 0 {
		merged.Notebook = fs.Arg(0)
	}

	if merged.Width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", merged.Width)
	}
	if merged.Height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", merged.Height)
	}

	cfg := Config{
		App: app.Config{
			BaseURL:        strings.TrimRight(merged.URL, "/"),
			Token:          merged.Token,
			Notebook:       merged.Notebook,
			Kernel:         merged.Kernel,
			Width:          merged.Width,
			Height:         merged.Height,
			ShowFooter:     merged.Footer,
			Verbose:        merged.Verbose,
			RootMenu:       merged.Root,
			Browser:        merged.Browser,
			Poll:           merged.Poll,
			Locale:         merged.Locale,
			ExportEndpoint: merged.ExportEndpoint,
			Tour:           merged.Tour,
			Editor:         merged.Editor,
		},
		Logging: Logging{
			FilePath: merged.LogFile,
			Trace:    merged.Trace,
		},
		Features: Features{
			Verbose: merged.Verbose,
			Tour:    merged.Tour,
		},
		File: file,
		Flags: map[string]string{
			"url":            merged.URL,
			"notebook":       merged.Notebook,
			"kernel":         merged.Kernel,
			"width":          strconv.Itoa(merged.Width),
			"height":         strconv.Itoa(merged.Height),
			"footer":         strconv.FormatBool(merged.Footer),
			"trace":          strconv.FormatBool(merged.Trace),
			"verbose":        strconv.FormatBool(merged.Verbose),
			"logFile":        merged.LogFile,
			"browser":        merged.Browser,
			"poll":           merged.Poll.String(),
			"locale":         merged.Locale,
			"exportEndpoint": merged.ExportEndpoint,
			"root":           merged.Root,
			"tour":           strconv.FormatBool(merged.Tour),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func applyFlag(dst, cli *settings, name string) {
	switch name {
	case "url":
		dst.URL = cli.URL
	case "token":
		dst.Token = cli.Token
	case "notebook":
		dst.Notebook = cli.Notebook
	case "kernel":
		dst.Kernel = cli.Kernel
	case "width":
		dst.Width = cli.Width
	case "height":
		dst.Height = cli.Height
	case "footer":
		dst.Footer = cli.Footer
	case "trace":
		dst.Trace = cli.Trace
	case "verbose":
		dst.Verbose = cli.Verbose
	case "log-file":
		dst.LogFile = cli.LogFile
	case "browser":
		dst.Browser = cli.Browser
	case "poll":
		dst.Poll = cli.Poll
	case "locale":
		dst.Locale = cli.Locale
	case "export-endpoint":
		dst.ExportEndpoint = cli.ExportEndpoint
	case "root":
		dst.Root = cli.Root
	case "tour":
		dst.Tour = cli.Tour
	case "editor":
		dst.Editor = cli.Editor
	}
}

// resolveConfigFile picks the -config flag, then $NOTEBOOK_MENUBAR_CONFIG,
// then the XDG location. Only an explicitly named file has to exist.
func resolveConfigFile(flagPath string, envMap map[string]string) (string, error) {
	explicit := flagPath
	if explicit == "" {
		explicit = envMap[envConfigFile]
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	dir := envMap[envXDGConfig]
	if dir == "" {
		home := envMap[envHome]
		if home == "" {
			return "", nil
		}
		dir = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(dir, configDirName, configName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config file: %w", err)
	}
	return candidate, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	var errs []error
	if strings.TrimSpace(cfg.App.Notebook) == "" {
		errs = append(errs, errors.New("notebook path is required (-notebook or first argument)"))
	}
	u, err := url.Parse(cfg.App.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid server url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("server url must be http or https (got %q)", cfg.App.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("server url has no host (got %q)", cfg.App.BaseURL))
	}
	return errors.Join(errs...)
}
