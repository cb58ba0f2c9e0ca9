package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/notebook-menubar/internal/backend"
	"github.com/atomicstack/notebook-menubar/internal/browser"
	"github.com/atomicstack/notebook-menubar/internal/data/dispatcher"
	"github.com/atomicstack/notebook-menubar/internal/document"
	"github.com/atomicstack/notebook-menubar/internal/jupyter"
	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
	"github.com/atomicstack/notebook-menubar/internal/state"
	"github.com/atomicstack/notebook-menubar/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	BaseURL        string
	Token          string
	Notebook       string
	Kernel         string
	Width          int
	Height         int
	ShowFooter     bool
	Verbose        bool
	RootMenu       string
	Browser        string
	Poll           time.Duration
	Locale         string
	ExportEndpoint string
	Tour           bool
	Editor         string
}

// Components is the wired object graph behind the menubar.
type Components struct {
	Document *document.Document
	Registry *menu.Registry
	Watcher  *backend.Watcher
	Bridge   *ui.Bridge
	Model    *ui.Model
}

// Build connects to the server, loads the notebook and wires the registry,
// synchronizer and UI model. The returned bridge buffers dialogs until a
// program is attached.
func Build(ctx context.Context, cfg Config) (*Components, error) {
	client := jupyter.NewClient(cfg.BaseURL, cfg.Token, nil)
	bus := notebook.NewBus()
	bridge := ui.NewBridge()

	doc := document.New(cfg.Notebook, document.Options{
		Store:   client,
		Kernels: client,
		Channels: func(kernelID, sessionID string) document.Channel {
			return client.Channel(kernelID, sessionID)
		},
		Dialog:     bridge,
		Metadata:   bridge,
		Bus:        bus,
		KernelName: cfg.Kernel,
		Context:    ctx,
	})

	// Subscribe before loading so the initial trust and checkpoint events
	// reach the menus.
	watcher := backend.NewWatcher(bus, doc, cfg.Poll)
	if err := doc.Load(ctx); err != nil {
		watcher.Stop()
		return nil, fmt.Errorf("open notebook: %w", err)
	}

	trust := state.NewTrustStore()
	checkpoints := state.NewCheckpointStore()
	sync := dispatcher.New(trust, checkpoints, doc, dispatcher.Options{Locale: cfg.Locale})

	deps := menu.Deps{
		Document:       doc,
		Contents:       jupyter.NewCreator(ctx, client),
		Dialog:         bridge,
		Viewer:         browser.New(cfg.Browser),
		Shell:          bridge,
		Layout:         bridge,
		Renamer:        bridge,
		QuickHelp:      bridge,
		BaseURL:        cfg.BaseURL,
		ExportEndpoint: cfg.ExportEndpoint,
		Context:        ctx,
	}
	if cfg.Tour {
		deps.Tour = bridge
	}
	registry, err := menu.NewActionRegistry(deps)
	if err != nil {
		watcher.Stop()
		doc.Close()
		return nil, fmt.Errorf("bind actions: %w", err)
	}

	model := ui.NewModel(ui.Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowFooter:    cfg.ShowFooter,
		Verbose:       cfg.Verbose,
		RootMenu:      cfg.RootMenu,
		Registry:      registry,
		Watcher:       watcher,
		Synchronizer:  sync,
		Trust:         trust,
		Checkpoints:   checkpoints,
		Document:      doc,
		Rename:        doc.Rename,
		TourAvailable: cfg.Tour,
		Editor:        cfg.Editor,
	})

	return &Components{
		Document: doc,
		Registry: registry,
		Watcher:  watcher,
		Bridge:   bridge,
		Model:    model,
	}, nil
}

// Close stops the watcher and releases the kernel channel.
func (c *Components) Close() {
	c.Watcher.Stop()
	c.Watcher.Wait()
	if err := c.Document.Close(); err != nil {
		logging.Error(err)
	}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer components.Close()
	defer func() { events.App.Stop(err) }()

	events.App.Ready(cfg.BaseURL, components.Document.Path())
	program := tea.NewProgram(components.Model, tea.WithAltScreen())
	components.Bridge.SetProgram(program)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
