package ui

import (
	"context"
	"reflect"
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/backend"
	"github.com/atomicstack/notebook-menubar/internal/data/dispatcher"
	"github.com/atomicstack/notebook-menubar/internal/document"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/atomicstack/notebook-menubar/internal/state"
	"github.com/atomicstack/notebook-menubar/internal/theme"
	"github.com/atomicstack/notebook-menubar/internal/ui/command"
	uistate "github.com/atomicstack/notebook-menubar/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeRenameForm
	ModeShortcuts
	ModeTour
)

const (
	menuHeaderSeparator = " → "
	defaultRootTitle    = "menu"
)

var styles = theme.Default()

var headerSegmentCleaner = strings.NewReplacer("_", " ", "-", " ")

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// DocumentView is the read side of the document shown in the header.
type DocumentView interface {
	Summary() document.Summary
}

// RenameFunc renames the document.
type RenameFunc func(ctx context.Context, name string) error

// Options configures a Model. Editor is the metadata editor command;
// $VISUAL, $EDITOR and vi are tried when it is empty.
type Options struct {
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	RootMenu      string
	Registry      command.Dispatcher
	Watcher       *backend.Watcher
	Synchronizer  *dispatcher.Synchronizer
	Trust         state.TrustStore
	Checkpoints   state.CheckpointStore
	Document      DocumentView
	Rename        RenameFunc
	TourAvailable bool
	Editor        string
}

// Model implements the Bubble Tea model for the notebook menubar.
type Model struct {
	stack             []*level
	loading           bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	info              flash
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendState      map[backend.Kind]error
	backendLastErr    string
	showHeader        bool
	showFooter        bool
	verbose           bool
	filterCursor      cursor.Model
	filterCursorDirty bool

	dialogs    []dialog
	renameForm *renameForm
	tourStep   int
	editor     string

	handlers map[reflect.Type]msgHandler

	tree          *menu.Tree
	bus           *command.Bus
	mode          Mode
	rootMenuID    string
	rootTitle     string
	trust         state.TrustStore
	checkpoints   state.CheckpointStore
	sync          *dispatcher.Synchronizer
	doc           DocumentView
	rename        RenameFunc
	tourAvailable bool
}

// NewModel initialises the UI state with the root menu and configuration.
func NewModel(opts Options) *Model {
	tree := menu.BuildTree()
	trust := opts.Trust
	if trust == nil {
		trust = state.NewTrustStore()
	}
	checkpoints := opts.Checkpoints
	if checkpoints == nil {
		checkpoints = state.NewCheckpointStore()
	}
	m := &Model{
		tree:          tree,
		bus:           command.New(opts.Registry),
		backend:       opts.Watcher,
		backendState:  map[backend.Kind]error{},
		showHeader:    true,
		showFooter:    opts.ShowFooter,
		verbose:       opts.Verbose,
		mode:          ModeMenu,
		rootTitle:     defaultRootTitle,
		trust:         trust,
		checkpoints:   checkpoints,
		sync:          opts.Synchronizer,
		doc:           opts.Document,
		rename:        opts.Rename,
		tourAvailable: opts.TourAvailable,
		editor:        opts.Editor,
	}
	root := newLevel("root", "Menu", menu.RootItems(), tree.Root())
	m.stack = []*level{root}
	m.syncViewport(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.applyRootMenuOverride(opts.RootMenu)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	handled, cmd := m.handleOverlay(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled {
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// handleOverlay gives key presses to whatever sits on top of the menu:
// dialogs first, then the active mode.
func (m *Model) handleOverlay(msg tea.Msg) (bool, tea.Cmd) {
	if len(m.dialogs) > 0 {
		if key, ok := msg.(tea.KeyMsg); ok {
			return true, m.handleDialogKey(key)
		}
		return false, nil
	}
	switch m.mode {
	case ModeRenameForm:
		return m.handleRenameForm(msg)
	case ModeShortcuts:
		if key, ok := msg.(tea.KeyMsg); ok {
			return true, m.handleShortcutsKey(key)
		}
	case ModeTour:
		if key, ok := msg.(tea.KeyMsg); ok {
			return true, m.handleTourKey(key)
		}
	}
	return false, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(categoryLoadedMsg{}): m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(modalMsg{}):          m.handleModalMsg,
		reflect.TypeOf(confirmMsg{}):        m.handleConfirmMsg,
		reflect.TypeOf(closeMsg{}):          m.handleCloseMsg,
		reflect.TypeOf(layoutMsg{}):         m.handleLayoutMsg,
		reflect.TypeOf(resizeMsg{}):         m.handleResizeMsg,
		reflect.TypeOf(renamePromptMsg{}):   m.handleRenamePromptMsg,
		reflect.TypeOf(tourMsg{}):           m.handleTourMsg,
		reflect.TypeOf(shortcutsMsg{}):      m.handleShortcutsMsg,
		reflect.TypeOf(editMetadataMsg{}):   m.handleEditMetadataMsg,
		reflect.TypeOf(editorClosedMsg{}):   m.handleEditorClosedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleCloseMsg(tea.Msg) tea.Cmd {
	return tea.Quit
}

func (m *Model) handleLayoutMsg(msg tea.Msg) tea.Cmd {
	layout, ok := msg.(layoutMsg)
	if !ok {
		return nil
	}
	switch layout.part {
	case layoutHeader:
		m.showHeader = !m.showHeader
		events.UI.Layout(string(layout.part), m.showHeader)
	case layoutToolbar:
		m.showFooter = !m.showFooter
		events.UI.Layout(string(layout.part), m.showFooter)
	}
	return nil
}

func (m *Model) handleResizeMsg(tea.Msg) tea.Cmd {
	for _, lvl := range m.stack {
		m.syncViewport(lvl)
	}
	return nil
}
