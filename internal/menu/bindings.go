package menu

import (
	"context"
	"errors"

	"github.com/atomicstack/notebook-menubar/internal/jupyter"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// DefaultExportEndpoint is the conversion endpoint used when Deps leaves it empty.
const DefaultExportEndpoint = "convert"

// Deps carries the collaborators the action handlers call into.
type Deps struct {
	Document  notebook.Document
	Contents  notebook.Contents
	Dialog    notebook.Dialog
	Viewer    notebook.Viewer
	Shell     notebook.Shell
	Layout    notebook.Layout
	Renamer   notebook.Renamer
	QuickHelp notebook.QuickHelp
	// Tour is optional; without it start-tour stays unbound.
	Tour notebook.Tour

	BaseURL        string
	ExportEndpoint string
	Context        context.Context
}

func (d Deps) validate() error {
	var errs []error
	if d.Document == nil {
		errs = append(errs, errors.New("document is required"))
	}
	if d.Contents == nil {
		errs = append(errs, errors.New("contents is required"))
	}
	if d.Dialog == nil {
		errs = append(errs, errors.New("dialog is required"))
	}
	if d.Viewer == nil {
		errs = append(errs, errors.New("viewer is required"))
	}
	if d.Shell == nil {
		errs = append(errs, errors.New("shell is required"))
	}
	if d.Layout == nil {
		errs = append(errs, errors.New("layout is required"))
	}
	if d.Renamer == nil {
		errs = append(errs, errors.New("renamer is required"))
	}
	if d.QuickHelp == nil {
		errs = append(errs, errors.New("quick help is required"))
	}
	return errors.Join(errs...)
}

// NewActionRegistry builds a registry with the full vocabulary bound and sealed.
func NewActionRegistry(deps Deps) (*Registry, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	r := NewRegistry(deps.Document, deps.Dialog)
	if err := Bind(r, deps); err != nil {
		return nil, err
	}
	r.Seal()
	return r, nil
}

// Bind registers a handler for every action in the vocabulary.
func Bind(r *Registry, deps Deps) error {
	b := &binder{deps: deps}
	doc := deps.Document
	handlers := map[string]Handler{
		// File
		ActionNew: b.create("new", "Creating Notebook Failed", func(dir string) *notebook.Creation {
			return deps.Contents.NewUntitled(dir)
		}),
		ActionOpen: b.openTree,
		ActionCopy: b.create("copy", "Copying Notebook Failed", func(dir string) *notebook.Creation {
			return deps.Contents.Copy(doc.Path(), dir)
		}),
		ActionDownloadIPYNB:     b.downloadIPYNB,
		ActionPrintPreview:      b.export(notebook.FormatHTML, false),
		ActionDownloadPython:    b.export(notebook.FormatPython, true),
		ActionDownloadHTML:      b.export(notebook.FormatHTML, true),
		ActionDownloadRST:       b.export(notebook.FormatRST, true),
		ActionDownloadPDF:       b.export(notebook.FormatPDF, true),
		ActionDownloadMarkdown:  b.export(notebook.FormatMarkdown, true),
		ActionRename:            func(string) { deps.Renamer.RenameDocument() },
		ActionSaveCheckpoint:    func(string) { doc.SaveCheckpoint() },
		ActionRestoreCheckpoint: b.restoreCheckpoint,
		ActionTrust:             func(string) { doc.TrustDocument() },
		ActionExit:              b.exit,
		// Edit
		ActionCutCell:        func(string) { doc.CutCell() },
		ActionCopyCell:       func(string) { doc.CopyCell() },
		ActionDeleteCell:     func(string) { doc.DeleteCell() },
		ActionUndeleteCell:   func(string) { doc.UndeleteCell() },
		ActionSplitCell:      func(string) { doc.SplitCell() },
		ActionMergeCellAbove: func(string) { doc.MergeCellAbove() },
		ActionMergeCellBelow: func(string) { doc.MergeCellBelow() },
		ActionMoveCellUp:     func(string) { doc.MoveCellUp() },
		ActionMoveCellDown:   func(string) { doc.MoveCellDown() },
		ActionEditMetadata:   func(string) { doc.EditMetadata() },
		// View
		ActionToggleHeader: func(string) {
			deps.Layout.ToggleHeader()
			deps.Layout.Resize()
		},
		ActionToggleToolbar: func(string) {
			deps.Layout.ToggleToolbar()
			deps.Layout.Resize()
		},
		// Insert
		ActionInsertCellAbove: func(string) {
			doc.InsertCellAbove(notebook.CellCode)
			doc.SelectPrev()
		},
		ActionInsertCellBelow: func(string) {
			doc.InsertCellBelow(notebook.CellCode)
			doc.SelectNext()
		},
		// Cell
		ActionRunCell:                   func(string) { doc.ExecuteCell() },
		ActionRunCellSelectBelow:        func(string) { doc.ExecuteCellAndSelectBelow() },
		ActionRunCellInsertBelow:        func(string) { doc.ExecuteCellAndInsertBelow() },
		ActionRunAll:                    func(string) { doc.ExecuteAllCells() },
		ActionRunAllAbove:               func(string) { doc.ExecuteCellsAbove() },
		ActionRunAllBelow:               func(string) { doc.ExecuteCellsBelow() },
		ActionToCode:                    func(string) { doc.ToCode() },
		ActionToMarkdown:                func(string) { doc.ToMarkdown() },
		ActionToRaw:                     func(string) { doc.ToRaw() },
		ActionToggleCurrentOutput:       func(string) { doc.ToggleOutput() },
		ActionToggleCurrentOutputScroll: func(string) { doc.ToggleOutputScroll() },
		ActionClearCurrentOutput:        func(string) { doc.ClearOutput() },
		ActionToggleAllOutput:           func(string) { doc.ToggleAllOutput() },
		ActionToggleAllOutputScroll:     func(string) { doc.ToggleAllOutputScroll() },
		ActionClearAllOutput:            func(string) { doc.ClearAllOutput() },
		// Kernel
		ActionInterruptKernel: b.withKernel(notebook.Kernel.Interrupt),
		ActionRestartKernel:   func(string) { doc.RestartKernel() },
		ActionReconnectKernel: b.withKernel(notebook.Kernel.Reconnect),
		// Help
		ActionShowShortcuts: func(string) { deps.QuickHelp.ShowKeyboardShortcuts() },
	}
	if deps.Tour != nil {
		handlers[ActionStartTour] = func(string) { deps.Tour.Start() }
	}
	for _, id := range Vocabulary() {
		handler, ok := handlers[id]
		if !ok {
			continue
		}
		if err := r.Register(id, handler); err != nil {
			return err
		}
	}
	return nil
}

type binder struct {
	deps Deps
}

func (b *binder) ctx() context.Context {
	if b.deps.Context != nil {
		return b.deps.Context
	}
	return context.Background()
}

func (b *binder) endpoint() string {
	if b.deps.ExportEndpoint != "" {
		return b.deps.ExportEndpoint
	}
	return DefaultExportEndpoint
}

func (b *binder) openView(url string) {
	if _, err := b.deps.Viewer.Open(url); err != nil {
		events.Action.Error(err)
		b.deps.Dialog.Modal("Opening Window Failed", "The error was: "+err.Error())
	}
}

func (b *binder) openTree(string) {
	dir, _ := jupyter.PathSplit(b.deps.Document.Path())
	b.openView(jupyter.JoinEncode(b.deps.BaseURL, "tree", dir))
}

func (b *binder) restoreCheckpoint(arg string) {
	if arg == "" {
		return
	}
	b.deps.Document.RestoreCheckpointDialog(notebook.Checkpoint{ID: arg})
}

func (b *binder) withKernel(op func(notebook.Kernel)) Handler {
	return func(string) {
		kernel := b.deps.Document.Kernel()
		if kernel == nil {
			b.deps.Dialog.Modal("No Kernel", "The notebook is not connected to a kernel.")
			return
		}
		op(kernel)
	}
}

// exit closes the UI once session teardown settles, whatever its outcome.
func (b *binder) exit(string) {
	var err error
	if session := b.deps.Document.Session(); session != nil {
		err = session.Delete(b.ctx())
	}
	events.Document.Teardown(err)
	b.deps.Shell.Close()
}
