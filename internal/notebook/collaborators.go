package notebook

import "context"

// Persistence covers the document-level lifecycle operations.
type Persistence interface {
	Path() string
	Dirty() bool
	// Save blocks until the document has been written.
	Save(ctx context.Context) error
	SaveCheckpoint()
	Rename(ctx context.Context, name string) error
	RestoreCheckpointDialog(cp Checkpoint)
	TrustDocument()
	EditMetadata()
	Session() Session
	Kernel() Kernel
}

// Cells covers selection and structural edits.
type Cells interface {
	SelectedIndex() int
	Select(index int)
	SelectPrev()
	SelectNext()
	CutCell()
	CopyCell()
	DeleteCell()
	UndeleteCell()
	SplitCell()
	MergeCellAbove()
	MergeCellBelow()
	MoveCellUp()
	MoveCellDown()
	InsertCellAbove(kind CellType)
	InsertCellBelow(kind CellType)
	ToCode()
	ToMarkdown()
	ToRaw()
}

// Outputs covers output visibility for the current cell and for all cells.
type Outputs interface {
	ToggleOutput()
	ToggleOutputScroll()
	ClearOutput()
	ToggleAllOutput()
	ToggleAllOutputScroll()
	ClearAllOutput()
}

// Execution covers running cells and kernel restarts.
type Execution interface {
	ExecuteCell()
	ExecuteCellAndSelectBelow()
	ExecuteCellAndInsertBelow()
	ExecuteAllCells()
	ExecuteCellsAbove()
	ExecuteCellsBelow()
	RestartKernel()
}

// Document is the model the menubar drives. It owns content, trust and
// checkpoints and reports its own failures.
type Document interface {
	Persistence
	Cells
	Outputs
	Execution
}

// Contents creates new documents on the server.
type Contents interface {
	NewUntitled(dir string) *Creation
	Copy(path, dir string) *Creation
}

// Session is the server-side binding between a document and its kernel.
type Session interface {
	Delete(ctx context.Context) error
}

// Kernel controls the running kernel directly.
type Kernel interface {
	Interrupt()
	Reconnect()
}

// Dialog shows modal messages.
type Dialog interface {
	Modal(title, body string)
	Confirm(title, body, confirmLabel string, onConfirm func())
}

// View is a window opened by a Viewer.
type View interface {
	Navigate(url string) error
	Close() error
}

// Viewer opens new top-level views. An empty url opens a placeholder.
type Viewer interface {
	Open(url string) (View, error)
}

// Shell closes the menubar itself.
type Shell interface {
	Close()
}

// Layout controls the chrome around the document.
type Layout interface {
	ToggleHeader()
	ToggleToolbar()
	Resize()
}

// Renamer prompts for a new document name.
type Renamer interface {
	RenameDocument()
}

// Tour runs the guided tour.
type Tour interface {
	Start()
}

// QuickHelp lists keyboard shortcuts.
type QuickHelp interface {
	ShowKeyboardShortcuts()
}

// MetadataEditor edits a JSON metadata blob and returns the result.
type MetadataEditor interface {
	EditMetadata(current []byte) ([]byte, error)
}
