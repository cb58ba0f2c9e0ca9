package menu

// Item represents a selectable menu entry. For leaves ID is the action
// dispatched on selection; for submenus it is the child key in the tree.
type Item struct {
	ID       string
	Label    string
	Disabled bool
	// Activate, when set, runs instead of dispatching ID.
	Activate func()
}

// TrustEntry is the rendered state of the trust menu entry.
type TrustEntry struct {
	Label    string
	Disabled bool
}

// CheckpointEntry is one rendered row of the revert-to-checkpoint submenu.
type CheckpointEntry struct {
	ID       string
	Action   string
	Label    string
	Disabled bool
	Activate func()
}

// Context carries runtime data needed by loader functions.
type Context struct {
	DocumentPath  string
	Trust         TrustEntry
	Checkpoints   []CheckpointEntry
	TourAvailable bool
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	ID   string
	Info string
	Err  error
}

// RootItems returns the top-level menu entries.
func RootItems() []Item {
	return []Item{
		{ID: "file", Label: "File"},
		{ID: "edit", Label: "Edit"},
		{ID: "view", Label: "View"},
		{ID: "insert", Label: "Insert"},
		{ID: "cell", Label: "Cell"},
		{ID: "kernel", Label: "Kernel"},
		{ID: "help", Label: "Help"},
	}
}

// CategoryLoaders lists submenu loaders keyed by node ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"file":                    loadFileMenu,
		"file:download":           staticItems(downloadItems),
		"file:restore-checkpoint": loadCheckpointMenu,
		"edit":                    staticItems(editItems),
		"view":                    staticItems(viewItems),
		"insert":                  staticItems(insertItems),
		"cell":                    staticItems(cellItems),
		"cell:type":               staticItems(cellTypeItems),
		"cell:current-output":     staticItems(currentOutputItems),
		"cell:all-output":         staticItems(allOutputItems),
		"kernel":                  staticItems(kernelItems),
		"help":                    loadHelpMenu,
	}
}

var (
	downloadItems = []Item{
		{ID: ActionDownloadIPYNB, Label: "Notebook (.ipynb)"},
		{ID: ActionDownloadPython, Label: "Python (.py)"},
		{ID: ActionDownloadHTML, Label: "HTML (.html)"},
		{ID: ActionDownloadMarkdown, Label: "Markdown (.md)"},
		{ID: ActionDownloadRST, Label: "reST (.rst)"},
		{ID: ActionDownloadPDF, Label: "PDF via LaTeX (.pdf)"},
	}
	editItems = []Item{
		{ID: ActionCutCell, Label: "Cut Cell"},
		{ID: ActionCopyCell, Label: "Copy Cell"},
		{ID: ActionDeleteCell, Label: "Delete Cell"},
		{ID: ActionUndeleteCell, Label: "Undo Delete Cell"},
		{ID: ActionSplitCell, Label: "Split Cell"},
		{ID: ActionMergeCellAbove, Label: "Merge Cell Above"},
		{ID: ActionMergeCellBelow, Label: "Merge Cell Below"},
		{ID: ActionMoveCellUp, Label: "Move Cell Up"},
		{ID: ActionMoveCellDown, Label: "Move Cell Down"},
		{ID: ActionEditMetadata, Label: "Edit Notebook Metadata"},
	}
	viewItems = []Item{
		{ID: ActionToggleHeader, Label: "Toggle Header"},
		{ID: ActionToggleToolbar, Label: "Toggle Toolbar"},
	}
	insertItems = []Item{
		{ID: ActionInsertCellAbove, Label: "Insert Cell Above"},
		{ID: ActionInsertCellBelow, Label: "Insert Cell Below"},
	}
	cellItems = []Item{
		{ID: ActionRunCell, Label: "Run"},
		{ID: ActionRunCellSelectBelow, Label: "Run and Select Below"},
		{ID: ActionRunCellInsertBelow, Label: "Run and Insert Below"},
		{ID: ActionRunAll, Label: "Run All"},
		{ID: ActionRunAllAbove, Label: "Run All Above"},
		{ID: ActionRunAllBelow, Label: "Run All Below"},
		{ID: "type", Label: "Cell Type"},
		{ID: "current-output", Label: "Current Output"},
		{ID: "all-output", Label: "All Output"},
	}
	cellTypeItems = []Item{
		{ID: ActionToCode, Label: "Code"},
		{ID: ActionToMarkdown, Label: "Markdown"},
		{ID: ActionToRaw, Label: "Raw NBConvert"},
	}
	currentOutputItems = []Item{
		{ID: ActionToggleCurrentOutput, Label: "Toggle"},
		{ID: ActionToggleCurrentOutputScroll, Label: "Toggle Scrolling"},
		{ID: ActionClearCurrentOutput, Label: "Clear"},
	}
	allOutputItems = []Item{
		{ID: ActionToggleAllOutput, Label: "Toggle"},
		{ID: ActionToggleAllOutputScroll, Label: "Toggle Scrolling"},
		{ID: ActionClearAllOutput, Label: "Clear"},
	}
	kernelItems = []Item{
		{ID: ActionInterruptKernel, Label: "Interrupt"},
		{ID: ActionRestartKernel, Label: "Restart"},
		{ID: ActionReconnectKernel, Label: "Reconnect"},
	}
)

func staticItems(items []Item) Loader {
	return func(Context) ([]Item, error) {
		return cloneItems(items), nil
	}
}

func loadFileMenu(ctx Context) ([]Item, error) {
	trust := ctx.Trust
	if trust.Label == "" {
		trust.Label = "Trust Notebook"
	}
	return []Item{
		{ID: ActionNew, Label: "New"},
		{ID: ActionOpen, Label: "Open..."},
		{ID: ActionCopy, Label: "Make a Copy..."},
		{ID: ActionRename, Label: "Rename..."},
		{ID: ActionSaveCheckpoint, Label: "Save and Checkpoint"},
		{ID: "restore-checkpoint", Label: "Revert to Checkpoint"},
		{ID: ActionPrintPreview, Label: "Print Preview"},
		{ID: "download", Label: "Download as"},
		{ID: ActionTrust, Label: trust.Label, Disabled: trust.Disabled},
		{ID: ActionExit, Label: "Close and Halt"},
	}, nil
}

func loadCheckpointMenu(ctx Context) ([]Item, error) {
	items := make([]Item, 0, len(ctx.Checkpoints))
	for _, entry := range ctx.Checkpoints {
		items = append(items, Item{
			ID:       entry.Action,
			Label:    entry.Label,
			Disabled: entry.Disabled,
			Activate: entry.Activate,
		})
	}
	return items, nil
}

func loadHelpMenu(ctx Context) ([]Item, error) {
	return []Item{
		{ID: ActionStartTour, Label: "User Interface Tour", Disabled: !ctx.TourAvailable},
		{ID: ActionShowShortcuts, Label: "Keyboard Shortcuts"},
	}, nil
}

func cloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
