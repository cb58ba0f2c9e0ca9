package menu

import "strings"

// Action identifiers. They are case-sensitive and form a closed set.
const (
	ActionNew               = "new"
	ActionOpen              = "open"
	ActionCopy              = "copy"
	ActionDownloadIPYNB     = "download-ipynb"
	ActionPrintPreview      = "print-preview"
	ActionDownloadPython    = "download-python"
	ActionDownloadHTML      = "download-html"
	ActionDownloadRST       = "download-rst"
	ActionDownloadPDF       = "download-pdf"
	ActionDownloadMarkdown  = "download-markdown"
	ActionRename            = "rename"
	ActionSaveCheckpoint    = "save-checkpoint"
	ActionRestoreCheckpoint = "restore-checkpoint"
	ActionTrust             = "trust"
	ActionExit              = "exit"

	ActionCutCell        = "cut-cell"
	ActionCopyCell       = "copy-cell"
	ActionDeleteCell     = "delete-cell"
	ActionUndeleteCell   = "undelete-cell"
	ActionSplitCell      = "split-cell"
	ActionMergeCellAbove = "merge-cell-above"
	ActionMergeCellBelow = "merge-cell-below"
	ActionMoveCellUp     = "move-cell-up"
	ActionMoveCellDown   = "move-cell-down"
	ActionEditMetadata   = "edit-metadata"

	ActionToggleHeader  = "toggle-header"
	ActionToggleToolbar = "toggle-toolbar"

	ActionInsertCellAbove = "insert-cell-above"
	ActionInsertCellBelow = "insert-cell-below"

	ActionRunCell                   = "run-cell"
	ActionRunCellSelectBelow        = "run-cell-select-below"
	ActionRunCellInsertBelow        = "run-cell-insert-below"
	ActionRunAll                    = "run-all"
	ActionRunAllAbove               = "run-all-above"
	ActionRunAllBelow               = "run-all-below"
	ActionToCode                    = "to-code"
	ActionToMarkdown                = "to-markdown"
	ActionToRaw                     = "to-raw"
	ActionToggleCurrentOutput       = "toggle-current-output"
	ActionToggleCurrentOutputScroll = "toggle-current-output-scroll"
	ActionClearCurrentOutput        = "clear-current-output"
	ActionToggleAllOutput           = "toggle-all-output"
	ActionToggleAllOutputScroll     = "toggle-all-output-scroll"
	ActionClearAllOutput            = "clear-all-output"

	ActionInterruptKernel = "interrupt-kernel"
	ActionRestartKernel   = "restart-kernel"
	ActionReconnectKernel = "reconnect-kernel"

	ActionStartTour     = "start-tour"
	ActionShowShortcuts = "show-shortcuts"
)

// Vocabulary lists every action identifier bound by Bind, grouped by menu.
func Vocabulary() []string {
	return []string{
		ActionNew, ActionOpen, ActionCopy, ActionDownloadIPYNB, ActionPrintPreview,
		ActionDownloadPython, ActionDownloadHTML, ActionDownloadRST, ActionDownloadPDF,
		ActionDownloadMarkdown, ActionRename, ActionSaveCheckpoint, ActionRestoreCheckpoint,
		ActionTrust, ActionExit,
		ActionCutCell, ActionCopyCell, ActionDeleteCell, ActionUndeleteCell, ActionSplitCell,
		ActionMergeCellAbove, ActionMergeCellBelow, ActionMoveCellUp, ActionMoveCellDown,
		ActionEditMetadata,
		ActionToggleHeader, ActionToggleToolbar,
		ActionInsertCellAbove, ActionInsertCellBelow,
		ActionRunCell, ActionRunCellSelectBelow, ActionRunCellInsertBelow,
		ActionRunAll, ActionRunAllAbove, ActionRunAllBelow,
		ActionToCode, ActionToMarkdown, ActionToRaw,
		ActionToggleCurrentOutput, ActionToggleCurrentOutputScroll, ActionClearCurrentOutput,
		ActionToggleAllOutput, ActionToggleAllOutputScroll, ActionClearAllOutput,
		ActionInterruptKernel, ActionRestartKernel, ActionReconnectKernel,
		ActionStartTour, ActionShowShortcuts,
	}
}

// RestoreCheckpointAction returns the parameterised restore action for a checkpoint.
func RestoreCheckpointAction(checkpointID string) string {
	return ActionRestoreCheckpoint + ":" + checkpointID
}

// SplitAction separates an action into its identifier and optional argument.
// Only the first colon separates; checkpoint ids may contain colons.
func SplitAction(action string) (id, arg string) {
	id, arg, _ = strings.Cut(action, ":")
	return id, arg
}
