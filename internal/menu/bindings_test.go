package menu

import (
	"errors"
	"testing"

	"github.com/atomicstack/notebook-menubar/internal/notebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBound(t *testing.T, f *fixture, withTour bool) *Registry {
	t.Helper()
	r, err := NewActionRegistry(f.deps(withTour))
	require.NoError(t, err)
	return r
}

func TestNewActionRegistryBindsVocabulary(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, true)
	for _, id := range Vocabulary() {
		assert.True(t, r.Has(id), "expected %s to be bound", id)
	}
	assert.True(t, r.Sealed())
}

func TestStartTourUnboundWithoutTour(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)
	assert.False(t, r.Has(ActionStartTour))

	r.Dispatch(ActionStartTour)
	assert.Empty(t, f.rec.Calls())
}

func TestNewActionRegistryValidatesDeps(t *testing.T) {
	_, err := NewActionRegistry(Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document is required")
	assert.Contains(t, err.Error(), "viewer is required")
}

func TestExportCleanDocumentOpensImmediately(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(ActionDownloadPython)

	require.Len(t, f.viewer.opened, 1)
	assert.Equal(t, "http://localhost:8888/convert/python/work/My%20Notebook.ipynb?download=1", f.viewer.opened[0])
	assert.NotContains(t, f.rec.Calls(), "save")
}

func TestExportDirtyDocumentSavesFirst(t *testing.T) {
	f := newFixture()
	f.doc.dirty = true
	r := newBound(t, f, false)

	r.Dispatch(ActionPrintPreview)

	assert.Equal(t, []string{"save", "viewer.open", "select"}, f.rec.Calls())
	assert.Equal(t, "http://localhost:8888/convert/html/work/My%20Notebook.ipynb?download=0", f.viewer.opened[0])
}

func TestExportSaveFailureAborts(t *testing.T) {
	f := newFixture()
	f.doc.dirty = true
	f.doc.saveErr = errors.New("disk full")
	r := newBound(t, f, false)

	r.Dispatch(ActionDownloadHTML)

	assert.Empty(t, f.viewer.opened)
	assert.Equal(t, []string{"save", "select"}, f.rec.Calls())
}

func TestExportEndpointOverride(t *testing.T) {
	f := newFixture()
	deps := f.deps(false)
	deps.ExportEndpoint = "nbconvert"
	r, err := NewActionRegistry(deps)
	require.NoError(t, err)

	r.Dispatch(ActionDownloadRST)
	r.Dispatch(ActionDownloadPDF)
	r.Dispatch(ActionDownloadMarkdown)

	assert.Equal(t, []string{
		"http://localhost:8888/nbconvert/rst/work/My%20Notebook.ipynb?download=1",
		"http://localhost:8888/nbconvert/pdf/work/My%20Notebook.ipynb?download=1",
		"http://localhost:8888/nbconvert/markdown/work/My%20Notebook.ipynb?download=1",
	}, f.viewer.opened)
}

func TestDownloadIPYNBUsesFilesEndpoint(t *testing.T) {
	f := newFixture()
	f.doc.dirty = true
	r := newBound(t, f, false)

	r.Dispatch(ActionDownloadIPYNB)

	assert.Equal(t, []string{"http://localhost:8888/files/work/My%20Notebook.ipynb?download=1"}, f.viewer.opened)
	assert.Equal(t, "save", f.rec.Calls()[0])
}

func TestNewCommitNavigatesPlaceholder(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(ActionNew)

	require.Len(t, f.viewer.views, 1)
	assert.Equal(t, "", f.viewer.opened[0])
	assert.Equal(t, []string{"viewer.open", "contents.new:work", "select"}, f.rec.Calls())

	f.contents.creation.Commit("work/Untitled1.ipynb")

	assert.Equal(t, "http://localhost:8888/notebooks/work/Untitled1.ipynb", f.viewer.views[0].url)
	assert.Empty(t, f.dialog.Modals())
}

func TestNewFailureClosesPlaceholderAndReports(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(ActionNew)
	f.contents.creation.Fail(errors.New("permission denied"))

	calls := f.rec.Calls()
	assert.Contains(t, calls, "view.close")
	assert.NotContains(t, calls, "view.navigate")
	modals := f.dialog.Modals()
	require.Len(t, modals, 1)
	assert.Equal(t, "Creating Notebook Failed", modals[0].Title)
	assert.Equal(t, "The error was: permission denied", modals[0].Body)
}

func TestCopyFailureUsesCopyTitle(t *testing.T) {
	f := newFixture()
	f.contents.creation = notebook.Failed(errors.New("exists"))
	r := newBound(t, f, false)

	r.Dispatch(ActionCopy)

	assert.Contains(t, f.rec.Calls(), "contents.copy:work/My Notebook.ipynb>work")
	modals := f.dialog.Modals()
	require.Len(t, modals, 1)
	assert.Equal(t, "Copying Notebook Failed", modals[0].Title)
	assert.Equal(t, "The error was: exists", modals[0].Body)
}

func TestOpenShowsParentTree(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(ActionOpen)

	assert.Equal(t, []string{"http://localhost:8888/tree/work"}, f.viewer.opened)
}

func TestExitClosesAfterDeleteEvenOnFailure(t *testing.T) {
	for _, deleteErr := range []error{nil, errors.New("gone")} {
		f := newFixture()
		f.doc.session = &fakeSession{rec: f.rec, err: deleteErr}
		r := newBound(t, f, false)

		r.Dispatch(ActionExit)

		assert.Equal(t, []string{"session.delete", "shell.close", "select"}, f.rec.Calls())
	}
}

func TestTogglesResizeLayout(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(ActionToggleHeader)
	r.Dispatch(ActionToggleToolbar)

	assert.Equal(t, []string{
		"toggle-header", "resize", "select",
		"toggle-toolbar", "resize", "select",
	}, f.rec.Calls())
}

func TestInsertSelectsNewCell(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(ActionInsertCellAbove)
	r.Dispatch(ActionInsertCellBelow)

	assert.Equal(t, []string{
		"insert-above:code", "select-prev", "select",
		"insert-below:code", "select-next", "select",
	}, f.rec.Calls())
}

func TestRestoreCheckpointDispatch(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(RestoreCheckpointAction("checkpoint"))
	r.Dispatch(ActionRestoreCheckpoint)

	require.Len(t, f.doc.restored, 1)
	assert.Equal(t, "checkpoint", f.doc.restored[0].ID)
}

func TestKernelActionsGoToKernel(t *testing.T) {
	f := newFixture()
	r := newBound(t, f, false)

	r.Dispatch(ActionInterruptKernel)
	r.Dispatch(ActionReconnectKernel)
	r.Dispatch(ActionRestartKernel)

	assert.Equal(t, []string{
		"kernel.interrupt", "select",
		"kernel.reconnect", "select",
		"restart-kernel", "select",
	}, f.rec.Calls())
}

func TestKernelActionWithoutKernel(t *testing.T) {
	f := newFixture()
	f.doc.kernel = nil
	r := newBound(t, f, false)

	r.Dispatch(ActionInterruptKernel)

	modals := f.dialog.Modals()
	require.Len(t, modals, 1)
	assert.Equal(t, "No Kernel", modals[0].Title)
}

func TestDirectDelegation(t *testing.T) {
	cases := map[string]string{
		ActionSaveCheckpoint:            "save-checkpoint",
		ActionTrust:                     "trust",
		ActionRename:                    "rename-document",
		ActionCutCell:                   "cut",
		ActionCopyCell:                  "copy",
		ActionDeleteCell:                "delete",
		ActionUndeleteCell:              "undelete",
		ActionSplitCell:                 "split",
		ActionMergeCellAbove:            "merge-above",
		ActionMergeCellBelow:            "merge-below",
		ActionMoveCellUp:                "move-up",
		ActionMoveCellDown:              "move-down",
		ActionEditMetadata:              "edit-metadata",
		ActionRunCell:                   "execute",
		ActionRunCellSelectBelow:        "execute-select-below",
		ActionRunCellInsertBelow:        "execute-insert-below",
		ActionRunAll:                    "execute-all",
		ActionRunAllAbove:               "execute-above",
		ActionRunAllBelow:               "execute-below",
		ActionToCode:                    "to-code",
		ActionToMarkdown:                "to-markdown",
		ActionToRaw:                     "to-raw",
		ActionToggleCurrentOutput:       "toggle-output",
		ActionToggleCurrentOutputScroll: "toggle-output-scroll",
		ActionClearCurrentOutput:        "clear-output",
		ActionToggleAllOutput:           "toggle-all-output",
		ActionToggleAllOutputScroll:     "toggle-all-output-scroll",
		ActionClearAllOutput:            "clear-all-output",
		ActionShowShortcuts:             "shortcuts",
		ActionStartTour:                 "tour",
	}
	for action, want := range cases {
		f := newFixture()
		r := newBound(t, f, true)
		r.Dispatch(action)
		assert.Equal(t, []string{want, "select"}, f.rec.Calls(), action)
	}
}

func TestHandlerPanicStillReselects(t *testing.T) {
	f := newFixture()
	f.doc.panicOn = "cut"
	r := newBound(t, f, false)

	assert.NotPanics(t, func() { r.Dispatch(ActionCutCell) })
	assert.Equal(t, []string{"cut", "modal", "select"}, f.rec.Calls())
}

func TestExportURL(t *testing.T) {
	got := ExportURL("http://h/base/", "convert", notebook.ExportRequest{Format: notebook.FormatHTML}, "a b/c?.ipynb")
	assert.Equal(t, "http://h/base/convert/html/a%20b/c%3F.ipynb?download=0", got)
}
