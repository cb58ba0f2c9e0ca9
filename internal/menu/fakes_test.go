package menu

import (
	"context"
	"sync"

	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(call string) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeSession struct {
	rec *recorder
	err error
}

func (s *fakeSession) Delete(context.Context) error {
	s.rec.record("session.delete")
	return s.err
}

type fakeKernel struct{ rec *recorder }

func (k *fakeKernel) Interrupt() { k.rec.record("kernel.interrupt") }
func (k *fakeKernel) Reconnect() { k.rec.record("kernel.reconnect") }

type fakeDoc struct {
	rec      *recorder
	path     string
	dirty    bool
	saveErr  error
	selected int
	session  notebook.Session
	kernel   notebook.Kernel
	restored []notebook.Checkpoint
	panicOn  string
}

func newFakeDoc(rec *recorder) *fakeDoc {
	return &fakeDoc{
		rec:      rec,
		path:     "work/My Notebook.ipynb",
		selected: 2,
		session:  &fakeSession{rec: rec},
		kernel:   &fakeKernel{rec: rec},
	}
}

func (d *fakeDoc) call(name string) {
	d.rec.record(name)
	if d.panicOn == name {
		panic("boom")
	}
}

func (d *fakeDoc) Path() string { return d.path }
func (d *fakeDoc) Dirty() bool  { return d.dirty }
func (d *fakeDoc) Save(context.Context) error {
	d.call("save")
	if d.saveErr == nil {
		d.dirty = false
	}
	return d.saveErr
}
func (d *fakeDoc) SaveCheckpoint()                      { d.call("save-checkpoint") }
func (d *fakeDoc) Rename(context.Context, string) error { d.call("rename"); return nil }
func (d *fakeDoc) RestoreCheckpointDialog(cp notebook.Checkpoint) {
	d.call("restore-checkpoint-dialog")
	d.restored = append(d.restored, cp)
}
func (d *fakeDoc) TrustDocument()            { d.call("trust") }
func (d *fakeDoc) EditMetadata()             { d.call("edit-metadata") }
func (d *fakeDoc) Session() notebook.Session { return d.session }
func (d *fakeDoc) Kernel() notebook.Kernel   { return d.kernel }

func (d *fakeDoc) SelectedIndex() int { return d.selected }
func (d *fakeDoc) Select(i int) {
	d.rec.record("select")
	d.selected = i
}
func (d *fakeDoc) SelectPrev()     { d.call("select-prev") }
func (d *fakeDoc) SelectNext()     { d.call("select-next") }
func (d *fakeDoc) CutCell()        { d.call("cut") }
func (d *fakeDoc) CopyCell()       { d.call("copy") }
func (d *fakeDoc) DeleteCell()     { d.call("delete") }
func (d *fakeDoc) UndeleteCell()   { d.call("undelete") }
func (d *fakeDoc) SplitCell()      { d.call("split") }
func (d *fakeDoc) MergeCellAbove() { d.call("merge-above") }
func (d *fakeDoc) MergeCellBelow() { d.call("merge-below") }
func (d *fakeDoc) MoveCellUp()     { d.call("move-up") }
func (d *fakeDoc) MoveCellDown()   { d.call("move-down") }
func (d *fakeDoc) InsertCellAbove(kind notebook.CellType) {
	d.call("insert-above:" + string(kind))
}
func (d *fakeDoc) InsertCellBelow(kind notebook.CellType) {
	d.call("insert-below:" + string(kind))
}
func (d *fakeDoc) ToCode()     { d.call("to-code") }
func (d *fakeDoc) ToMarkdown() { d.call("to-markdown") }
func (d *fakeDoc) ToRaw()      { d.call("to-raw") }

func (d *fakeDoc) ToggleOutput()          { d.call("toggle-output") }
func (d *fakeDoc) ToggleOutputScroll()    { d.call("toggle-output-scroll") }
func (d *fakeDoc) ClearOutput()           { d.call("clear-output") }
func (d *fakeDoc) ToggleAllOutput()       { d.call("toggle-all-output") }
func (d *fakeDoc) ToggleAllOutputScroll() { d.call("toggle-all-output-scroll") }
func (d *fakeDoc) ClearAllOutput()        { d.call("clear-all-output") }

func (d *fakeDoc) ExecuteCell()               { d.call("execute") }
func (d *fakeDoc) ExecuteCellAndSelectBelow() { d.call("execute-select-below") }
func (d *fakeDoc) ExecuteCellAndInsertBelow() { d.call("execute-insert-below") }
func (d *fakeDoc) ExecuteAllCells()           { d.call("execute-all") }
func (d *fakeDoc) ExecuteCellsAbove()         { d.call("execute-above") }
func (d *fakeDoc) ExecuteCellsBelow()         { d.call("execute-below") }
func (d *fakeDoc) RestartKernel()             { d.call("restart-kernel") }

type fakeContents struct {
	rec      *recorder
	creation *notebook.Creation
}

func (c *fakeContents) NewUntitled(dir string) *notebook.Creation {
	c.rec.record("contents.new:" + dir)
	return c.creation
}

func (c *fakeContents) Copy(path, dir string) *notebook.Creation {
	c.rec.record("contents.copy:" + path + ">" + dir)
	return c.creation
}

type modal struct {
	Title string
	Body  string
}

type fakeDialog struct {
	rec    *recorder
	mu     sync.Mutex
	modals []modal
}

func (d *fakeDialog) Modal(title, body string) {
	d.rec.record("modal")
	d.mu.Lock()
	d.modals = append(d.modals, modal{Title: title, Body: body})
	d.mu.Unlock()
}

func (d *fakeDialog) Confirm(title, body, confirmLabel string, onConfirm func()) {
	d.rec.record("confirm")
}

func (d *fakeDialog) Modals() []modal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]modal(nil), d.modals...)
}

type fakeView struct {
	rec *recorder
	url string
}

func (v *fakeView) Navigate(url string) error {
	v.rec.record("view.navigate")
	v.url = url
	return nil
}

func (v *fakeView) Close() error {
	v.rec.record("view.close")
	return nil
}

type fakeViewer struct {
	rec    *recorder
	opened []string
	views  []*fakeView
	err    error
}

func (v *fakeViewer) Open(url string) (notebook.View, error) {
	v.rec.record("viewer.open")
	if v.err != nil {
		return nil, v.err
	}
	v.opened = append(v.opened, url)
	view := &fakeView{rec: v.rec, url: url}
	v.views = append(v.views, view)
	return view, nil
}

type fakeUI struct{ rec *recorder }

func (u *fakeUI) Close()                 { u.rec.record("shell.close") }
func (u *fakeUI) ToggleHeader()          { u.rec.record("toggle-header") }
func (u *fakeUI) ToggleToolbar()         { u.rec.record("toggle-toolbar") }
func (u *fakeUI) Resize()                { u.rec.record("resize") }
func (u *fakeUI) RenameDocument()        { u.rec.record("rename-document") }
func (u *fakeUI) Start()                 { u.rec.record("tour") }
func (u *fakeUI) ShowKeyboardShortcuts() { u.rec.record("shortcuts") }

type fixture struct {
	rec      *recorder
	doc      *fakeDoc
	contents *fakeContents
	dialog   *fakeDialog
	viewer   *fakeViewer
	ui       *fakeUI
}

func newFixture() *fixture {
	rec := &recorder{}
	return &fixture{
		rec:      rec,
		doc:      newFakeDoc(rec),
		contents: &fakeContents{rec: rec, creation: notebook.NewCreation()},
		dialog:   &fakeDialog{rec: rec},
		viewer:   &fakeViewer{rec: rec},
		ui:       &fakeUI{rec: rec},
	}
}

func (f *fixture) deps(withTour bool) Deps {
	d := Deps{
		Document:  f.doc,
		Contents:  f.contents,
		Dialog:    f.dialog,
		Viewer:    f.viewer,
		Shell:     f.ui,
		Layout:    f.ui,
		Renamer:   f.ui,
		QuickHelp: f.ui,
		BaseURL:   "http://localhost:8888",
	}
	if withTour {
		d.Tour = f.ui
	}
	return d
}
