package document

import (
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// Summary is a point-in-time view of the document for display.
type Summary struct {
	Path     string
	Dirty    bool
	Trusted  bool
	Selected int
	Count    int
	CellType notebook.CellType
	Kernel   string
}

// Summary returns the current display state.
func (d *Document) Summary() Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := Summary{
		Path:     d.path,
		Dirty:    d.dirty,
		Trusted:  d.trusted,
		Selected: d.selected,
		Count:    len(d.content.cells),
	}
	if cell, ok := d.current(); ok {
		s.CellType = cell.Type
	}
	if d.session != nil {
		s.Kernel = d.session.Kernel.Name
	}
	return s
}

// Cells returns a copy of every cell.
func (d *Document) Cells() []Cell {
	d.mu.Lock()
	defer d.mu.Unlock()
	cells := make([]Cell, len(d.content.cells))
	for i, c := range d.content.cells {
		cells[i] = c.clone()
	}
	return cells
}

func (d *Document) current() (*Cell, bool) {
	if d.selected < 0 || d.selected >= len(d.content.cells) {
		return nil, false
	}
	return &d.content.cells[d.selected], true
}

// edit runs fn on the selected cell under the lock and marks the document
// dirty when fn reports a change.
func (d *Document) edit(fn func(cell *Cell) bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cell, ok := d.current()
	if !ok {
		return
	}
	if fn(cell) {
		d.markDirty()
	}
}

func (d *Document) SelectedIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

func (d *Document) Select(index int) {
	d.mu.Lock()
	d.selected = clamp(index, len(d.content.cells))
	d.mu.Unlock()
}

func (d *Document) SelectPrev() {
	d.mu.Lock()
	if d.selected > 0 {
		d.selected--
	}
	d.mu.Unlock()
}

func (d *Document) SelectNext() {
	d.mu.Lock()
	if d.selected < len(d.content.cells)-1 {
		d.selected++
	}
	d.mu.Unlock()
}

func (d *Document) CutCell() {
	d.mu.Lock()
	defer d.mu.Unlock()
	cell, ok := d.current()
	if !ok {
		return
	}
	copied := cell.clone()
	d.clipboard = &copied
	d.deleteLocked()
}

func (d *Document) CopyCell() {
	d.mu.Lock()
	defer d.mu.Unlock()
	cell, ok := d.current()
	if !ok {
		return
	}
	copied := cell.clone()
	d.clipboard = &copied
}

// PasteCellBelow inserts the clipboard cell below the selection.
func (d *Document) PasteCellBelow() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.clipboard == nil {
		return
	}
	at := d.selected + 1
	if len(d.content.cells) == 0 {
		at = 0
	}
	d.insertLocked(at, d.clipboard.clone())
	d.selected = at
}

func (d *Document) DeleteCell() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteLocked()
}

func (d *Document) deleteLocked() {
	cell, ok := d.current()
	if !ok {
		return
	}
	d.undelete = append(d.undelete, removed{cell: cell.clone(), index: d.selected})
	cells := d.content.cells
	d.content.cells = append(cells[:d.selected:d.selected], cells[d.selected+1:]...)
	d.selected = clamp(d.selected, len(d.content.cells))
	d.markDirty()
}

func (d *Document) UndeleteCell() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.undelete) == 0 {
		return
	}
	last := d.undelete[len(d.undelete)-1]
	d.undelete = d.undelete[:len(d.undelete)-1]
	at := last.index
	if at > len(d.content.cells) {
		at = len(d.content.cells)
	}
	d.insertLocked(at, last.cell)
	if at <= d.selected && len(d.content.cells) > 1 {
		d.selected++
	}
	d.selected = clamp(d.selected, len(d.content.cells))
}

// SplitCell splits the selected cell's source at its middle line.
func (d *Document) SplitCell() {
	d.mu.Lock()
	defer d.mu.Unlock()
	cell, ok := d.current()
	if !ok {
		return
	}
	lines := strings.SplitAfter(cell.Source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return
	}
	mid := len(lines) / 2
	upper := strings.TrimSuffix(strings.Join(lines[:mid], ""), "\n")
	lower := strings.Join(lines[mid:], "")
	second := newCell(cell.Type)
	second.Source = lower
	cell.Source = upper
	d.insertLocked(d.selected+1, second)
}

func (d *Document) MergeCellAbove() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected <= 0 || d.selected >= len(d.content.cells) {
		return
	}
	d.mergeLocked(d.selected - 1)
}

func (d *Document) MergeCellBelow() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected < 0 || d.selected >= len(d.content.cells)-1 {
		return
	}
	d.mergeLocked(d.selected)
}

// mergeLocked folds cell upper+1 into upper and selects the result.
func (d *Document) mergeLocked(upper int) {
	cells := d.content.cells
	top, bottom := cells[upper], cells[upper+1]
	top.Source = strings.TrimSuffix(top.Source, "\n") + "\n" + bottom.Source
	if top.Type == notebook.CellCode {
		top.Outputs = nil
		top.ExecutionCount = nil
	}
	cells[upper] = top
	d.content.cells = append(cells[:upper+1:upper+1], cells[upper+2:]...)
	d.selected = upper
	d.markDirty()
}

func (d *Document) MoveCellUp() {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.selected
	if i <= 0 || i >= len(d.content.cells) {
		return
	}
	d.content.cells[i-1], d.content.cells[i] = d.content.cells[i], d.content.cells[i-1]
	d.selected = i - 1
	d.markDirty()
}

func (d *Document) MoveCellDown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.selected
	if i < 0 || i >= len(d.content.cells)-1 {
		return
	}
	d.content.cells[i+1], d.content.cells[i] = d.content.cells[i], d.content.cells[i+1]
	d.selected = i + 1
	d.markDirty()
}

// InsertCellAbove inserts a cell before the selection. The selection stays
// on the same cell.
func (d *Document) InsertCellAbove(kind notebook.CellType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	at := d.selected
	d.insertLocked(at, newCell(kind))
	if len(d.content.cells) > 1 {
		d.selected = at + 1
	}
}

// InsertCellBelow inserts a cell after the selection.
func (d *Document) InsertCellBelow(kind notebook.CellType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	at := d.selected + 1
	if len(d.content.cells) == 0 {
		at = 0
	}
	d.insertLocked(at, newCell(kind))
}

func (d *Document) insertLocked(at int, cell Cell) {
	cells := d.content.cells
	if at < 0 {
		at = 0
	}
	if at > len(cells) {
		at = len(cells)
	}
	cells = append(cells, Cell{})
	copy(cells[at+1:], cells[at:])
	cells[at] = cell
	d.content.cells = cells
	d.markDirty()
}

func (d *Document) ToCode()     { d.convert(notebook.CellCode) }
func (d *Document) ToMarkdown() { d.convert(notebook.CellMarkdown) }
func (d *Document) ToRaw()      { d.convert(notebook.CellRaw) }

func (d *Document) convert(kind notebook.CellType) {
	d.edit(func(cell *Cell) bool {
		if cell.Type == kind {
			return false
		}
		cell.Type = kind
		cell.ExecutionCount = nil
		if kind == notebook.CellCode {
			cell.Outputs = nil
			cell.Attachments = nil
			cell.setFlag(metaTrusted, true)
		} else {
			cell.Outputs = nil
			delete(cell.Metadata, metaCollapsed)
			delete(cell.Metadata, metaScrolled)
			delete(cell.Metadata, metaTrusted)
		}
		return true
	})
}
