package document

import (
	"encoding/json"

	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

func (d *Document) ToggleOutput() {
	d.edit(func(cell *Cell) bool { return toggleFlag(cell, metaCollapsed) })
}

func (d *Document) ToggleOutputScroll() {
	d.edit(func(cell *Cell) bool { return toggleFlag(cell, metaScrolled) })
}

func (d *Document) ClearOutput() {
	d.edit(clearOutput)
}

func (d *Document) ToggleAllOutput() {
	d.eachCode(func(cell *Cell) bool { return toggleFlag(cell, metaCollapsed) })
}

func (d *Document) ToggleAllOutputScroll() {
	d.eachCode(func(cell *Cell) bool { return toggleFlag(cell, metaScrolled) })
}

func (d *Document) ClearAllOutput() {
	d.eachCode(clearOutput)
}

func (d *Document) eachCode(fn func(cell *Cell) bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.content.cells {
		if fn(&d.content.cells[i]) {
			d.markDirty()
		}
	}
}

func toggleFlag(cell *Cell, key string) bool {
	if cell.Type != notebook.CellCode {
		return false
	}
	cell.setFlag(key, !cell.flag(key))
	return true
}

func clearOutput(cell *Cell) bool {
	if cell.Type != notebook.CellCode {
		return false
	}
	if len(cell.Outputs) == 0 && cell.ExecutionCount == nil {
		return false
	}
	cell.Outputs = []json.RawMessage{}
	cell.ExecutionCount = nil
	return true
}
