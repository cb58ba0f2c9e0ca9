package document

import (
	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// ExecuteCell sends the selected code cell to the kernel.
func (d *Document) ExecuteCell() {
	d.mu.Lock()
	sources := d.codeSources(d.selected, d.selected+1)
	d.mu.Unlock()
	d.execute(sources)
}

// ExecuteCellAndSelectBelow runs the selection and moves down, adding a code
// cell when the selection was the last one.
func (d *Document) ExecuteCellAndSelectBelow() {
	d.mu.Lock()
	sources := d.codeSources(d.selected, d.selected+1)
	if d.selected >= len(d.content.cells)-1 {
		d.insertLocked(len(d.content.cells), newCell(notebook.CellCode))
	}
	d.selected = clamp(d.selected+1, len(d.content.cells))
	d.mu.Unlock()
	d.execute(sources)
}

// ExecuteCellAndInsertBelow runs the selection and selects a new code cell
// inserted below it.
func (d *Document) ExecuteCellAndInsertBelow() {
	d.mu.Lock()
	sources := d.codeSources(d.selected, d.selected+1)
	at := d.selected + 1
	if len(d.content.cells) == 0 {
		at = 0
	}
	d.insertLocked(at, newCell(notebook.CellCode))
	d.selected = at
	d.mu.Unlock()
	d.execute(sources)
}

func (d *Document) ExecuteAllCells() {
	d.mu.Lock()
	sources := d.codeSources(0, len(d.content.cells))
	d.mu.Unlock()
	d.execute(sources)
}

func (d *Document) ExecuteCellsAbove() {
	d.mu.Lock()
	sources := d.codeSources(0, d.selected)
	d.mu.Unlock()
	d.execute(sources)
}

func (d *Document) ExecuteCellsBelow() {
	d.mu.Lock()
	sources := d.codeSources(d.selected, len(d.content.cells))
	d.mu.Unlock()
	d.execute(sources)
}

// codeSources collects the non-empty code sources in [from, to).
func (d *Document) codeSources(from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(d.content.cells) {
		to = len(d.content.cells)
	}
	var sources []string
	for i := from; i < to; i++ {
		cell := d.content.cells[i]
		if cell.Type == notebook.CellCode && cell.Source != "" {
			sources = append(sources, cell.Source)
		}
	}
	return sources
}

func (d *Document) execute(sources []string) {
	if len(sources) == 0 {
		return
	}
	d.mu.Lock()
	channel := d.channel
	d.mu.Unlock()
	if channel == nil {
		d.modal("No Kernel", "The notebook is not connected to a kernel.")
		return
	}
	if err := channel.Execute(sources...); err != nil {
		logging.Error(err)
		d.modal("Kernel Error", "The error was: "+err.Error())
	}
}

// RestartKernel asks for confirmation, then restarts and reconnects.
func (d *Document) RestartKernel() {
	d.mu.Lock()
	session := d.session
	d.mu.Unlock()
	if session == nil || d.kernels == nil {
		d.modal("No Kernel", "The notebook is not connected to a kernel.")
		return
	}
	body := "Do you want to restart the current kernel? All variables will be lost."
	d.confirm("Restart kernel?", body, "Restart", func() {
		if _, err := d.kernels.RestartKernel(d.ctx, session.Kernel.ID); err != nil {
			logging.Error(err)
			d.modal("Kernel Error", "The error was: "+err.Error())
			return
		}
		d.mu.Lock()
		channel := d.channel
		d.mu.Unlock()
		if channel != nil {
			if err := channel.Reconnect(); err != nil {
				logging.Error(err)
			}
		}
	})
}
