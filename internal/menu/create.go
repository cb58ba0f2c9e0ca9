package menu

import (
	"github.com/atomicstack/notebook-menubar/internal/jupyter"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// create opens a placeholder view straight away, then starts the creation.
// A committed creation redirects the placeholder to the new document; a
// failed one closes it and reports the error.
func (b *binder) create(kind, failTitle string, start func(dir string) *notebook.Creation) Handler {
	return func(string) {
		view, err := b.deps.Viewer.Open("")
		if err != nil {
			events.Action.Error(err)
			b.deps.Dialog.Modal(failTitle, "The error was: "+err.Error())
			return
		}
		dir, _ := jupyter.PathSplit(b.deps.Document.Path())
		events.Document.CreatePending(kind, dir)
		start(dir).Then(
			func(path string) {
				events.Document.CreateCommitted(kind, path)
				if err := view.Navigate(jupyter.JoinEncode(b.deps.BaseURL, "notebooks", path)); err != nil {
					events.Action.Error(err)
					b.deps.Dialog.Modal("Opening Window Failed", "The error was: "+err.Error())
				}
			},
			func(err error) {
				events.Document.CreateFailed(kind, err)
				_ = view.Close()
				b.deps.Dialog.Modal(failTitle, "The error was: "+err.Error())
			},
		)
	}
}
