package menu

import (
	"github.com/atomicstack/notebook-menubar/internal/jupyter"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// ExportURL builds {base}/{endpoint}/{format}/{path}?download={0|1}.
func ExportURL(base, endpoint string, req notebook.ExportRequest, path string) string {
	return jupyter.JoinEncode(base, endpoint, string(req.Format), path) + "?download=" + downloadFlag(req.Download)
}

// FilesURL builds the raw download URL for a document.
func FilesURL(base, path string) string {
	return jupyter.JoinEncode(base, "files", path) + "?download=1"
}

func downloadFlag(download bool) string {
	if download {
		return "1"
	}
	return "0"
}

// export saves a dirty document before opening the converted view. A failed
// save stops the export instead of opening the last copy on the server.
func (b *binder) export(format notebook.ExportFormat, download bool) Handler {
	return func(string) {
		path := b.deps.Document.Path()
		if !b.saveIfDirty(path) {
			return
		}
		req := notebook.ExportRequest{Format: format, Download: download}
		url := ExportURL(b.deps.BaseURL, b.endpoint(), req, path)
		events.Export.Open(url)
		b.openView(url)
	}
}

func (b *binder) downloadIPYNB(string) {
	path := b.deps.Document.Path()
	if !b.saveIfDirty(path) {
		return
	}
	url := FilesURL(b.deps.BaseURL, path)
	events.Export.Open(url)
	b.openView(url)
}

// saveIfDirty blocks on a save when the document has unsaved changes. The
// document reports its own save failures; the caller only learns to stop.
func (b *binder) saveIfDirty(path string) bool {
	doc := b.deps.Document
	if !doc.Dirty() {
		return true
	}
	events.Export.SaveFirst(path)
	if err := doc.Save(b.ctx()); err != nil {
		events.Export.Abort(path, err)
		return false
	}
	return true
}
