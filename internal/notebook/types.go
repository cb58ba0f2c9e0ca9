package notebook

import "time"

// Checkpoint identifies a saved restore point of a document.
type Checkpoint struct {
	ID           string    `json:"id"`
	LastModified time.Time `json:"last_modified"`
}

// CellType names the kind of a notebook cell.
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
	CellRaw      CellType = "raw"
)

// ExportFormat is a conversion target understood by the server.
type ExportFormat string

const (
	FormatHTML     ExportFormat = "html"
	FormatPython   ExportFormat = "python"
	FormatRST      ExportFormat = "rst"
	FormatPDF      ExportFormat = "pdf"
	FormatMarkdown ExportFormat = "markdown"
)

// ExportRequest is built per export invocation and never stored.
type ExportRequest struct {
	Format   ExportFormat
	Download bool
}

// CloneCheckpoints returns a copy of the provided slice.
func CloneCheckpoints(checkpoints []Checkpoint) []Checkpoint {
	if len(checkpoints) == 0 {
		return nil
	}
	dup := make([]Checkpoint, len(checkpoints))
	copy(dup, checkpoints)
	return dup
}
