package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

const (
	metaTrusted   = "trusted"
	metaCollapsed = "collapsed"
	metaScrolled  = "scrolled"
)

// Cell is one nbformat v4 cell.
type Cell struct {
	Type           notebook.CellType
	Source         string
	Metadata       map[string]interface{}
	Outputs        []json.RawMessage
	ExecutionCount *int
	Attachments    json.RawMessage
}

func (c Cell) clone() Cell {
	dup := c
	dup.Metadata = cloneMetadata(c.Metadata)
	if c.Outputs != nil {
		dup.Outputs = append([]json.RawMessage(nil), c.Outputs...)
	}
	if c.ExecutionCount != nil {
		n := *c.ExecutionCount
		dup.ExecutionCount = &n
	}
	return dup
}

func (c Cell) flag(key string) bool {
	v, _ := c.Metadata[key].(bool)
	return v
}

func (c *Cell) setFlag(key string, value bool) {
	if c.Metadata == nil {
		c.Metadata = make(map[string]interface{})
	}
	c.Metadata[key] = value
}

func newCell(kind notebook.CellType) Cell {
	c := Cell{Type: kind, Metadata: map[string]interface{}{}}
	if kind == notebook.CellCode {
		c.Outputs = []json.RawMessage{}
		c.setFlag(metaTrusted, true)
	}
	return c
}

type cellJSON struct {
	CellType       notebook.CellType      `json:"cell_type"`
	Source         multiline              `json:"source"`
	Metadata       map[string]interface{} `json:"metadata"`
	Outputs        []json.RawMessage      `json:"outputs,omitempty"`
	ExecutionCount *int                   `json:"execution_count,omitempty"`
	Attachments    json.RawMessage        `json:"attachments,omitempty"`
}

type notebookJSON struct {
	Cells         []cellJSON             `json:"cells"`
	Metadata      map[string]interface{} `json:"metadata"`
	NBFormat      int                    `json:"nbformat"`
	NBFormatMinor int                    `json:"nbformat_minor"`
}

// savedNotebook keeps cells as maps: code cells need an explicit null
// execution_count that other cell types must not carry.
type savedNotebook struct {
	Cells         []map[string]interface{} `json:"cells"`
	Metadata      map[string]interface{}   `json:"metadata"`
	NBFormat      int                      `json:"nbformat"`
	NBFormatMinor int                      `json:"nbformat_minor"`
}

// multiline accepts both forms nbformat allows for source text.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("cell source: %w", err)
	}
	*m = multiline(strings.Join(lines, ""))
	return nil
}

type content struct {
	cells    []Cell
	metadata map[string]interface{}
	minor    int
}

func decode(raw json.RawMessage) (content, error) {
	var nb notebookJSON
	if err := json.Unmarshal(raw, &nb); err != nil {
		return content{}, fmt.Errorf("decode notebook: %w", err)
	}
	if nb.NBFormat != 0 && nb.NBFormat != 4 {
		return content{}, fmt.Errorf("unsupported nbformat %d", nb.NBFormat)
	}
	cells := make([]Cell, 0, len(nb.Cells))
	for _, c := range nb.Cells {
		cell := Cell{
			Type:           c.CellType,
			Source:         string(c.Source),
			Metadata:       c.Metadata,
			Outputs:        c.Outputs,
			ExecutionCount: c.ExecutionCount,
			Attachments:    c.Attachments,
		}
		if cell.Metadata == nil {
			cell.Metadata = map[string]interface{}{}
		}
		if cell.Type == notebook.CellCode && cell.Outputs == nil {
			cell.Outputs = []json.RawMessage{}
		}
		cells = append(cells, cell)
	}
	meta := nb.Metadata
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return content{cells: cells, metadata: meta, minor: nb.NBFormatMinor}, nil
}

// encode serializes for saving. The server owns the trusted flag, so it is
// stripped from cell metadata.
func encode(c content) (json.RawMessage, error) {
	nb := savedNotebook{
		Cells:         make([]map[string]interface{}, 0, len(c.cells)),
		Metadata:      c.metadata,
		NBFormat:      4,
		NBFormatMinor: c.minor,
	}
	if nb.Metadata == nil {
		nb.Metadata = map[string]interface{}{}
	}
	for _, cell := range c.cells {
		meta := cloneMetadata(cell.Metadata)
		if meta == nil {
			meta = map[string]interface{}{}
		}
		delete(meta, metaTrusted)
		out := map[string]interface{}{
			"cell_type": cell.Type,
			"source":    cell.Source,
			"metadata":  meta,
		}
		if len(cell.Attachments) > 0 && cell.Type != notebook.CellCode {
			out["attachments"] = cell.Attachments
		}
		if cell.Type == notebook.CellCode {
			outputs := cell.Outputs
			if outputs == nil {
				outputs = []json.RawMessage{}
			}
			out["outputs"] = outputs
			out["execution_count"] = cell.ExecutionCount
		}
		nb.Cells = append(nb.Cells, out)
	}
	raw, err := json.Marshal(nb)
	if err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}
	return raw, nil
}

// trusted reports whether every code cell carries the server's trust mark.
func trusted(cells []Cell) bool {
	for _, cell := range cells {
		if cell.Type == notebook.CellCode && !cell.flag(metaTrusted) {
			return false
		}
	}
	return true
}

func cloneMetadata(meta map[string]interface{}) map[string]interface{} {
	if meta == nil {
		return nil
	}
	dup := make(map[string]interface{}, len(meta))
	for k, v := range meta {
		dup[k] = v
	}
	return dup
}
