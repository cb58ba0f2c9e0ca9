package jupyter

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// Model is a contents API entry.
type Model struct {
	Name         string          `json:"name"`
	Path         string          `json:"path"`
	Type         string          `json:"type"`
	Format       string          `json:"format,omitempty"`
	Writable     bool            `json:"writable"`
	LastModified time.Time       `json:"last_modified"`
	Content      json.RawMessage `json:"content,omitempty"`
}

// Get fetches a notebook with its content.
func (c *Client) Get(ctx context.Context, path string) (*Model, error) {
	var model Model
	url := APIPath(c.base, "contents", path) + "?type=notebook&content=1"
	if err := c.do(ctx, http.MethodGet, url, nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// Save writes notebook content to path.
func (c *Client) Save(ctx context.Context, path string, content json.RawMessage) (*Model, error) {
	in := map[string]interface{}{
		"type":    "notebook",
		"format":  "json",
		"content": content,
	}
	var model Model
	if err := c.do(ctx, http.MethodPut, APIPath(c.base, "contents", path), in, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// NewUntitled creates an empty notebook in dir and returns its model.
func (c *Client) NewUntitled(ctx context.Context, dir string) (*Model, error) {
	var model Model
	in := map[string]string{"type": "notebook"}
	if err := c.do(ctx, http.MethodPost, APIPath(c.base, "contents", dir), in, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// Copy duplicates from into dir.
func (c *Client) Copy(ctx context.Context, from, dir string) (*Model, error) {
	var model Model
	in := map[string]string{"copy_from": from}
	if err := c.do(ctx, http.MethodPost, APIPath(c.base, "contents", dir), in, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// Rename moves path to newPath.
func (c *Client) Rename(ctx context.Context, path, newPath string) (*Model, error) {
	var model Model
	in := map[string]string{"path": newPath}
	if err := c.do(ctx, http.MethodPatch, APIPath(c.base, "contents", path), in, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// ListCheckpoints returns the checkpoints of path in server order.
func (c *Client) ListCheckpoints(ctx context.Context, path string) ([]notebook.Checkpoint, error) {
	var checkpoints []notebook.Checkpoint
	if err := c.do(ctx, http.MethodGet, APIPath(c.base, "contents", path, "checkpoints"), nil, &checkpoints); err != nil {
		return nil, err
	}
	return checkpoints, nil
}

// CreateCheckpoint snapshots the saved state of path.
func (c *Client) CreateCheckpoint(ctx context.Context, path string) (notebook.Checkpoint, error) {
	var cp notebook.Checkpoint
	err := c.do(ctx, http.MethodPost, APIPath(c.base, "contents", path, "checkpoints"), nil, &cp)
	return cp, err
}

// RestoreCheckpoint rolls path back to checkpoint id.
func (c *Client) RestoreCheckpoint(ctx context.Context, path, id string) error {
	return c.do(ctx, http.MethodPost, APIPath(c.base, "contents", path, "checkpoints", id), nil, nil)
}

// Trust signs the notebook at path on the server.
func (c *Client) Trust(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodPost, APIPath(c.base, "contents", path, "trust"), nil, nil)
}

// Creator adapts the client to two-phase document creation.
type Creator struct {
	client *Client
	ctx    context.Context
}

// NewCreator returns a Creator whose requests run under ctx.
func NewCreator(ctx context.Context, client *Client) *Creator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Creator{client: client, ctx: ctx}
}

// NewUntitled starts creating a notebook in dir.
func (cr *Creator) NewUntitled(dir string) *notebook.Creation {
	return cr.start(func() (*Model, error) {
		return cr.client.NewUntitled(cr.ctx, dir)
	})
}

// Copy starts copying path into dir.
func (cr *Creator) Copy(path, dir string) *notebook.Creation {
	return cr.start(func() (*Model, error) {
		return cr.client.Copy(cr.ctx, path, dir)
	})
}

func (cr *Creator) start(create func() (*Model, error)) *notebook.Creation {
	creation := notebook.NewCreation()
	go func() {
		model, err := create()
		if err != nil {
			events.Action.Error(err)
			creation.Fail(err)
			return
		}
		creation.Commit(model.Path)
	}()
	return creation
}
