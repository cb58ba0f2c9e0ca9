package jupyter

import (
	"context"
	"net/http"

	"github.com/atomicstack/notebook-menubar/internal/logging/events"
)

// KernelModel describes a running kernel.
type KernelModel struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ExecutionState string `json:"execution_state,omitempty"`
}

// SessionModel binds a notebook path to a kernel.
type SessionModel struct {
	ID     string      `json:"id"`
	Path   string      `json:"path"`
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Kernel KernelModel `json:"kernel"`
}

// CreateSession starts (or reuses) a session for path.
func (c *Client) CreateSession(ctx context.Context, path, kernelName string) (*SessionModel, error) {
	in := map[string]interface{}{
		"path": path,
		"name": path,
		"type": "notebook",
	}
	if kernelName != "" {
		in["kernel"] = map[string]string{"name": kernelName}
	}
	var session SessionModel
	if err := c.do(ctx, http.MethodPost, APIPath(c.base, "sessions"), in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession ends a session and shuts down its kernel.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, APIPath(c.base, "sessions", id), nil, nil)
}

// InterruptKernel sends an interrupt to kernel id.
func (c *Client) InterruptKernel(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodPost, APIPath(c.base, "kernels", id, "interrupt"), nil, nil)
	events.Kernel.Op("interrupt", id, err)
	return err
}

// RestartKernel restarts kernel id.
func (c *Client) RestartKernel(ctx context.Context, id string) (*KernelModel, error) {
	var kernel KernelModel
	err := c.do(ctx, http.MethodPost, APIPath(c.base, "kernels", id, "restart"), nil, &kernel)
	events.Kernel.Op("restart", id, err)
	if err != nil {
		return nil, err
	}
	return &kernel, nil
}

// KernelInfo fetches the state of kernel id.
func (c *Client) KernelInfo(ctx context.Context, id string) (*KernelModel, error) {
	var kernel KernelModel
	if err := c.do(ctx, http.MethodGet, APIPath(c.base, "kernels", id), nil, &kernel); err != nil {
		return nil, err
	}
	return &kernel, nil
}
