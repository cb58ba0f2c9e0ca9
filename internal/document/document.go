// Package document holds the in-memory notebook the menubar acts on. It
// loads from and saves to a Jupyter server, tracks selection and edits, and
// announces trust and checkpoint changes on a notebook.Bus.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/atomicstack/notebook-menubar/internal/jupyter"
	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// Store is the contents side of the server.
type Store interface {
	Get(ctx context.Context, path string) (*jupyter.Model, error)
	Save(ctx context.Context, path string, content json.RawMessage) (*jupyter.Model, error)
	Rename(ctx context.Context, path, newPath string) (*jupyter.Model, error)
	ListCheckpoints(ctx context.Context, path string) ([]notebook.Checkpoint, error)
	CreateCheckpoint(ctx context.Context, path string) (notebook.Checkpoint, error)
	RestoreCheckpoint(ctx context.Context, path, id string) error
	Trust(ctx context.Context, path string) error
}

// Kernels is the sessions and kernels side of the server.
type Kernels interface {
	CreateSession(ctx context.Context, path, kernelName string) (*jupyter.SessionModel, error)
	DeleteSession(ctx context.Context, id string) error
	InterruptKernel(ctx context.Context, id string) error
	RestartKernel(ctx context.Context, id string) (*jupyter.KernelModel, error)
}

// Channel sends code to a kernel.
type Channel interface {
	Execute(sources ...string) error
	Reconnect() error
	Close() error
}

// ChannelFactory opens a channel for a kernel within a session.
type ChannelFactory func(kernelID, sessionID string) Channel

// Options configures a Document.
type Options struct {
	Store      Store
	Kernels    Kernels
	Channels   ChannelFactory
	Dialog     notebook.Dialog
	Metadata   notebook.MetadataEditor
	Bus        *notebook.Bus
	KernelName string
	Context    context.Context
}

type removed struct {
	cell  Cell
	index int
}

// Document implements notebook.Document. All methods are safe for
// concurrent use; events and dialogs are raised after the lock is released.
type Document struct {
	store    Store
	kernels  Kernels
	channels ChannelFactory
	dialog   notebook.Dialog
	metadata notebook.MetadataEditor
	bus      *notebook.Bus
	kernel   string
	ctx      context.Context

	mu          sync.Mutex
	path        string
	loaded      bool
	content     content
	selected    int
	dirty       bool
	edits       uint64
	trusted     bool
	clipboard   *Cell
	undelete    []removed
	checkpoints []notebook.Checkpoint
	session     *jupyter.SessionModel
	channel     Channel
}

var errNotLoaded = errors.New("document not loaded")

// New returns an unloaded document for path.
func New(path string, opts Options) *Document {
	bus := opts.Bus
	if bus == nil {
		bus = notebook.NewBus()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Document{
		store:    opts.Store,
		kernels:  opts.Kernels,
		channels: opts.Channels,
		dialog:   opts.Dialog,
		metadata: opts.Metadata,
		bus:      bus,
		kernel:   opts.KernelName,
		ctx:      ctx,
		path:     strings.Trim(path, "/"),
	}
}

// Events exposes the document's event subscriptions.
func (d *Document) Events() notebook.Events {
	return d.bus
}

// Load fetches the notebook, starts a session when a kernel service is
// configured, and announces trust and checkpoints.
func (d *Document) Load(ctx context.Context) error {
	if err := d.reload(ctx); err != nil {
		return err
	}
	if d.kernels != nil {
		if err := d.startSession(ctx); err != nil {
			logging.Error(err)
			d.modal("Kernel Error", "Could not start a kernel session: "+err.Error())
		}
	}
	return d.ListCheckpoints(ctx)
}

func (d *Document) reload(ctx context.Context) error {
	d.mu.Lock()
	path := d.path
	d.mu.Unlock()

	model, err := d.store.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	c, err := decode(model.Content)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	d.mu.Lock()
	d.content = c
	d.loaded = true
	d.dirty = false
	d.undelete = nil
	d.selected = clamp(d.selected, len(c.cells))
	d.trusted = trusted(c.cells)
	isTrusted := d.trusted
	d.mu.Unlock()

	events.Document.Loaded(path, len(c.cells))
	d.bus.EmitTrustChanged(isTrusted)
	return nil
}

func (d *Document) startSession(ctx context.Context) error {
	d.mu.Lock()
	path := d.path
	d.mu.Unlock()
	session, err := d.kernels.CreateSession(ctx, path, d.kernel)
	if err != nil {
		return err
	}
	var channel Channel
	if d.channels != nil {
		channel = d.channels(session.Kernel.ID, session.ID)
	}
	d.mu.Lock()
	d.session = session
	d.channel = channel
	d.mu.Unlock()
	return nil
}

func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// markDirty records an edit. The caller holds mu.
func (d *Document) markDirty() {
	d.dirty = true
	d.edits++
}

func (d *Document) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Trusted reports the current trust state.
func (d *Document) Trusted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.trusted
}

// Save writes the notebook and reports failures through the dialog.
func (d *Document) Save(ctx context.Context) error {
	err := d.save(ctx)
	if err != nil {
		logging.Error(err)
		d.modal("Saving Failed", "The error was: "+err.Error())
	}
	return err
}

func (d *Document) save(ctx context.Context) error {
	d.mu.Lock()
	if !d.loaded {
		d.mu.Unlock()
		return errNotLoaded
	}
	path := d.path
	generation := d.edits
	raw, err := encode(d.content)
	d.mu.Unlock()
	if err != nil {
		return err
	}
	if _, err := d.store.Save(ctx, path, raw); err != nil {
		return err
	}
	d.mu.Lock()
	// edits made during the round trip are not on the server yet.
	if d.edits == generation {
		d.dirty = false
	}
	d.mu.Unlock()
	events.Document.Saved(path)
	return nil
}

// SaveCheckpoint saves, then records a checkpoint of the saved state.
func (d *Document) SaveCheckpoint() {
	if err := d.Save(d.ctx); err != nil {
		return
	}
	path := d.Path()
	cp, err := d.store.CreateCheckpoint(d.ctx, path)
	if err != nil {
		logging.Error(err)
		d.modal("Checkpoint Failed", "The error was: "+err.Error())
		return
	}
	events.Checkpoint.Created(cp.ID)

	d.mu.Lock()
	list := make([]notebook.Checkpoint, 0, len(d.checkpoints)+1)
	list = append(list, cp)
	for _, existing := range d.checkpoints {
		if existing.ID != cp.ID {
			list = append(list, existing)
		}
	}
	sortNewestFirst(list)
	d.checkpoints = list
	snapshot := notebook.CloneCheckpoints(list)
	d.mu.Unlock()

	d.bus.EmitCheckpointCreated(snapshot)
}

// ListCheckpoints refreshes the checkpoint list from the server.
func (d *Document) ListCheckpoints(ctx context.Context) error {
	path := d.Path()
	list, err := d.store.ListCheckpoints(ctx, path)
	if err != nil {
		return fmt.Errorf("list checkpoints: %w", err)
	}
	sortNewestFirst(list)
	d.mu.Lock()
	d.checkpoints = notebook.CloneCheckpoints(list)
	d.mu.Unlock()
	events.Checkpoint.Listed(len(list))
	d.bus.EmitCheckpointsListed(list)
	return nil
}

// Checkpoints returns the last known checkpoint list.
func (d *Document) Checkpoints() []notebook.Checkpoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return notebook.CloneCheckpoints(d.checkpoints)
}

// Rename moves the notebook to name within its directory.
func (d *Document) Rename(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name is required")
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("invalid name %q", name)
	}
	if !strings.HasSuffix(name, ".ipynb") {
		name += ".ipynb"
	}
	from := d.Path()
	dir, _ := jupyter.PathSplit(from)
	to := name
	if dir != "" {
		to = dir + "/" + name
	}
	if to == from {
		return nil
	}
	model, err := d.store.Rename(ctx, from, to)
	if err != nil {
		return err
	}
	if model != nil && model.Path != "" {
		to = model.Path
	}
	d.mu.Lock()
	d.path = to
	d.mu.Unlock()
	events.Document.Renamed(from, to)
	return nil
}

// RestoreCheckpointDialog asks for confirmation before reverting to cp.
func (d *Document) RestoreCheckpointDialog(cp notebook.Checkpoint) {
	body := "Are you sure you want to revert the notebook to the latest checkpoint? This cannot be undone."
	if !cp.LastModified.IsZero() {
		body += " The checkpoint was last updated at: " + cp.LastModified.Local().Format("Mon Jan 2 2006 15:04:05")
	}
	d.confirm("Notebook checkpoint restore", body, "Revert", func() {
		d.restoreCheckpoint(cp)
	})
}

func (d *Document) restoreCheckpoint(cp notebook.Checkpoint) {
	path := d.Path()
	if err := d.store.RestoreCheckpoint(d.ctx, path, cp.ID); err != nil {
		logging.Error(err)
		d.modal("Restore failed", "The error was: "+err.Error())
		return
	}
	events.Checkpoint.Restored(cp.ID)
	if err := d.reload(d.ctx); err != nil {
		logging.Error(err)
		d.modal("Restore failed", "The error was: "+err.Error())
	}
}

// TrustDocument asks for confirmation, then signs and reloads the notebook.
func (d *Document) TrustDocument() {
	if d.Trusted() {
		return
	}
	body := "A trusted notebook may execute hidden malicious code when you open it. " +
		"Selecting trust will immediately reload this notebook in a trusted state."
	d.confirm("Trust this notebook?", body, "Trust", d.trust)
}

func (d *Document) trust() {
	if err := d.save(d.ctx); err != nil && !errors.Is(err, errNotLoaded) {
		logging.Error(err)
		d.modal("Trust failed", "The error was: "+err.Error())
		return
	}
	if err := d.store.Trust(d.ctx, d.Path()); err != nil {
		logging.Error(err)
		d.modal("Trust failed", "The error was: "+err.Error())
		return
	}
	if err := d.reload(d.ctx); err != nil {
		logging.Error(err)
		d.modal("Trust failed", "The error was: "+err.Error())
	}
}

// EditMetadata round-trips the notebook metadata through the editor.
func (d *Document) EditMetadata() {
	if d.metadata == nil {
		return
	}
	d.mu.Lock()
	current, err := json.MarshalIndent(d.content.metadata, "", "  ")
	d.mu.Unlock()
	if err != nil {
		d.modal("Editing Metadata Failed", err.Error())
		return
	}
	edited, err := d.metadata.EditMetadata(current)
	if err != nil {
		logging.Error(err)
		d.modal("Editing Metadata Failed", "The error was: "+err.Error())
		return
	}
	var meta map[string]interface{}
	if err := json.Unmarshal(edited, &meta); err != nil {
		d.modal("Editing Metadata Failed", "WARNING: Could not save invalid JSON. "+err.Error())
		return
	}
	if meta == nil {
		meta = map[string]interface{}{}
	}
	d.mu.Lock()
	d.content.metadata = meta
	d.markDirty()
	d.mu.Unlock()
}

// Close releases the kernel channel.
func (d *Document) Close() error {
	d.mu.Lock()
	channel := d.channel
	d.channel = nil
	d.mu.Unlock()
	if channel == nil {
		return nil
	}
	return channel.Close()
}

func (d *Document) modal(title, body string) {
	if d.dialog != nil {
		d.dialog.Modal(title, body)
	}
}

func (d *Document) confirm(title, body, label string, onConfirm func()) {
	if d.dialog == nil {
		onConfirm()
		return
	}
	d.dialog.Confirm(title, body, label, onConfirm)
}

func sortNewestFirst(list []notebook.Checkpoint) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LastModified.After(list[j].LastModified)
	})
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
