package command

import (
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Dispatcher resolves and runs registry actions.
type Dispatcher interface {
	Has(action string) bool
	Dispatch(action string)
	Reselect()
}

// Request encapsulates an action invocation.
type Request struct {
	ID    string
	Label string
	Item  menu.Item
}

// Bus runs menu actions off the UI goroutine.
type Bus struct {
	registry Dispatcher
}

// New returns a bus that dispatches through registry.
func New(registry Dispatcher) *Bus {
	return &Bus{registry: registry}
}

// Execute wraps the request into a Bubble Tea command while emitting trace
// logs. Items carrying their own Activate run it in place of a dispatch.
// Every path leaves the current unit re-selected.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		switch {
		case req.Item.Activate != nil:
			req.Item.Activate()
			b.reselect()
			events.Command.Result(req.ID, req.Label, "activated")
		case b.registry != nil && b.registry.Has(req.ID):
			b.registry.Dispatch(req.ID)
			events.Command.Result(req.ID, req.Label, "dispatched")
		default:
			b.reselect()
			events.Command.Skip(req.ID, req.Label)
			return menu.ActionResult{ID: req.ID, Info: "Nothing bound to " + req.Label}
		}
		return menu.ActionResult{ID: req.ID}
	}
}

// Reselect returns a command that only re-selects the current unit, for
// entries that cannot run.
func (b *Bus) Reselect() tea.Cmd {
	if b.registry == nil {
		return nil
	}
	return func() tea.Msg {
		b.reselect()
		return nil
	}
}

func (b *Bus) reselect() {
	if b.registry != nil {
		b.registry.Reselect()
	}
}
