package menu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

// ErrSealed is returned by Register once initialization has finished.
var ErrSealed = errors.New("menu: registry is sealed")

// Handler runs one action. arg is the text after the first colon of the
// dispatched action, empty for plain identifiers.
type Handler func(arg string)

// Selector re-selects the document's current unit after a menu interaction.
type Selector interface {
	SelectedIndex() int
	Select(index int)
}

// Registry maps action identifiers to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	sealed   bool
	selector Selector
	dialog   notebook.Dialog
}

// NewRegistry returns an empty registry. selector and dialog may be nil.
func NewRegistry(selector Selector, dialog notebook.Dialog) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		selector: selector,
		dialog:   dialog,
	}
}

// Register binds handler to id. A second registration for the same id
// replaces the first.
func (r *Registry) Register(id string, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		events.Registry.Sealed(id)
		return fmt.Errorf("register %q: %w", id, ErrSealed)
	}
	if _, exists := r.handlers[id]; exists {
		events.Registry.Overwrite(id)
	}
	r.handlers[id] = handler
	return nil
}

// Seal freezes the handler table.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Has reports whether action resolves to a bound handler.
func (r *Registry) Has(action string) bool {
	_, ok := r.lookup(action)
	return ok
}

// IDs returns the bound identifiers in vocabulary order followed by any extras.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.handlers))
	seen := make(map[string]struct{}, len(r.handlers))
	for _, id := range Vocabulary() {
		if _, ok := r.handlers[id]; ok {
			ids = append(ids, id)
			seen[id] = struct{}{}
		}
	}
	for id := range r.handlers {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Dispatch runs the handler bound to action and then re-selects the current
// unit, since opening a menu defocuses it. Unbound actions do nothing.
func (r *Registry) Dispatch(action string) {
	handler, ok := r.lookup(action)
	id, arg := SplitAction(action)
	if !ok {
		events.Registry.Unbound(id)
		return
	}
	events.Registry.Dispatch(id, arg)
	r.invoke(id, arg, handler)
	r.Reselect()
}

func (r *Registry) lookup(action string) (Handler, bool) {
	id, _ := SplitAction(action)
	r.mu.RLock()
	handler, ok := r.handlers[id]
	r.mu.RUnlock()
	if !ok || handler == nil {
		return nil, false
	}
	return handler, true
}

func (r *Registry) invoke(id, arg string, handler Handler) {
	defer func() {
		if rec := recover(); rec != nil {
			events.Registry.Panic(id, rec)
			if r.dialog != nil {
				r.dialog.Modal("Action Failed", fmt.Sprintf("%s: %v", id, rec))
			}
		}
	}()
	handler(arg)
}

// Reselect re-selects the current unit without running an action. Menu
// interactions that never reach Dispatch call it directly.
func (r *Registry) Reselect() {
	if r.selector == nil {
		return
	}
	r.selector.Select(r.selector.SelectedIndex())
}
