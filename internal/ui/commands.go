package ui

import (
	"fmt"

	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// handleActionResultMsg closes the open menus once an action has run, the
// way a menubar drops down again after a click.
func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	label := m.pendingLabel
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	switch {
	case result.Info != "":
		m.setInfo(result.Info)
	case m.verbose && label != "":
		m.setInfo(fmt.Sprintf("Ran %s", label))
	default:
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	m.collapseToRoot()
	return nil
}

func (m *Model) loadMenuCmd(id, title string, loader menu.Loader) tea.Cmd {
	ctx := m.menuContext()
	return func() tea.Msg {
		items, err := loader(ctx)
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

func (m *Model) menuContext() menu.Context {
	ctx := menu.Context{
		Trust:         m.trust.Entry(),
		Checkpoints:   m.checkpoints.Entries(),
		TourAvailable: m.tourAvailable,
	}
	if m.doc != nil {
		ctx.DocumentPath = m.doc.Summary().Path
	}
	return ctx
}
