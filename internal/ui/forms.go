package ui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/atomicstack/notebook-menubar/internal/logging"
	"github.com/atomicstack/notebook-menubar/internal/logging/events"
	"github.com/atomicstack/notebook-menubar/internal/menu"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const notebookExt = ".ipynb"

type renameForm struct {
	input   textinput.Model
	current string
	title   string
	help    string
}

func newRenameForm(docPath string) *renameForm {
	name := strings.TrimSuffix(path.Base(docPath), notebookExt)
	if docPath == "" {
		name = ""
	}
	ti := textinput.New()
	ti.Placeholder = "notebook name"
	ti.CharLimit = 255
	ti.Cursor.SetMode(cursor.CursorStatic)
	if name != "" {
		ti.SetValue(name)
		ti.CursorEnd()
	}
	ti.Focus()
	title := "Rename Notebook"
	if name != "" {
		title = fmt.Sprintf("Rename %s", name)
	}
	return &renameForm{
		input:   ti,
		current: name,
		title:   title,
		help:    "Enter a new notebook name. Enter to rename, Esc to cancel.",
	}
}

func (f *renameForm) Title() string     { return f.title }
func (f *renameForm) Help() string      { return f.help }
func (f *renameForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *renameForm) InputView() string { return f.input.View() }

// Update feeds msg to the input. It reports done on a non-empty, changed
// name and cancel on escape or an unchanged name.
func (f *renameForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyEnter:
			name := strings.TrimSuffix(f.Value(), notebookExt)
			if name == "" || name == f.current {
				return nil, false, true
			}
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

func (m *Model) handleRenamePromptMsg(tea.Msg) tea.Cmd {
	if m.rename == nil {
		m.setInfo("Renaming is not available")
		return nil
	}
	docPath := ""
	if m.doc != nil {
		docPath = m.doc.Summary().Path
	}
	m.renameForm = newRenameForm(docPath)
	m.mode = ModeRenameForm
	return nil
}

// handleRenameForm claims key presses while the form is open; other
// messages still reach the regular handlers.
func (m *Model) handleRenameForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.renameForm == nil {
		m.mode = ModeMenu
		return false, nil
	}
	_, isKey := msg.(tea.KeyMsg)
	cmd, done, cancel := m.renameForm.Update(msg)
	if cancel {
		m.renameForm = nil
		m.mode = ModeMenu
		return true, cmd
	}
	if done {
		name := m.renameForm.Value()
		m.renameForm = nil
		m.mode = ModeMenu
		m.loading = true
		m.pendingID = menu.ActionRename
		m.pendingLabel = "Rename → " + name
		return true, renameCommand(m.rename, name)
	}
	return isKey, cmd
}

func renameCommand(rename RenameFunc, name string) tea.Cmd {
	return func() tea.Msg {
		if err := rename(context.Background(), name); err != nil {
			logging.Error(err)
			return menu.ActionResult{ID: menu.ActionRename, Err: fmt.Errorf("rename failed: %w", err)}
		}
		return menu.ActionResult{ID: menu.ActionRename, Info: fmt.Sprintf("Renamed to %s", name)}
	}
}

func (m *Model) viewRenameFormWithHeader(header string) string {
	lines := []string{
		m.renameForm.Title(),
		"",
		m.renameForm.InputView(),
		"",
		m.renameForm.Help(),
	}
	if header != "" {
		lines = append([]string{header, ""}, lines...)
	}
	return strings.Join(lines, "\n")
}

type editorClosedMsg struct {
	err error
}

func (m *Model) editorCommand() []string {
	for _, candidate := range []string{m.editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// handleEditMetadataMsg suspends the program and opens the metadata in the
// user's editor. The waiting caller gets the edited bytes on its reply
// channel once the editor exits.
func (m *Model) handleEditMetadataMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(editMetadataMsg)
	if !ok {
		return nil
	}
	file, err := os.CreateTemp("", "notebook-metadata-*.json")
	if err != nil {
		req.reply <- editorResult{err: fmt.Errorf("create metadata file: %w", err)}
		return nil
	}
	name := file.Name()
	_, err = file.Write(req.content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(name)
		req.reply <- editorResult{err: fmt.Errorf("write metadata file: %w", err)}
		return nil
	}
	argv := append(m.editorCommand(), name)
	cmd := exec.Command(argv[0], argv[1:]...)
	events.UI.Dialog("editor", argv[0])
	return tea.ExecProcess(cmd, editorCallback(name, req.reply))
}

func editorCallback(name string, reply chan<- editorResult) tea.ExecCallback {
	return func(runErr error) tea.Msg {
		defer os.Remove(name)
		if runErr != nil {
			reply <- editorResult{err: fmt.Errorf("editor: %w", runErr)}
			return editorClosedMsg{err: runErr}
		}
		content, err := os.ReadFile(name)
		if err != nil {
			reply <- editorResult{err: fmt.Errorf("read metadata file: %w", err)}
			return editorClosedMsg{err: err}
		}
		reply <- editorResult{content: content}
		return editorClosedMsg{}
	}
}

func (m *Model) handleEditorClosedMsg(msg tea.Msg) tea.Cmd {
	closed, ok := msg.(editorClosedMsg)
	if !ok {
		return nil
	}
	if closed.err != nil {
		m.errMsg = closed.err.Error()
	}
	return nil
}
