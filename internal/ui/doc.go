// Package ui contains the Bubble Tea program that renders the notebook
// menubar. Model focuses on message orchestration while dedicated helpers own
// navigation, filtering, dialogs, forms and rendering.
//
// Message flow:
//   - Update first offers a message to whatever sits on top of the menu:
//     queued dialogs, then the rename form, shortcut page or tour. Anything
//     left is routed through a typed handler registry.
//   - Selecting a leaf item hands it to the command bus, which dispatches the
//     action on the registry off the UI goroutine and reports back with a
//     menu.ActionResult. Selecting a submenu runs its loader as a tea.Cmd.
//   - Bridge is the way back in for collaborators running outside the loop
//     (document dialogs, layout toggles, the metadata editor). Each call posts
//     a message that Update applies.
//
// State ownership:
//   - Menu levels live in internal/ui/state.Level.
//   - The trust entry and checkpoint list live in internal/state and are only
//     written by the synchronizer, which Update drives from backend events.
//   - The document header reads the model's Summary on every render.
package ui
