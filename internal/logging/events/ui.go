package events

import "github.com/atomicstack/notebook-menubar/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

// MenuEnter records enter on a menu entry. The filter is only recorded
// when one was typed.
func (UITracer) MenuEnter(levelID, itemID, label, filter string) {
	payload := map[string]interface{}{"level": levelID, "item": itemID, "label": label}
	if filter != "" {
		payload["filter"] = filter
	}
	logging.Trace("menu.enter", payload)
}

func (UITracer) MenuCursor(levelID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) Dialog(kind, title string) {
	logging.Trace("ui.dialog", map[string]interface{}{"kind": kind, "title": title})
}

func (UITracer) DialogAnswer(title string, confirmed bool) {
	logging.Trace("ui.dialog.answer", map[string]interface{}{"title": title, "confirmed": confirmed})
}

func (UITracer) Layout(part string, visible bool) {
	logging.Trace("ui.layout", map[string]interface{}{"part": part, "visible": visible})
}

func (UITracer) Close() {
	logging.Trace("ui.close", nil)
}

func (ActionTracer) Error(err error) {
	if err != nil {
		logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
	}
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

// filterTrace records a change to the filter of level; value is either
// the query text or the caret position.
func filterTrace(event, levelID, key string, value interface{}) {
	logging.Trace("filter."+event, map[string]interface{}{"level": levelID, key: value})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	filterTrace("word-backspace", levelID, "filter", filter)
}

func (FilterTracer) Cursor(levelID string, pos int) {
	filterTrace("cursor", levelID, "cursor", pos)
}

func (FilterTracer) CursorWord(levelID string, pos int) {
	filterTrace("cursor-word", levelID, "cursor", pos)
}

func (FilterTracer) Append(levelID, filter string) {
	filterTrace("append", levelID, "filter", filter)
}

func (FilterTracer) Backspace(levelID, filter string) {
	filterTrace("backspace", levelID, "filter", filter)
}

// Queue, Skip and Result follow one menu action through command.Bus.
func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, outcome string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "outcome": outcome})
}
