package events

import "github.com/atomicstack/notebook-menubar/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

// Start records the startup context built by main.
func (AppTracer) Start(payload interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Ready(baseURL, path string) {
	logging.Trace("app.ready", map[string]interface{}{"url": baseURL, "notebook": path})
}

func (AppTracer) Stop(err error) {
	logging.Trace("app.stop", map[string]interface{}{"error": errString(err)})
}
