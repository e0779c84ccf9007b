package events

import "github.com/atomicstack/flatpak-manager/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Interrupt() {
	logging.Trace("app.interrupt", nil)
}

func (AppTracer) Exit(stopAll bool, stopped int) {
	logging.Trace("app.exit", map[string]interface{}{"stopAll": stopAll, "stopped": stopped})
}
