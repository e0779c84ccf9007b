package events

import "github.com/atomicstack/flatpak-manager/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Spawn(commandLine string) {
	logging.Trace("session.spawn", map[string]interface{}{"command": commandLine})
}

func (SessionTracer) SpawnFailed(commandLine string, err error) {
	logging.Trace("session.spawn.error", map[string]interface{}{"command": commandLine, "error": err.Error()})
}

func (SessionTracer) Input(bytes int) {
	logging.Trace("session.input", map[string]interface{}{"bytes": bytes})
}

func (SessionTracer) Complete(commandLine string, exitCode, bytes int) {
	logging.Trace("session.complete", map[string]interface{}{"command": commandLine, "exitCode": exitCode, "bytes": bytes})
}
