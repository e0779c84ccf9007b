package events

import (
	"time"

	"github.com/atomicstack/flatpak-manager/internal/logging"
)

type DashboardTracer struct{}

type SearchTracer struct{}

type ConfirmTracer struct{}

type CommandTracer struct{}

var (
	Dashboard = DashboardTracer{}
	Search    = SearchTracer{}
	Confirm   = ConfirmTracer{}
	Command   = CommandTracer{}
)

func (DashboardTracer) Refresh(installed, running int) {
	logging.Trace("dashboard.refresh", map[string]interface{}{"installed": installed, "running": running})
}

func (DashboardTracer) Cursor(panel string, cursor int) {
	logging.Trace("dashboard.cursor", map[string]interface{}{"panel": panel, "cursor": cursor})
}

func (DashboardTracer) Focus(panel string) {
	logging.Trace("dashboard.focus", map[string]interface{}{"panel": panel})
}

func (DashboardTracer) Filter(filter string) {
	logging.Trace("dashboard.filter", map[string]interface{}{"filter": filter})
}

func (DashboardTracer) Mode(from, to string) {
	logging.Trace("dashboard.mode", map[string]interface{}{"from": from, "to": to})
}

func (SearchTracer) Query(mode, query string) {
	logging.Trace("search.query", map[string]interface{}{"mode": mode, "query": query})
}

func (SearchTracer) Results(mode, query string, count int) {
	logging.Trace("search.results", map[string]interface{}{"mode": mode, "query": query, "count": count})
}

func (SearchTracer) Select(mode, id string) {
	logging.Trace("search.select", map[string]interface{}{"mode": mode, "id": id})
}

func (ConfirmTracer) Prompt(message string) {
	logging.Trace("confirm.prompt", map[string]interface{}{"message": message})
}

func (ConfirmTracer) Decision(message string, confirmed bool) {
	logging.Trace("confirm.decision", map[string]interface{}{"message": message, "confirmed": confirmed})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, elapsed time.Duration) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "elapsed": elapsed.String()})
}
