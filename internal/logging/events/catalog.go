package events

import "github.com/atomicstack/flatpak-manager/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Exec(args []string) {
	logging.Trace("flatpak.exec", map[string]interface{}{"args": args})
}

func (CatalogTracer) Failure(args []string, err error) {
	logging.Trace("flatpak.error", map[string]interface{}{"args": args, "error": err.Error()})
}

func (CatalogTracer) Launch(id string) {
	logging.Trace("flatpak.launch", map[string]interface{}{"id": id})
}

func (CatalogTracer) Stop(instance string) {
	logging.Trace("flatpak.stop", map[string]interface{}{"instance": instance})
}
