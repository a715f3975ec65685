package api

import (
	"net/http"

	"github.com/shaiso/Vitrina/internal/localtime"
)

// ListTimezones возвращает каталог таймзон с текущими смещениями.
// GET /api/v1/timezones
func (h *Handler) ListTimezones(w http.ResponseWriter, r *http.Request) {
	var zones []localtime.Zone
	for zone := range localtime.Zones() {
		zones = append(zones, zone)
	}

	List(w, zones, len(zones))
}
