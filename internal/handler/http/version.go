package http

import "net/http"

// getServerVersion reports the running build's version as plain text. The
// value is pinned at startup, so the endpoint needs no dispatch pipeline.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.services.AppInfoService.GetAppVersion(r.Context())))
}
