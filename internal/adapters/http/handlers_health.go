package http

import "net/http"

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok", "cache": "ok"}
	healthy := true

	if h.dbPinger != nil {
		if err := h.dbPinger(); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
	}
	if h.cachePinger != nil {
		if err := h.cachePinger(); err != nil {
			checks["cache"] = err.Error()
			healthy = false
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeSuccess(w, status, checks)
}
