package http

import (
	"net/http"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
)

func (h *Handler) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	var req application.TrackEventRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	req.IPAddress = readIP(r)
	req.UserAgent = r.UserAgent()

	if err := h.service.TrackEvent(r.Context(), req); err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeMessage(w, http.StatusAccepted, "event recorded")
}

func (h *Handler) handleTrackSession(w http.ResponseWriter, r *http.Request) {
	var req application.TrackSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := h.service.TrackSession(r.Context(), req); err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeMessage(w, http.StatusAccepted, "session recorded")
}

func (h *Handler) handleTrackPerformance(w http.ResponseWriter, r *http.Request) {
	var req application.TrackPerformanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := h.service.TrackPerformance(r.Context(), req); err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeMessage(w, http.StatusAccepted, "performance sample recorded")
}

func (h *Handler) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin principal")
		return
	}
	days := parseIntDefault(r.URL.Query().Get("days"), 30)

	res, err := h.service.AnalyticsSummary(r.Context(), admin, days)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}
