package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
)

func (h *Handler) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req application.SubmitReviewRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	res, err := h.service.SubmitReview(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) handleListPublicReviews(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

	res, err := h.service.ListPublicReviews(r.Context(), limit, offset)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handleModerationListReviews(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin principal")
		return
	}
	statusFilter := r.URL.Query().Get("status")
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

	res, err := h.service.ListReviewsForModeration(r.Context(), admin, statusFilter, limit, offset)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handleSetReviewStatus(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin principal")
		return
	}
	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		writeValidationError(w, "invalid review id")
		return
	}
	var req application.SetReviewStatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	res, err := h.service.SetReviewStatus(r.Context(), admin, reviewID, req.Status)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handleBulkReviewStatus(w http.ResponseWriter, r *http.Request) {
	admin, ok := adminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin principal")
		return
	}
	var req application.BulkReviewStatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		writeValidationError(w, "ids must not be empty")
		return
	}

	updated, err := h.service.BulkSetReviewStatus(r.Context(), admin, req.IDs, req.Status)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int64{"updated": updated})
}
