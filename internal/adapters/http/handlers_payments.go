package http

import (
	"net/http"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
)

func (h *Handler) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req application.CreateCheckoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	res, err := h.service.CreateCheckout(r.Context(), req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handlePaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var req application.PaymentSuccessRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.SessionID == "" {
		writeValidationError(w, "session_id is required")
		return
	}

	res, err := h.service.HandlePaymentSuccess(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handleGetProductDownload(w http.ResponseWriter, r *http.Request) {
	var req application.DownloadRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.DownloadToken == "" {
		writeValidationError(w, "downloadToken is required")
		return
	}

	res, err := h.service.ResolveDownload(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handleSendDeliveryEmail(w http.ResponseWriter, r *http.Request) {
	var req application.DeliveryEmailRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	res, err := h.service.SendDeliveryEmail(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}
