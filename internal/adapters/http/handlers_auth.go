package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeValidationError(w, "email and password are required")
		return
	}
	req.IPAddress = readIP(r)
	req.UserAgent = r.UserAgent()

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			remaining := h.service.RemainingLoginAttempts(r.Context(), req.Email, req.IPAddress)
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS",
				fmt.Sprintf("Invalid email or password. %d attempts remaining.", remaining))
			return
		}
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handleAdminValidateSession(w http.ResponseWriter, r *http.Request) {
	var req application.ValidateSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.SessionToken == "" {
		if token, err := bearerTokenFromHeader(r.Header.Get("Authorization")); err == nil {
			req.SessionToken = token
		}
	}
	if req.SessionToken == "" {
		writeValidationError(w, "sessionToken is required")
		return
	}
	req.IPAddress = readIP(r)
	req.UserAgent = r.UserAgent()

	res, err := h.service.ValidateSession(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	var req application.ValidateSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.SessionToken == "" {
		writeValidationError(w, "sessionToken is required")
		return
	}
	if err := h.service.Logout(r.Context(), req.SessionToken); err != nil {
		writeMappedError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "logged out")
}
