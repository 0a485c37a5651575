package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// decodeBody decodes exactly one JSON value into dst. Unknown fields and
// trailing data are rejected so malformed clients fail loudly.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

func writeMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		logHTTPOperationError(r.Context(), r.Method+" "+r.URL.Path, status, code, msg, err)
	}
	setRetryAfter(w, err)
	writeError(w, status, code, msg)
}

func writeValidationError(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// readIP prefers the left-most X-Forwarded-For hop, falling back to the
// socket peer address.
func readIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
