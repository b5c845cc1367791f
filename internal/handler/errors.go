package handler

import (
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/dto"
)

// errorMapping pairs a sentinel with its HTTP status and error code. Order
// matters: the first sentinel found in the chain wins.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{errTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large"},
	{errBadRequest, http.StatusBadRequest, "bad_request"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrExternalService, http.StatusBadGateway, "external_service_error"},
	{domain.ErrStorage, http.StatusInternalServerError, "storage_error"},
}

func errorBody(code, message string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorDetail{Code: code, Message: message}}
}

// writeError maps err onto a status code and error body. Server-side
// failures are logged with the full chain and answered with a generic
// message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	var sentinel error
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			status, code, sentinel = m.status, m.code, m.sentinel
			break
		}
	}

	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeJSON(w, status, errorBody(code, "an unexpected error occurred"))
		return
	}
	if status == http.StatusBadGateway {
		s.log.WarnContext(r.Context(), "upstream failure",
			"error", err,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	}

	writeJSON(w, status, errorBody(code, clientMessage(err, sentinel)))
}

// clientMessage extracts the detail that follows the sentinel text, e.g.
// "service.TripService.Create: validation error: name is required" becomes
// "name is required". Without a detail the sentinel text itself is used.
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	if sentinel == nil {
		return msg
	}
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
