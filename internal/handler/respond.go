package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/talentrail/internal/domain"
)

// errBadRequest marks a body that could not be decoded as JSON.
var errBadRequest = errors.New("bad request")

// errTooLarge marks a body cut off by the body-size limit.
var errTooLarge = errors.New("request body too large")

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// decodeJSON decodes the request body into v. Unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fmt.Errorf("%w: limit is %d bytes", errTooLarge, tooLarge.Limit)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: request body is required", errBadRequest)
	default:
		return fmt.Errorf("%w: malformed JSON body: %v", errBadRequest, err)
	}
}

// pathID parses the named URL parameter as a positive integer id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrValidation, name, raw)
	}
	return id, nil
}

// matchBodyID rejects an update whose body names a different id than the path.
func matchBodyID(pathID int64, bodyID *int64) error {
	if bodyID != nil && *bodyID != pathID {
		return fmt.Errorf("%w: body id %d does not match path id %d", domain.ErrValidation, *bodyID, pathID)
	}
	return nil
}
