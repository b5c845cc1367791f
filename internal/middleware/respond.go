package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/talentrail/internal/dto"
)

// writeError writes the API's standard error envelope. Middleware rejects
// requests with the same body shape the handlers use.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: dto.ErrorDetail{Code: code, Message: msg}})
}
