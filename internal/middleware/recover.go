package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRecoverer wraps chi's Recoverer so a panic in a downstream handler is
// logged through log, with its stack, and answered with the JSON error
// envelope instead of a bare 500. http.ErrAbortHandler is still re-panicked
// by chi so net/http can abort the connection.
func NewRecoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		recoverer := chimiddleware.Recoverer(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pw := &panicWriter{ResponseWriter: w}
			entry := &panicEntry{log: log, r: r, w: pw}
			recoverer.ServeHTTP(pw, chimiddleware.WithLogEntry(r, entry))
		})
	}
}

// panicEntry is the chi LogEntry the Recoverer reports panics to.
type panicEntry struct {
	log *slog.Logger
	r   *http.Request
	w   *panicWriter
}

func (e *panicEntry) Write(int, int, http.Header, time.Duration, interface{}) {}

func (e *panicEntry) Panic(v interface{}, stack []byte) {
	e.log.ErrorContext(e.r.Context(), "panic recovered",
		"panic", v,
		"path", e.r.URL.Path,
		"request_id", chimiddleware.GetReqID(e.r.Context()),
		"stack", string(stack),
	)
	if e.r.Header.Get("Connection") == "Upgrade" {
		return
	}
	writeError(e.w.ResponseWriter, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	e.w.sealed = true
}

// panicWriter drops the status chi's Recoverer writes after the envelope
// has already gone out.
type panicWriter struct {
	http.ResponseWriter
	sealed bool
}

func (w *panicWriter) WriteHeader(code int) {
	if w.sealed {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *panicWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
