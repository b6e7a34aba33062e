package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// middleware decorates an http.Handler.
type middleware func(http.Handler) http.Handler

// ApplyMiddleware wraps next so that every response is marked uncacheable,
// panics become 500 responses, and each request is access-logged.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Listed outermost first; recovery sits inside the logger so a recovered
	// panic is logged with its 500 status.
	return chain(next,
		accessLog(logger),
		recoverPanics(logger),
		noStore,
	)
}

func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// responseRecorder tracks what a handler wrote so middleware can report it.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rr *responseRecorder) WriteHeader(status int) {
	if rr.status == 0 {
		rr.status = status
	}
	rr.ResponseWriter.WriteHeader(status)
}

func (rr *responseRecorder) Write(p []byte) (int, error) {
	if rr.status == 0 {
		rr.status = http.StatusOK
	}
	n, err := rr.ResponseWriter.Write(p)
	rr.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rr *responseRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}

func (rr *responseRecorder) wroteHeader() bool {
	return rr.status != 0
}

func recorderFor(w http.ResponseWriter) *responseRecorder {
	if rr, ok := w.(*responseRecorder); ok {
		return rr
	}
	return &responseRecorder{ResponseWriter: w}
}

// noStore marks every response as uncacheable. Vault responses carry
// decrypted passwords and fresh passkeys.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}

// accessLog records method, path, status, size and duration. Request and
// response bodies are never logged.
func accessLog(logger *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rr := recorderFor(w)

			next.ServeHTTP(rr, r)

			status := rr.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.LogAttrs(r.Context(), levelForStatus(status), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", rr.bytes),
				slog.Duration("duration", time.Since(start).Round(time.Microsecond)),
			)
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// recoverPanics turns a handler panic into a JSON 500. http.ErrAbortHandler is
// re-raised so net/http can abort the connection. If the handler already
// started its response the status can no longer change, so only the log entry
// is written.
func recoverPanics(logger *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rr := recorderFor(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				logger.LogAttrs(context.WithoutCancel(r.Context()), slog.LevelError, "panic recovered",
					slog.Any("panic", v),
					slog.String("path", r.URL.Path),
				)
				if !rr.wroteHeader() {
					writeError(rr, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rr, r)
		})
	}
}
