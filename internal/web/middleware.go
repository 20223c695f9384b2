package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDFrom returns the id assigned by RequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ErrorHandler adapts h to http.HandlerFunc, rendering any returned error
// through the notice page.
func ErrorHandler(rd *Renderer, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			pub := publicError(err)
			if pub == ErrInternalServer {
				// RequestID runs inside this adapter; its id is only visible on the response.
				log.Printf("request %s %s failed [%s]: %v", r.Method, r.URL.Path, w.Header().Get(RequestIDHeader), err)
			}
			rd.Notice(w, pub.Code, pub.Title, pub.Message)
		}
	}
}

// RequestID keeps an incoming X-Request-ID or assigns a new one.
func RequestID(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		return next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	}
}

func TrustProxyMiddleware(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			r.URL.Scheme = proto
		}
		if host := r.Header.Get("X-Forwarded-Host"); host != "" {
			r.Host = host
		}
		return next(w, r)
	}
}

func LoggingMiddleware(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		start := time.Now()
		id := RequestIDFrom(r.Context())
		log.Printf("Started %s %s [%s]", r.Method, r.URL.Path, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		err := next(rec, r)

		status := rec.status
		if err != nil {
			status = GetStatus(err)
		}
		log.Printf("Completed %s %s | Status: %d | Duration: %v [%s]",
			r.Method, r.URL.Path, status, time.Since(start), id)
		return err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
