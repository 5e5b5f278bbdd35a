package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger logs each request with method, path, status code, response
// size, duration and request id.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", statusOf(ww, r)).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// Tiny writes one access line per request in the compact
// "METHOD URL STATUS BYTES - N.NNN ms" format. It is only mounted in
// development.
func Tiny(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info().Msg(TinyLine(r.Method, r.URL.RequestURI(), statusOf(ww, r), ww.BytesWritten(), time.Since(start)))
		})
	}
}

// TinyLine formats a single access log line. A zero size is printed as "-".
func TinyLine(method, uri string, status, size int, d time.Duration) string {
	length := "-"
	if size > 0 {
		length = fmt.Sprint(size)
	}
	ms := float64(d.Microseconds()) / 1000
	return fmt.Sprintf("%s %s %d %s - %.3f ms", method, uri, status, length, ms)
}

// statusOf returns the status written through ww. Nothing is written
// through the wrapper once a WebSocket upgrade hijacks the connection, so
// an upgrade request with no recorded status is reported as 101.
func statusOf(ww chimw.WrapResponseWriter, r *http.Request) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	if isUpgrade(r) {
		return http.StatusSwitchingProtocols
	}
	return http.StatusOK
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket") &&
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}
