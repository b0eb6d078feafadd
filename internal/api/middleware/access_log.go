package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет строку лога на каждый запрос
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			requestID, _ := GetRequestID(r.Context())
			logger.Info("HTTP %s %s - status=%d bytes=%d duration=%s request_id=%s",
				r.Method, r.URL.Path, sw.status, sw.bytes, time.Since(start), requestID)
		})
	}
}
