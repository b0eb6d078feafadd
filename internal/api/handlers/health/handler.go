package health

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const checkTimeout = 2 * time.Second

type Handler struct {
	checks []ReadyCheck
	logger Logger
}

func NewHandler(logger Logger, checks ...ReadyCheck) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Live GET /healthz
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// Ready GET /readyz. 503 со списком упавших проверок.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	var failures []string
	for _, check := range h.checks {
		if check.Check == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := check.Check(ctx)
		cancel()

		if err != nil {
			name := check.Name
			if name == "" {
				name = "dependency"
			}
			failures = append(failures, name+": "+err.Error())
		}
	}

	if len(failures) > 0 {
		h.logger.Warn("GET /readyz - Not ready: %s", strings.Join(failures, "; "))
		writeText(w, http.StatusServiceUnavailable, strings.Join(failures, "; "))
		return
	}

	writeText(w, http.StatusOK, "ok")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
