// Copyright (c) 2026 MangroveNet. All rights reserved.

package api

import (
	"log/slog"
	"net/http"

	"github.com/mangrovenet/mangrovenet/internal/platform/respond"
)

// ProbeTarget is one dependency the readiness probe verifies. Check must be
// cheap: orchestrators call /ready on a short interval.
type ProbeTarget struct {
	Name  string
	Check func() error
}

type healthHandler struct {
	targets []ProbeTarget
	logger  *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs. The
// liveness probe never inspects dependencies; readiness runs every registered
// target and reports 503 if any of them fail.
func NewHealthHandlers(logger *slog.Logger, targets ...ProbeTarget) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{targets: targets, logger: logger}
	return handler.liveness, handler.readiness
}

func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type probeResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]probeResult, 0, len(handler.targets))
	ready := true

	for _, target := range handler.targets {
		result := probeResult{Name: target.Name, IsOK: true}
		if err := target.Check(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			ready = false
			handler.logger.Error("readiness_check_failed",
				slog.String("dependency", target.Name),
				slog.Any("error", err))
		}
		results = append(results, result)
	}

	status, httpStatus := "ready", http.StatusOK
	if !ready {
		status, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		"status": status,
		"checks": results,
	})
}
