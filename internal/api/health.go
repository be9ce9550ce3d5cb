// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/snipbin/internal/platform/respond"
)

// Check is one dependency probed by /ready.
type Check struct {
	Name string
	Ping func(context.Context) error
}

type checkReport struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the /health and /ready handlers.
//
// /health only proves the process is serving. /ready pings every check and
// answers 503 if any of them fails; with no checks (memory storage) it is
// always ready.
func NewHealthHandlers(checks []Check, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		reports := make([]checkReport, 0, len(checks))
		status, code := "ready", http.StatusOK

		for _, check := range checks {
			report := checkReport{Name: check.Name, OK: true}
			if err := check.Ping(request.Context()); err != nil {
				report.OK, report.Error = false, err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				logger.ErrorContext(request.Context(), "readiness_check_failed",
					slog.String("dependency", check.Name),
					slog.Any("error", err),
				)
			}
			reports = append(reports, report)
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
			"status": status,
			"checks": reports,
		}})
	}

	return liveness, readiness
}
