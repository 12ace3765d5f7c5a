// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package api contains the health check handlers for liveness and readiness.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/citely/internal/platform/constants"
	"github.com/taibuivan/citely/internal/platform/ctxutil"
	"github.com/taibuivan/citely/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers.
type HealthDependencies struct {
	// CheckCitationService pings the remote citation service.
	CheckCitationService func(ctx context.Context) bool
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

type livenessOutput struct {
	ClientStatus          string `json:"client_status"`
	CitationServiceStatus string `json:"citation_service_status"`
}

// liveness handles GET /health. The shell itself is always healthy; the
// citation service status is informational.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	status := "disconnected"
	if handler.citationServiceUp(request.Context()) {
		status = "connected"
	}

	respond.OK(writer, livenessOutput{
		ClientStatus:          "healthy",
		CitationServiceStatus: status,
	})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readiness handles GET /ready.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 1)
	isSystemReady := true

	if handler.dependencies.CheckCitationService != nil {
		result := checkResult{Name: "citation_service", IsOK: true}
		if !handler.dependencies.CheckCitationService(request.Context()) {
			result.IsOK = false
			result.Error = "citation service unreachable"
			isSystemReady = false
			ctxutil.LoggerOr(request.Context(), handler.logger).WarnContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", "citation_service"),
			)
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK
	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	})
}

func (handler *healthHandler) citationServiceUp(ctx context.Context) bool {
	if handler.dependencies.CheckCitationService == nil {
		return false
	}
	return handler.dependencies.CheckCitationService(ctx)
}
