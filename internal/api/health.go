// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// Check pings one dependency.
type Check func(context context.Context) error

// HealthDependencies holds the named checks run by /ready.
type HealthDependencies map[string]Check

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready handlers.
func NewHealthHandlers(dependencies HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: dependencies, logger: logger}
	return handler.liveness, handler.readiness
}

// GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

/*
GET /ready.

Runs every check concurrently. A failing check marks the instance degraded
(503) without cancelling the others.
*/
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	var (
		mu      sync.Mutex
		results = make([]checkResult, 0, len(handler.dependencies))
		ready   = true
	)

	var group errgroup.Group
	for name, check := range handler.dependencies {
		group.Go(func() error {
			result := checkResult{Name: name, IsOK: true}
			if err := check(request.Context()); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
					slog.String("dependency", name),
					slog.Any("error", err),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			results = append(results, result)
			ready = ready && result.IsOK
			return nil
		})
	}
	_ = group.Wait()

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}
