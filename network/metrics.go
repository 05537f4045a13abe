// SPDX-License-Identifier: MIT

package network

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hashicorp/go-metrics"
)

// Metric keys emitted by Solve.
var (
	MetricSolveCount      = []string{"lvnet", "solve", "count"}
	MetricSolveErrorCount = []string{"lvnet", "solve", "error", "count"}
	MetricSolveIterations = []string{"lvnet", "solve", "iterations"}
	MetricSolveResidual   = []string{"lvnet", "solve", "residual"}
	MetricSolveDuration   = []string{"lvnet", "solve", "duration"}
)

// TelemetryLabel names a label shared by metrics and log records.
type TelemetryLabel string

var (
	LabelError     TelemetryLabel = "error"
	LabelIteration TelemetryLabel = "iteration"
	LabelResidual  TelemetryLabel = "residual"
	LabelUnknowns  TelemetryLabel = "unknowns"
)

// M builds a metrics label.
func (lab TelemetryLabel) M(val string) metrics.Label {
	return metrics.Label{Name: string(lab), Value: val}
}

// L builds a log attribute.
func (lab TelemetryLabel) L(val any) slog.Attr {
	return slog.Attr{
		Key:   string(lab),
		Value: slog.AnyValue(val),
	}
}

// errorClass maps a solve failure onto a short label value.
func errorClass(err error) string {
	switch {
	case errors.Is(err, ErrNonConvergence):
		return "non_convergence"
	case errors.Is(err, ErrSingularJacobian):
		return "singular_jacobian"
	case errors.Is(err, ErrDomain):
		return "domain"
	case errors.Is(err, ErrEquationCount):
		return "equation_count"
	case errors.Is(err, ErrGuessLength):
		return "guess_length"
	case errors.Is(err, ErrUnbalanced):
		return "unbalanced"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
