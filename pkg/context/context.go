package context

import (
	"sigmazk/pkg/config"
	"sigmazk/pkg/metrics"
)

// OperationContext holds request-scoped data for a single protocol operation.
// It is passed from the CLI entry point down to batch verification.
type OperationContext struct {
	Config   *config.Config    // The configuration
	Recorder *metrics.Recorder // The metrics recorder for the current run.
}

// NewContext creates a new OperationContext.
func NewContext(config *config.Config, rec *metrics.Recorder) *OperationContext {
	return &OperationContext{
		Config:   config,
		Recorder: rec,
	}
}
