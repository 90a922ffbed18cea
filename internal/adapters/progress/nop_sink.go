package progress

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/crowdfund-cli/internal/domain/config"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// LogSink reports progress through the structured logger. Used when stdout
// carries machine-readable output or nothing is attached to a terminal.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a progress sink backed by log
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.log.DebugContext(ctx, "progress", "stage", event.Stage, "message", event.Message)
}

func (s *LogSink) Info(message string) {
	s.log.Info(message)
}

func (s *LogSink) Error(message string) {
	s.log.Error(message)
}

// NewSink picks the spinner for interactive table output and the log sink
// otherwise
func NewSink(cfg *config.RuntimeConfig, log *slog.Logger) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Output != "table" {
		return NewLogSink(log)
	}
	return NewSpinnerProgressReporter()
}

// Ensure LogSink implements ProgressSink
var _ usecase.ProgressSink = (*LogSink)(nil)
