package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/khmm12/ping-monitor/internal/common/logging"
)

type cycleUC interface {
	Execute(ctx context.Context) error
}

type cycleTask struct {
	logger *slog.Logger
	uc     cycleUC
}

func newCycleTask(logger *slog.Logger, uc cycleUC) *cycleTask {
	return &cycleTask{
		logger: logger,
		uc:     uc,
	}
}

func (t *cycleTask) Execute(ctx context.Context) error {
	now := time.Now()

	t.logger.DebugContext(ctx, "Run poll cycle")

	err := t.uc.Execute(ctx)
	if errors.Is(err, context.Canceled) {
		t.logger.DebugContext(ctx, "Poll cycle interrupted", slog.Duration("duration", time.Since(now)))
		return err
	}

	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to execute poll cycle", logging.Error(err), slog.Duration("duration", time.Since(now)))
		return err
	}

	t.logger.DebugContext(ctx, "Finished poll cycle", slog.Duration("duration", time.Since(now)))

	return nil
}
