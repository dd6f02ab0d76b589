package service

import (
	"context"
	log "log/slog"
)

// sideEffect runs after the primary write has committed
type sideEffect func(ctx context.Context) error

// runSideEffects executes every stage in order. A failing stage is logged and the
// remaining stages still run; nothing is reported back to the caller because the
// primary action already succeeded.
func runSideEffects(ctx context.Context, action string, stages ...sideEffect) {
	for i, stage := range stages {
		if stage == nil {
			continue
		}
		if err := stage(ctx); err != nil {
			log.WarnContext(ctx, "side effect failed", "action", action, "stage", i, "err", err)
		}
	}
}
