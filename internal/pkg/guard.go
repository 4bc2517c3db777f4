package pkg

import (
	"log/slog"
	"runtime/debug"
)

// Guard runs fn and recovers from any panic, logging it with a stack trace.
// It wraps fire-and-forget callbacks (background revalidation, refresh
// notifications) so a panicking callback cannot take the process down.
func Guard(logger *slog.Logger, name string, fn func()) {
	if logger == nil {
		logger = slog.Default()
	}

	defer func() {
		if err := recover(); err != nil {
			logger.Error("panic recovered",
				slog.String("op", name),
				slog.Any("panic", err),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}
