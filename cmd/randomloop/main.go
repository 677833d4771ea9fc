// Command randomloop soak tests the persistent collections against plain Go
// oracles, and times list appends.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lleo/go-functional-collections/internal/logutil"
)

func main() {
	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logutil.BgLogger().Error("randomloop failed", zap.Error(err))
		_ = logutil.BgLogger().Sync()
		fmt.Fprintln(os.Stderr, "randomloop:", err)
		stop()
		os.Exit(1)
	}
}
