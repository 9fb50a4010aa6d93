package ctrlc

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"
)

// HandleCtrlC cancels on the first interrupt. If the program is still
// running after grace, the process exits with status 1.
func HandleCtrlC(cancel context.CancelFunc, grace time.Duration) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	logger := slog.Default().With("area", "ctrlc")
	go func() {
		<-c
		logger.Info("ctrl-c", "grace", grace)
		cancel()
		time.Sleep(grace)
		os.Exit(1)
	}()
}
