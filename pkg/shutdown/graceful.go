package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/job-finder/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful blocks until one of signals arrives, then stops every s in order
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, s ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, st := range s {
		if err := st.Shutdown(ctx); err != nil {
			log.Warn("graceful shutdown completed with error", "err", err)
			continue
		}
	}
	log.Info("graceful shutdown completed")
}
