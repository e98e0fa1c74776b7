package proxy

import (
	"context"
	"time"
)

// sweepInterval is how often the background janitor removes expired entries.
const sweepInterval = 60 * time.Second

// RunSweeper periodically removes expired cache entries until ctx is
// cancelled. Runs as one background goroutine alongside the HTTP server.
func (s *Server) RunSweeper(ctx context.Context) {
	s.runSweeper(ctx, sweepInterval)
}

func (s *Server) runSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if swept := s.store.SweepExpired(); swept > 0 {
				s.logger.Debug().Int("count", swept).Msg("Swept expired entries")
			}
		}
	}
}
