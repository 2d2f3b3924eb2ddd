package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunJanitor deletes sessions older than ttl every interval until ctx is
// done. A non-positive ttl disables it.
func RunJanitor(ctx context.Context, st Store, ttl, interval time.Duration, now func() time.Time) {
	if ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = ttl / 4
	}
	if now == nil {
		now = time.Now
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := st.DeleteStartedBefore(ctx, now().Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("session janitor")
				continue
			}
			if n > 0 {
				log.Info().Int("expired", n).Msg("session janitor")
			}
		}
	}
}
