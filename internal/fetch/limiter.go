package fetch

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces requests against the listings API so repeated runs
// (cron, watch scripts) stay under the provider's rate limits.
type Limiter struct {
	lim *rate.Limiter
}

func NewLimiter(reqPerSec float64, burst int) *Limiter {
	return &Limiter{lim: rate.NewLimiter(rate.Limit(reqPerSec), burst)}
}

func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.lim.Wait(ctx)
}
