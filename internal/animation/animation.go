package animation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/scheerer/bubblegram-lights/internal/logging"
)

var logger = logging.New("animation")

// overrunWarnEvery limits how often a slow tick is reported.
const overrunWarnEvery = 10 * time.Second

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers and reads the time. Tests swap in a manual clock so
// ticks can be driven without waiting.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r realTicker) Stop() {
	r.t.Stop()
}

// Run calls tick once per interval until ctx is done. Ticks run on the
// calling goroutine and never overlap; a tick that outlasts the interval
// delays the next one instead of queueing it.
func Run(ctx context.Context, clock Clock, interval time.Duration, tick func()) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	logger.With(zap.Stringer("interval", interval)).Info("Animation loop starting")

	var lastWarning time.Time
	var ticks uint64
	for {
		select {
		case <-ctx.Done():
			logger.With(zap.Uint64("ticks", ticks)).Info("Animation loop stopped")
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				// cancelled while waiting on the ticker
				continue
			}

			start := clock.Now()
			tick()
			ticks++
			tickDuration := clock.Now().Sub(start)

			if tickDuration > interval && clock.Now().Sub(lastWarning) > overrunWarnEvery {
				logger.With(
					zap.Stringer("tickDuration", tickDuration),
					zap.Stringer("interval", interval)).
					Warn("Tick took longer than TICK_INTERVAL. Consider increasing TICK_INTERVAL or using fewer sinks.")
				lastWarning = clock.Now()
			}
		}
	}
}
