package animation

import (
	"bytes"
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/scheerer/bubblegram-lights/internal/logging"
)

type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { m.stopped.Store(true) }

type manualClock struct {
	mu       sync.Mutex
	now      time.Time
	ticker   *manualTicker
	interval time.Duration
}

func newManualClock() *manualClock {
	return &manualClock{
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ticker: &manualTicker{ch: make(chan time.Time)},
	}
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *manualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *manualClock) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	m.interval = d
	m.mu.Unlock()
	return m.ticker
}

func startRun(t *testing.T, clock *manualClock, tick func()) (context.CancelFunc, <-chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, clock, 100*time.Millisecond, tick)
	}()
	return cancel, done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunTicksOncePerTickerFire(t *testing.T) {
	clock := newManualClock()
	ticked := make(chan struct{})
	var count int

	cancel, done := startRun(t, clock, func() {
		count++
		ticked <- struct{}{}
	})

	for i := 0; i < 3; i++ {
		clock.ticker.ch <- clock.Now()
		<-ticked
	}

	cancel()
	waitDone(t, done)

	assert.Equal(t, 3, count)
	assert.True(t, clock.ticker.stopped.Load())
	assert.Equal(t, 100*time.Millisecond, clock.interval)
}

func TestRunStopsWithoutTicks(t *testing.T) {
	clock := newManualClock()
	cancel, done := startRun(t, clock, func() {
		t.Error("tick should not run")
	})

	cancel()
	waitDone(t, done)
	assert.True(t, clock.ticker.stopped.Load())
}

func TestRunWarnsOnOverrunOncePerWindow(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	logging.SetOutput(zapcore.AddSync(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	})))
	t.Cleanup(func() { logging.SetOutput(os.Stdout) })

	clock := newManualClock()
	ticked := make(chan struct{})
	calls := 0
	cancel, done := startRun(t, clock, func() {
		calls++
		clock.Advance(250 * time.Millisecond)
		if calls == 3 {
			// past the warning window
			clock.Advance(overrunWarnEvery)
		}
		ticked <- struct{}{}
	})

	for i := 0; i < 3; i++ {
		clock.ticker.ch <- clock.Now()
		<-ticked
	}

	cancel()
	waitDone(t, done)

	mu.Lock()
	defer mu.Unlock()
	require.Contains(t, buf.String(), "Tick took longer than TICK_INTERVAL")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Tick took longer than TICK_INTERVAL")))
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func TestRealClock(t *testing.T) {
	ticker := RealClock{}.NewTicker(time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Fatal("real ticker never fired")
	}
	assert.WithinDuration(t, time.Now(), RealClock{}.Now(), time.Second)
}
