package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/scheerer/bubblegram-lights/internal/animation"
	"github.com/scheerer/bubblegram-lights/internal/config"
	"github.com/scheerer/bubblegram-lights/internal/lights"
	"github.com/scheerer/bubblegram-lights/internal/lights/lifx"
	"github.com/scheerer/bubblegram-lights/internal/lights/terminal"
	"github.com/scheerer/bubblegram-lights/internal/logging"
	"github.com/scheerer/bubblegram-lights/internal/sequencer"
)

// defaultTerminalLogFile keeps log lines off the screen the terminal sink
// is drawing on.
const defaultTerminalLogFile = "bubblegram-lights.log"

var logger = logging.New("main")

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to load configuration")
	}

	logging.SetLevel(cfg.LogLevel)
	if cfg.LogFile == "" && cfg.Has(config.LightTypeTerminal) {
		cfg.LogFile = defaultTerminalLogFile
	}
	if cfg.LogFile != "" {
		restore, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			logger.With(zap.String("file", cfg.LogFile), zap.Error(err)).Fatal("Failed to open log file")
		}
		defer restore()
	}

	logger.With(zap.Any("config", cfg)).Info("Starting bubblegram lights")

	logger.Info("Adjust TICK_INTERVAL to change how often the lights update.")
	logger.Info("Adjust LIGHT_TYPE to choose outputs. Valid values are: [TERMINAL, LIFX, LOG, NONE], comma separated.")
	logger.Info("Adjust LIFX_LABELS to map the four lights onto LIFX bulb labels.")
	logger.Info("Adjust MIN_BRIGHTNESS and MAX_BRIGHTNESS between 0 and 1 for LIFX bulbs.")
	logger.Info("Set RANDOM_SEED to replay the same animation.")
	logger.Info("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := openOutputs(ctx, cfg)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to open light outputs")
	}

	seq := sequencer.New(sequencer.NewRandom(cfg.RandomSeed), out.sink)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		animation.Run(ctx, animation.RealClock{}, cfg.TickInterval, seq.Tick)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-shutdown:
	case <-out.quit:
	}

	logger.Info("Shutting down")
	cancel()
	<-stopped
	out.close()
}

type outputs struct {
	sink    lights.Multi
	quit    <-chan struct{}
	closers []func()
}

func (o outputs) close() {
	for _, c := range o.closers {
		c()
	}
}

func openOutputs(ctx context.Context, cfg config.Config) (outputs, error) {
	var o outputs
	ids := lights.IDs[:]

	for _, lightType := range cfg.LightTypes {
		switch lightType {
		case config.LightTypeTerminal:
			t, err := terminal.Open(ids)
			if err != nil {
				o.close()
				return outputs{}, err
			}
			o.sink = append(o.sink, t)
			o.quit = t.Done()
			o.closers = append(o.closers, t.Close)
		case config.LightTypeLifx:
			l, err := lifx.NewLifx(ctx, ids, lifx.Config{
				Labels:        cfg.LifxLabels,
				MinBrightness: cfg.MinBrightness,
				MaxBrightness: cfg.MaxBrightness,
				Transition:    cfg.LifxTransition,
			})
			if err != nil {
				o.close()
				return outputs{}, err
			}
			o.sink = append(o.sink, l)
			o.closers = append(o.closers, func() {
				if err := l.Close(); err != nil {
					logger.With(zap.Error(err)).Warn("Failed to close LIFX client")
				}
			})
		case config.LightTypeLog:
			o.sink = append(o.sink, lights.NewLogSink())
		case config.LightTypeNone:
			o.sink = append(o.sink, lights.Nop{})
		}
	}

	return o, nil
}
