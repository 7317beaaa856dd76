package lifx

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/pdf/golifx"
	"github.com/pdf/golifx/common"
	"github.com/pdf/golifx/protocol"
	"go.uber.org/zap"

	"github.com/scheerer/bubblegram-lights/internal/color"
	"github.com/scheerer/bubblegram-lights/internal/lights"
	"github.com/scheerer/bubblegram-lights/internal/logging"
)

var logger = logging.New("lifx")

const (
	discoveryInterval = 15 * time.Second
	kelvin            = 3500
)

// bulb is the part of common.Light the sink drives.
type bulb interface {
	SetColor(color common.Color, duration time.Duration) error
}

type lookupFunc func(label string) (bulb, error)

type Config struct {
	// Labels maps light ids, by position, to LIFX bulb labels. Missing
	// entries fall back to the light id.
	Labels        []string
	MinBrightness float64
	MaxBrightness float64
	Transition    time.Duration
}

// LifxLights shows each light on the LIFX bulb with the matching label.
type LifxLights struct {
	config Config
	client *golifx.Client
	lookup lookupFunc
	labels map[string]string

	mu    sync.RWMutex
	bulbs map[string]bulb
	last  map[string]color.Color
}

// NewLifx connects a LAN client and starts discovering bulbs in the
// background. Lights show nothing until their bulb is found.
func NewLifx(ctx context.Context, ids []string, config Config) (*LifxLights, error) {
	client, err := golifx.NewClient(&protocol.V2{})
	if err != nil {
		return nil, fmt.Errorf("create lifx client: %w", err)
	}
	client.SetDiscoveryInterval(discoveryInterval)

	l := newLifxLights(ids, config, func(label string) (bulb, error) {
		return client.GetLightByLabel(label)
	})
	l.client = client
	go l.Start(ctx)
	return l, nil
}

func newLifxLights(ids []string, config Config, lookup lookupFunc) *LifxLights {
	labels := make(map[string]string, len(ids))
	for i, id := range ids {
		labels[id] = id
		if i < len(config.Labels) && config.Labels[i] != "" {
			labels[id] = config.Labels[i]
		}
	}
	return &LifxLights{
		config: config,
		lookup: lookup,
		labels: labels,
		bulbs:  make(map[string]bulb),
		last:   make(map[string]color.Color),
	}
}

// Start resolves bulbs now and then every discovery interval until ctx is
// done.
func (l *LifxLights) Start(ctx context.Context) {
	ticker := time.NewTicker(discoveryInterval)
	defer ticker.Stop()

	l.discover(ctx)

	for {
		select {
		case <-ticker.C:
			l.discover(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (l *LifxLights) discover(ctx context.Context) {
	for id, label := range l.labels {
		if ctx.Err() != nil {
			return
		}

		l.mu.RLock()
		_, found := l.bulbs[id]
		l.mu.RUnlock()
		if found {
			continue
		}

		b, err := l.lookup(label)
		if err != nil || b == nil {
			logger.With(zap.String("light", id), zap.String("label", label), zap.Error(err)).Warn("LIFX bulb not found")
			continue
		}

		logger.With(zap.String("light", id), zap.String("label", label)).Info("Found LIFX bulb")
		l.mu.Lock()
		l.bulbs[id] = b
		l.mu.Unlock()
	}
}

// BulbCount is how many lights currently have a bulb.
func (l *LifxLights) BulbCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bulbs)
}

// Display sends c to the light's bulb unless the bulb already shows it.
func (l *LifxLights) Display(id string, c color.Color) {
	l.mu.RLock()
	b, found := l.bulbs[id]
	last, sent := l.last[id]
	l.mu.RUnlock()

	if !found || (sent && last.Equals(c)) {
		return
	}

	lifxColor := adjustColor(newLifxColor(c), l.config)
	logger.With(zap.String("light", id),
		zap.Stringer("color", c),
		zap.Any("lifxColor", lifxColor)).
		Debug("Setting LIFX bulb color")

	if err := b.SetColor(lifxColor, l.config.Transition); err != nil {
		logger.With(zap.String("light", id), zap.Error(err)).Warn("Failed to set LIFX bulb color - dropping until rediscovered")
		l.mu.Lock()
		delete(l.bulbs, id)
		delete(l.last, id)
		l.mu.Unlock()
		return
	}

	l.mu.Lock()
	l.last[id] = c
	l.mu.Unlock()
}

func (l *LifxLights) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}

func newLifxColor(c color.Color) common.Color {
	hue, saturation, brightness := c.ToHsb()

	return common.Color{
		Hue:        hue,
		Saturation: saturation,
		Brightness: brightness,
		Kelvin:     kelvin,
	}
}

func adjustColor(c common.Color, config Config) common.Color {
	blackThreshold := 0.015 * 0xFFFF
	if c.Brightness <= uint16(blackThreshold) && c.Saturation <= uint16(blackThreshold) {
		// blackish color - turn off the light
		return common.Color{Kelvin: kelvin}
	}

	c.Brightness = uint16(math.Min(config.MaxBrightness*0xFFFF, math.Max(config.MinBrightness*0xFFFF, float64(c.Brightness))))

	return c
}

var _ lights.Sink = (*LifxLights)(nil)
