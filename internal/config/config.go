package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"go.uber.org/zap/zapcore"
)

// Light types accepted in LIGHT_TYPE.
const (
	LightTypeTerminal = "TERMINAL"
	LightTypeLifx     = "LIFX"
	LightTypeLog      = "LOG"
	LightTypeNone     = "NONE"
)

type Config struct {
	TickInterval   time.Duration `env:"TICK_INTERVAL" envDefault:"100ms"`
	LightTypes     []string      `env:"LIGHT_TYPE" envDefault:"TERMINAL" envSeparator:","`
	LifxLabels     []string      `env:"LIFX_LABELS" envDefault:"one,two,three,four" envSeparator:","`
	LifxTransition time.Duration `env:"LIFX_TRANSITION" envDefault:"50ms"`
	MaxBrightness  float64       `env:"MAX_BRIGHTNESS" envDefault:"0.65"`
	MinBrightness  float64       `env:"MIN_BRIGHTNESS" envDefault:"0"`
	RandomSeed     uint64        `env:"RANDOM_SEED" envDefault:"0"`
	LogLevel       zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string        `env:"LOG_FILE"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	for i, t := range c.LightTypes {
		c.LightTypes[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	for i, l := range c.LifxLabels {
		c.LifxLabels[i] = strings.TrimSpace(l)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("TICK_INTERVAL must be positive, got %v", c.TickInterval))
	}
	if len(c.LightTypes) == 0 {
		errs = append(errs, errors.New("LIGHT_TYPE must name at least one light type"))
	}
	for _, t := range c.LightTypes {
		switch t {
		case LightTypeTerminal, LightTypeLifx, LightTypeLog, LightTypeNone:
		default:
			errs = append(errs, fmt.Errorf("unknown light type: %q", t))
		}
	}
	if c.MinBrightness < 0 || c.MinBrightness > 1 {
		errs = append(errs, fmt.Errorf("MIN_BRIGHTNESS must be between 0 and 1, got %v", c.MinBrightness))
	}
	if c.MaxBrightness < 0 || c.MaxBrightness > 1 {
		errs = append(errs, fmt.Errorf("MAX_BRIGHTNESS must be between 0 and 1, got %v", c.MaxBrightness))
	}
	if c.MinBrightness > c.MaxBrightness {
		errs = append(errs, fmt.Errorf("MIN_BRIGHTNESS %v is above MAX_BRIGHTNESS %v", c.MinBrightness, c.MaxBrightness))
	}
	return errors.Join(errs...)
}

// Has reports whether lightType was requested.
func (c Config) Has(lightType string) bool {
	for _, t := range c.LightTypes {
		if t == lightType {
			return true
		}
	}
	return false
}
