package lights

import (
	"go.uber.org/zap"

	"github.com/scheerer/bubblegram-lights/internal/color"
)

// Sink pushes a light's color to whatever displays it. Implementations must
// not block the tick for long and handle their own failures.
type Sink interface {
	Display(id string, c color.Color)
}

// RoleSink is implemented by sinks that can also show which lights are
// primary and secondary.
type RoleSink interface {
	DisplayRoles(primary, secondary int)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Display(string, color.Color) {}

// Multi fans each call out to every sink in order.
type Multi []Sink

func (m Multi) Display(id string, c color.Color) {
	for _, s := range m {
		s.Display(id, c)
	}
}

func (m Multi) DisplayRoles(primary, secondary int) {
	for _, s := range m {
		if rs, ok := s.(RoleSink); ok {
			rs.DisplayRoles(primary, secondary)
		}
	}
}

// LogSink writes colors to the lights logger at debug level and role
// changes at info.
type LogSink struct {
	primary, secondary int
	seen               bool
}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Display(id string, c color.Color) {
	logger.With(zap.String("light", id), zap.Stringer("color", c)).Debug("Render")
}

func (s *LogSink) DisplayRoles(primary, secondary int) {
	if s.seen && s.primary == primary && s.secondary == secondary {
		return
	}
	s.primary, s.secondary, s.seen = primary, secondary, true
	logger.With(zap.Int("primary", primary), zap.Int("secondary", secondary)).Info("Light roles changed")
}

var (
	_ Sink     = Nop{}
	_ Sink     = Multi(nil)
	_ RoleSink = Multi(nil)
	_ Sink     = (*LogSink)(nil)
	_ RoleSink = (*LogSink)(nil)
)
