package sequencer

import (
	"go.uber.org/zap"

	"github.com/scheerer/bubblegram-lights/internal/color"
	"github.com/scheerer/bubblegram-lights/internal/lights"
	"github.com/scheerer/bubblegram-lights/internal/logging"
)

var logger = logging.New("sequencer")

const (
	saturation = 100
	lightness  = 50
	waveOffset = 90
)

// State is the cycle position plus the two lights driving it. Secondary is
// always half the array away from Primary.
type State struct {
	Stage     Stage
	Primary   int
	Secondary int
}

// Snapshot is a copy of the sequencer taken between ticks.
type Snapshot struct {
	State
	Current []color.Color
	Target  []color.Color
}

// Sequencer owns the light array and walks it through the cycle one tick at
// a time. It is not safe for concurrent use; a single loop should own it.
type Sequencer struct {
	lights  []*lights.Light
	state   State
	rand    RandomSource
	sink    lights.Sink
	maxStep uint8
}

// New returns a sequencer in SetNewPrimary with every light black. A nil
// sink renders nowhere.
func New(rand RandomSource, sink lights.Sink) *Sequencer {
	if sink == nil {
		sink = lights.Nop{}
	}
	return &Sequencer{
		lights:  lights.New(),
		state:   State{Stage: SetNewPrimary},
		rand:    rand,
		sink:    sink,
		maxStep: lights.MaxStep,
	}
}

// Tick runs the current stage's action, advances the stage and renders.
func (s *Sequencer) Tick() {
	stage := s.state.Stage
	ev := EventPending

	switch stage {
	case SetNewPrimary:
		s.setNewPrimary()
	case TransitionToNewPrimary:
		lights.StepAll(s.lights, s.maxStep)
		ev = s.settled()
	case WaveInit:
		s.waveInit()
	case WaveUp:
		ev = s.settled()
		if ev == EventSettled {
			s.waveDown()
		}
		s.waveTransition()
	case WaveDown:
		ev = s.settled()
		if ev == EventSettled {
			logger.Info("Wave complete")
		} else {
			s.waveTransition()
		}
	}

	s.state.Stage = Next(stage, ev)
	if s.state.Stage != stage {
		logger.With(zap.Stringer("from", stage), zap.Stringer("to", s.state.Stage)).Debug("Stage changed")
	}

	s.render()
}

func (s *Sequencer) State() State {
	return s.state
}

func (s *Sequencer) Snapshot() Snapshot {
	snap := Snapshot{
		State:   s.state,
		Current: make([]color.Color, len(s.lights)),
		Target:  make([]color.Color, len(s.lights)),
	}
	for i, l := range s.lights {
		snap.Current[i] = l.Current
		snap.Target[i] = l.Target
	}
	return snap
}

func (s *Sequencer) settled() Event {
	if lights.AllAtTarget(s.lights) {
		return EventSettled
	}
	return EventPending
}

func (s *Sequencer) setNewPrimary() {
	n := len(s.lights)
	s.state.Primary = s.rand.Int(n-1) % n
	s.state.Secondary = opposite(s.state.Primary, n)

	hue := s.rand.Int(359)
	target := color.FromHsl(hue, saturation, lightness)
	for _, l := range s.lights {
		l.Target = target
	}

	logger.With(
		zap.Int("primary", s.state.Primary),
		zap.Int("secondary", s.state.Secondary),
		zap.Int("hue", hue),
		zap.Stringer("target", target)).
		Info("New primary")
}

func (s *Sequencer) waveInit() {
	primaryHue := s.primaryHue()
	targetHue := waveUpHue(primaryHue)
	s.aimSecondary(targetHue)
	s.logWave("Wave going up", primaryHue, targetHue)
}

func (s *Sequencer) waveDown() {
	primaryHue := s.primaryHue()
	targetHue := waveDownHue(primaryHue)
	s.aimSecondary(targetHue)
	s.logWave("Wave going down", primaryHue, targetHue)
}

// waveTransition steps the secondary light and pins every other non
// primary light to the midpoint of primary and secondary.
func (s *Sequencer) waveTransition() {
	secondary := s.lights[s.state.Secondary]
	lights.StepColor(secondary, s.maxStep)

	mid := color.Average(s.lights[s.state.Primary].Current, secondary.Current)
	for i, l := range s.lights {
		if i == s.state.Primary || i == s.state.Secondary {
			continue
		}
		l.Snap(mid)
	}
}

func (s *Sequencer) primaryHue() int {
	return s.lights[s.state.Primary].Current.ToHsl().H
}

func (s *Sequencer) aimSecondary(hue int) {
	s.lights[s.state.Secondary].Target = color.FromHsl(hue, saturation, lightness)
}

func (s *Sequencer) logWave(msg string, primaryHue, targetHue int) {
	logger.With(
		zap.Int("primaryHue", primaryHue),
		zap.Int("targetHue", targetHue),
		zap.Int("secondary", s.state.Secondary),
		zap.Stringer("target", s.lights[s.state.Secondary].Target)).
		Info(msg)
}

func (s *Sequencer) render() {
	for _, l := range s.lights {
		s.sink.Display(l.ID, l.Current)
	}
	if rs, ok := s.sink.(lights.RoleSink); ok {
		rs.DisplayRoles(s.state.Primary, s.state.Secondary)
	}
}

func opposite(i, n int) int {
	return (i + n/2) % n
}

func waveUpHue(primary int) int {
	return (primary + waveOffset) % 360
}

// waveDownHue reflects a negative result as 360 - h rather than adding 360,
// so a primary of 30 aims at 420 (60 once reduced), not 300.
func waveDownHue(primary int) int {
	h := primary - waveOffset
	if h < 0 {
		h = 360 - h
	}
	return h
}
