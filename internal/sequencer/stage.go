package sequencer

// Stage is a step of the animation cycle.
type Stage int

const (
	// SetNewPrimary picks a primary light and a fresh hue for every light.
	SetNewPrimary Stage = iota
	// TransitionToNewPrimary fades every light toward the new hue.
	TransitionToNewPrimary
	// WaveInit aims the secondary light 90 degrees above the primary hue.
	WaveInit
	// WaveUp moves the secondary light up the wave.
	WaveUp
	// WaveDown moves the secondary light back down the wave.
	WaveDown
)

func (s Stage) String() string {
	switch s {
	case SetNewPrimary:
		return "set_new_primary"
	case TransitionToNewPrimary:
		return "transition_to_new_primary"
	case WaveInit:
		return "wave_init"
	case WaveUp:
		return "wave_up"
	case WaveDown:
		return "wave_down"
	default:
		return "unknown"
	}
}

// Event is what the stage's action observed about the lights.
type Event int

const (
	// EventPending means at least one light has not reached its target.
	EventPending Event = iota
	// EventSettled means every light is at its target.
	EventSettled
)

func (e Event) String() string {
	switch e {
	case EventPending:
		return "pending"
	case EventSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Next returns the stage that follows s after ev. SetNewPrimary and
// WaveInit advance unconditionally; the transition stages wait for
// EventSettled.
func Next(s Stage, ev Event) Stage {
	switch s {
	case SetNewPrimary:
		return TransitionToNewPrimary
	case WaveInit:
		return WaveUp
	case TransitionToNewPrimary:
		if ev == EventSettled {
			return WaveInit
		}
	case WaveUp:
		if ev == EventSettled {
			return WaveDown
		}
	case WaveDown:
		if ev == EventSettled {
			return SetNewPrimary
		}
	default:
		return SetNewPrimary
	}
	return s
}
