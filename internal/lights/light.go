package lights

import (
	"github.com/scheerer/bubblegram-lights/internal/color"
	"github.com/scheerer/bubblegram-lights/internal/logging"
)

var logger = logging.New("lights")

// Count is the number of lights in the array.
const Count = 4

// IDs names the lights in array order. Sinks use them to address outputs.
var IDs = [Count]string{"one", "two", "three", "four"}

// Light is a single LED: what it shows now and where it is heading.
type Light struct {
	ID      string
	Current color.Color
	Target  color.Color
}

// New returns the fixed light array, every light black and at target.
func New() []*Light {
	ls := make([]*Light, 0, Count)
	for _, id := range IDs {
		ls = append(ls, &Light{ID: id})
	}
	return ls
}

func (l *Light) AtTarget() bool {
	return l.Current.Equals(l.Target)
}

// Snap moves the light straight to c without a transition.
func (l *Light) Snap(c color.Color) {
	l.Current.CopyFrom(c)
	l.Target.CopyFrom(c)
}
