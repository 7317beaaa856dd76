package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheerer/bubblegram-lights/internal/color"
	"github.com/scheerer/bubblegram-lights/internal/lights"
)

func newSimSink(t *testing.T) (*Sink, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)

	s := New(screen, lights.IDs[:])
	t.Cleanup(s.Close)
	return s, screen
}

func readLine(screen tcell.Screen, x, y, width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestDisplayPaintsBlock(t *testing.T) {
	s, screen := newSimSink(t)

	s.Display("two", color.Color{Red: 255, Green: 128})

	x0 := originX + 1*(blockWidth+blockGap)
	want := tcell.NewRGBColor(255, 128, 0)
	for _, pt := range [][2]int{{x0, originY}, {x0 + blockWidth - 1, originY + blockHeight - 1}} {
		_, _, style, _ := screen.GetContent(pt[0], pt[1])
		_, bg, _ := style.Decompose()
		assert.Equal(t, want, bg)
	}

	_, _, style, _ := screen.GetContent(x0+blockWidth, originY)
	_, bg, _ := style.Decompose()
	assert.NotEqual(t, want, bg, "gap stays unpainted")

	assert.Equal(t, "two", readLine(screen, x0, originY+blockHeight+1, blockWidth))
	assert.Equal(t, "255 128   0", readLine(screen, x0, originY+blockHeight+2, blockWidth+blockGap))
}

func TestDisplayUnknownLightIsIgnored(t *testing.T) {
	s, _ := newSimSink(t)
	assert.NotPanics(t, func() { s.Display("five", color.Color{}) })
}

func TestDisplayRoles(t *testing.T) {
	s, screen := newSimSink(t)

	s.DisplayRoles(12, 3)
	s.DisplayRoles(1, 3)

	y := originY + blockHeight + 4
	assert.Equal(t, "Primary: 1", readLine(screen, originX, y, 40))
	assert.Equal(t, "Secondary: 3", readLine(screen, originX, y+1, 40))
}

func TestQuitKeysCloseDone(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"q", tcell.KeyRune, 'q'},
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, screen := newSimSink(t)

			screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
			screen.InjectKey(tt.key, tt.r, tcell.ModNone)

			select {
			case <-s.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("Done not closed after quit key")
			}
		})
	}
}
