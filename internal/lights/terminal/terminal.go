package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/scheerer/bubblegram-lights/internal/color"
	"github.com/scheerer/bubblegram-lights/internal/lights"
	"github.com/scheerer/bubblegram-lights/internal/logging"
)

var logger = logging.New("terminal")

const (
	blockWidth  = 10
	blockHeight = 4
	blockGap    = 3
	originX     = 2
	originY     = 1
)

// Sink draws each light as a colored block in a terminal.
type Sink struct {
	screen tcell.Screen
	slots  map[string]int

	mu   sync.Mutex
	done chan struct{}
	once sync.Once
}

// New takes ownership of an initialised screen and lays the lights out left
// to right in ids order.
func New(screen tcell.Screen, ids []string) *Sink {
	slots := make(map[string]int, len(ids))
	for i, id := range ids {
		slots[id] = i
	}
	screen.HideCursor()
	screen.Clear()

	s := &Sink{
		screen: screen,
		slots:  slots,
		done:   make(chan struct{}),
	}
	go s.pollEvents()
	return s
}

// Open initialises the real terminal.
func Open(ids []string) (*Sink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	return New(screen, ids), nil
}

// Done is closed once the user asks to quit.
func (s *Sink) Done() <-chan struct{} {
	return s.done
}

func (s *Sink) Close() {
	s.quit()
	s.screen.Fini()
}

func (s *Sink) quit() {
	s.once.Do(func() { close(s.done) })
}

func (s *Sink) Display(id string, c color.Color) {
	slot, ok := s.slots[id]
	if !ok {
		logger.With(zap.String("light", id)).Warn("No terminal slot for light")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	x0 := originX + slot*(blockWidth+blockGap)
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.Red), int32(c.Green), int32(c.Blue)))
	for y := originY; y < originY+blockHeight; y++ {
		for x := x0; x < x0+blockWidth; x++ {
			s.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	s.drawText(x0, originY+blockHeight+1, blockWidth+blockGap, id)
	s.drawText(x0, originY+blockHeight+2, blockWidth+blockGap, fmt.Sprintf("%3d %3d %3d", c.Red, c.Green, c.Blue))
}

// DisplayRoles is the last call of every tick, so it also flushes the
// frame to the terminal.
func (s *Sink) DisplayRoles(primary, secondary int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	y := originY + blockHeight + 4
	s.drawText(originX, y, 40, fmt.Sprintf("Primary: %d", primary))
	s.drawText(originX, y+1, 40, fmt.Sprintf("Secondary: %d", secondary))
	s.drawText(originX, y+3, 40, "q / Esc to quit")
	s.screen.Show()
}

// drawText writes text at (x, y) and blanks the rest of width so shorter
// values do not leave stale characters behind.
func (s *Sink) drawText(x, y, width int, text string) {
	i := 0
	for _, r := range text {
		if i >= width {
			break
		}
		s.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
		i++
	}
	for ; i < width; i++ {
		s.screen.SetContent(x+i, y, ' ', nil, tcell.StyleDefault)
	}
}

func (s *Sink) pollEvents() {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.mu.Lock()
			s.screen.Sync()
			s.mu.Unlock()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				logger.Info("Quit requested from terminal")
				s.quit()
				return
			}
		}
	}
}

var (
	_ lights.Sink     = (*Sink)(nil)
	_ lights.RoleSink = (*Sink)(nil)
)
