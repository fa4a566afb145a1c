package tui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coordinator-insight/backend/internal/toggle"
)

const (
	// toggleRow is the screen line the perspective toggle is drawn on.
	toggleRow = 2
	trackLeft = 2
	// mousePointer is the only pointer a terminal reports.
	mousePointer = 1
	animFrame    = 25 * time.Millisecond

	minThumbWidth = 18
	maxThumbWidth = 28
)

var optionLabels = map[toggle.Option]string{
	toggle.OptionA: "Career Path",
	toggle.OptionB: "Patient Journey",
}

type animFrameMsg struct{}

// slider draws a toggle.Toggle as a two-cell-group track and feeds it mouse
// gestures. Positions are in terminal cells.
type slider struct {
	toggle *toggle.Toggle
	width  int
	thumbX float64

	pressed bool
	pressOn toggle.Option
	pressOK bool
}

func newSlider(t *toggle.Toggle, width int) *slider {
	s := &slider{toggle: t}
	s.resize(width)
	s.thumbX = s.target()
	return s
}

// resize fits the thumb to a quarter of the screen.
func (s *slider) resize(screenWidth int) {
	w := screenWidth / 4
	if w < minThumbWidth {
		w = minThumbWidth
	}
	if w > maxThumbWidth {
		w = maxThumbWidth
	}
	s.width = w
	s.toggle.SetTrackWidth(float64(w))
	s.thumbX = s.target()
}

func (s *slider) target() float64 {
	pos := s.toggle.Position()
	return pos.BaseFraction*float64(s.width) + pos.OffsetPx
}

func (s *slider) optionAt(x, y int) (toggle.Option, bool) {
	rel := x - trackLeft
	if y != toggleRow || rel < 0 || rel >= 2*s.width {
		return toggle.OptionA, false
	}
	if rel < s.width {
		return toggle.OptionA, true
	}
	return toggle.OptionB, true
}

// handleMouse translates terminal mouse events into pointer gestures. A press
// and release on the same label without a committed drag counts as a click.
func (s *slider) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		opt, ok := s.optionAt(msg.X, msg.Y)
		if !ok {
			return nil
		}
		s.pressed, s.pressOn, s.pressOK = true, opt, true
		s.toggle.PointerDown(mousePointer, float64(msg.X))
	case tea.MouseActionMotion:
		if !s.pressed {
			return nil
		}
		s.toggle.PointerMove(mousePointer, float64(msg.X))
		s.thumbX = s.target()
		return nil
	case tea.MouseActionRelease:
		if !s.pressed {
			return nil
		}
		s.pressed = false
		committed := s.toggle.PointerUp(mousePointer)
		if opt, ok := s.optionAt(msg.X, msg.Y); !committed && ok && s.pressOK && opt == s.pressOn {
			s.toggle.ClickSelect(opt)
		}
	default:
		return nil
	}
	return s.animate()
}

// selectOption is the keyboard path; it bypasses the drag threshold.
func (s *slider) selectOption(opt toggle.Option) tea.Cmd {
	if !s.toggle.ClickSelect(opt) {
		return nil
	}
	return s.animate()
}

func (s *slider) animate() tea.Cmd {
	if s.thumbX == s.target() {
		return nil
	}
	return tea.Tick(animFrame, func(time.Time) tea.Msg { return animFrameMsg{} })
}

// step advances the eased thumb one frame and reports whether to keep going.
func (s *slider) step() tea.Cmd {
	pos := s.toggle.Position()
	target := s.target()
	if !pos.Animated || pos.Transition <= 0 {
		s.thumbX = target
		return nil
	}

	frames := float64(pos.Transition) / float64(animFrame)
	speed := float64(s.width) / frames
	delta := target - s.thumbX
	if math.Abs(delta) <= speed {
		s.thumbX = target
		return nil
	}
	s.thumbX += math.Copysign(speed, delta)
	return s.animate()
}

func (s *slider) view(styles Styles) string {
	total := 2 * s.width
	cells := []rune(strings.Repeat(" ", total))
	place := func(label string, start int) {
		r := []rune(label)
		offset := start + (s.width-len(r))/2
		for i, ch := range r {
			if idx := offset + i; idx >= 0 && idx < total {
				cells[idx] = ch
			}
		}
	}
	place(optionLabels[toggle.OptionA], 0)
	place(optionLabels[toggle.OptionB], s.width)

	from := int(math.Round(s.thumbX))
	if from < 0 {
		from = 0
	}
	if from > s.width {
		from = s.width
	}
	to := from + s.width

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", trackLeft))
	b.WriteString(styles.Track.Render(string(cells[:from])))
	b.WriteString(styles.Thumb.Render(string(cells[from:to])))
	b.WriteString(styles.Track.Render(string(cells[to:])))
	return b.String()
}
