// Package toggle implements the two-option perspective selector as a gesture
// state machine independent of any input or rendering toolkit.
//
// A drag starts on pointer-down, tracks a clamped offset on pointer-move and
// decides on pointer-up whether the displacement crossed the commit threshold.
// Static labels flanking the slider select an option directly via ClickSelect.
package toggle

import (
	"sync"
	"time"
)

// Option is one of the two selectable states.
type Option int

const (
	OptionA Option = iota
	OptionB
)

func (o Option) String() string {
	if o == OptionB {
		return "optionB"
	}
	return "optionA"
}

// Other returns the opposite option.
func (o Option) Other() Option {
	if o == OptionB {
		return OptionA
	}
	return OptionB
}

const (
	// CommitThreshold is the fraction of the track a drag must exceed to flip.
	CommitThreshold = 0.25
	// TransitionDuration is the easing duration used when not dragging.
	TransitionDuration = 500 * time.Millisecond
)

// State is a copy of the toggle's observable state.
type State struct {
	Selected   Option
	DragOffset float64
	Dragging   bool
	TrackWidth float64
}

// SliderPosition is the rendering contract for the slider thumb: the thumb
// sits at BaseFraction of the track plus OffsetPx units.
type SliderPosition struct {
	BaseFraction float64
	OffsetPx     float64
	Animated     bool
	Transition   time.Duration
}

// Toggle holds the selection and the transient drag gesture.
type Toggle struct {
	mu         sync.Mutex
	selected   Option
	dragging   bool
	pointerID  int
	startX     float64
	dragOffset float64
	trackWidth float64

	observers    map[int]func(State)
	nextObserver int
}

// New returns a toggle with the given initial selection and track width.
func New(initial Option, trackWidth float64) *Toggle {
	t := &Toggle{
		selected:  initial,
		observers: make(map[int]func(State)),
	}
	t.trackWidth = sanitizeWidth(trackWidth)
	return t
}

// State returns a copy of the current state.
func (t *Toggle) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

// Selected returns the committed option.
func (t *Toggle) Selected() Option {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// SetTrackWidth records the measured slider width. A width that is not
// positive disables drag commits until a real measurement arrives.
func (t *Toggle) SetTrackWidth(width float64) {
	t.mu.Lock()
	width = sanitizeWidth(width)
	if width == t.trackWidth {
		t.mu.Unlock()
		return
	}
	t.trackWidth = width
	if t.dragging {
		t.dragOffset = t.clampLocked(t.dragOffset)
	}
	t.commitLocked()
}

// PointerDown begins a drag and captures pointerID until release. A second
// pointer going down during a drag is ignored.
func (t *Toggle) PointerDown(pointerID int, x float64) {
	t.mu.Lock()
	if t.dragging {
		t.mu.Unlock()
		return
	}
	t.dragging = true
	t.pointerID = pointerID
	t.startX = x
	t.dragOffset = 0
	t.commitLocked()
}

// PointerMove updates the drag offset for the captured pointer. It never
// changes the selection.
func (t *Toggle) PointerMove(pointerID int, x float64) {
	t.mu.Lock()
	if !t.dragging || pointerID != t.pointerID {
		t.mu.Unlock()
		return
	}
	offset := t.clampLocked(x - t.startX)
	if offset == t.dragOffset {
		t.mu.Unlock()
		return
	}
	t.dragOffset = offset
	t.commitLocked()
}

// PointerUp ends the drag for the captured pointer and reports whether the
// selection flipped. The offset is reset to zero whatever the outcome.
func (t *Toggle) PointerUp(pointerID int) bool {
	t.mu.Lock()
	if !t.dragging || pointerID != t.pointerID {
		t.mu.Unlock()
		return false
	}
	t.dragging = false

	threshold := CommitThreshold * t.trackWidth
	flipped := false
	switch t.selected {
	case OptionA:
		if t.trackWidth > 0 && t.dragOffset > threshold {
			t.selected = OptionB
			flipped = true
		}
	case OptionB:
		if t.trackWidth > 0 && t.dragOffset < -threshold {
			t.selected = OptionA
			flipped = true
		}
	}
	t.dragOffset = 0
	t.commitLocked()
	return flipped
}

// ClickSelect selects opt directly, bypassing the threshold. It is ignored
// while a drag is active and reports whether it was honored.
func (t *Toggle) ClickSelect(opt Option) bool {
	t.mu.Lock()
	if t.dragging {
		t.mu.Unlock()
		return false
	}
	if t.selected == opt {
		t.mu.Unlock()
		return true
	}
	t.selected = opt
	t.commitLocked()
	return true
}

// Position computes where the slider thumb is drawn.
func (t *Toggle) Position() SliderPosition {
	t.mu.Lock()
	defer t.mu.Unlock()

	base := 0.0
	if t.selected == OptionB {
		base = 1
	}
	if t.dragging {
		return SliderPosition{BaseFraction: base, OffsetPx: t.dragOffset}
	}
	return SliderPosition{BaseFraction: base, Animated: true, Transition: TransitionDuration}
}

// Subscribe registers fn to be called after every state change. The returned
// function removes the observer.
func (t *Toggle) Subscribe(fn func(State)) func() {
	t.mu.Lock()
	id := t.nextObserver
	t.nextObserver++
	t.observers[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.observers, id)
		t.mu.Unlock()
	}
}

func (t *Toggle) clampLocked(delta float64) float64 {
	if t.selected == OptionA {
		return clamp(delta, 0, t.trackWidth)
	}
	return clamp(delta, -t.trackWidth, 0)
}

// commitLocked releases the lock and notifies observers with the new state.
func (t *Toggle) commitLocked() {
	state := t.stateLocked()
	observers := make([]func(State), 0, len(t.observers))
	for _, fn := range t.observers {
		observers = append(observers, fn)
	}
	t.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

func (t *Toggle) stateLocked() State {
	return State{
		Selected:   t.selected,
		DragOffset: t.dragOffset,
		Dragging:   t.dragging,
		TrackWidth: t.trackWidth,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sanitizeWidth(w float64) float64 {
	if w < 0 {
		return 0
	}
	return w
}
