package board

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an interaction is started while another one is live.
var ErrBusy = errors.New("another interaction is in progress")

// State is the single interaction state of a Store.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateDragging
	StateResizing
	StateMarquee
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	case StateMarquee:
		return "marquee"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// transitions lists the states reachable from each state. Every interaction
// starts from idle and returns to it.
var transitions = map[State][]State{
	StateIdle:     {StateDrawing, StateDragging, StateResizing, StateMarquee},
	StateDrawing:  {StateIdle},
	StateDragging: {StateIdle},
	StateResizing: {StateIdle},
	StateMarquee:  {StateIdle},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
