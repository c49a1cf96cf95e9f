package session

import (
	"fmt"
	"maps"
	"slices"

	"github.com/vancomm/minesweeper-board/internal/mines"
)

type Event int8

const (
	EventNewGame Event = iota
	EventReveal
	EventChord
	EventFlag
	EventTick
)

func (e Event) String() string {
	switch e {
	case EventNewGame:
		return "new_game"
	case EventReveal:
		return "reveal"
	case EventChord:
		return "chord"
	case EventFlag:
		return "flag"
	case EventTick:
		return "tick"
	default:
		return fmt.Sprintf("Event(%d)", int8(e))
	}
}

// Update tells subscribers what a call changed. Outcome is set for reveal
// and chord, Cell for flag. Seq numbers the updates of a session in the
// order the changes were made, starting at 1.
type Update struct {
	Seq                uint64
	Event              Event
	Outcome            mines.Outcome
	Cell               *mines.Coord
	Status             mines.Status
	RemainingSafeCells int
	RemainingMines     int
	ElapsedSeconds     int
}

// update must be called with mu held.
func (s *Session) update(e Event) Update {
	s.seq++
	return Update{
		Seq:                s.seq,
		Event:              e,
		Status:             s.board.Status(),
		RemainingSafeCells: s.board.RemainingSafeCells(),
		RemainingMines:     s.board.RemainingMines(),
		ElapsedSeconds:     s.board.ElapsedSeconds(),
	}
}

// Subscribe registers fn for every later update. Updates are delivered on
// the goroutine that made the change, after the session lock is released,
// so fn may call back into the session. Changes made concurrently from
// several goroutines may therefore reach fn out of order. A subscriber that
// keeps state should drop any update whose Seq is not above the last one
// it applied.
func (s *Session) Subscribe(fn func(Update)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) publish(u Update) {
	s.subMu.Lock()
	keys := slices.Sorted(maps.Keys(s.subs))
	fns := make([]func(Update), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, s.subs[k])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}
