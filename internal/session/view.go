package session

import "github.com/vancomm/minesweeper-board/internal/mines"

// View is a consistent copy of the session state for display.
type View struct {
	ID                 string           `json:"id"`
	Params             mines.GameParams `json:"params"`
	Grid               mines.Grid       `json:"grid"`
	Status             string           `json:"status"`
	RemainingSafeCells int              `json:"remaining_safe_cells"`
	RemainingMines     int              `json:"remaining_mines"`
	ElapsedSeconds     int              `json:"elapsed_seconds"`
	StartedAt          int64            `json:"started_at"`
	EndedAt            *int64           `json:"ended_at,omitempty"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	var endedAt *int64
	if s.endedAt != nil {
		e := s.endedAt.UnixMilli()
		endedAt = &e
	}
	return View{
		ID:                 s.id.String(),
		Params:             s.board.Params(),
		Grid:               s.board.PlayerGrid(),
		Status:             s.board.Status().String(),
		RemainingSafeCells: s.board.RemainingSafeCells(),
		RemainingMines:     s.board.RemainingMines(),
		ElapsedSeconds:     s.board.ElapsedSeconds(),
		StartedAt:          s.startedAt.UnixMilli(),
		EndedAt:            endedAt,
	}
}

// Board renders the player grid as text.
func (v View) Board() string {
	return v.Grid.ToString(v.Params.Columns)
}
