// Package session owns a single board on behalf of a front end. Every call
// is serialized, so a UI loop and a clock may share one Session.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-board/internal/mines"
	"github.com/vancomm/minesweeper-board/internal/records"
)

type Recorder interface {
	Save(ctx context.Context, r records.Record) error
}

type Session struct {
	logger   *slog.Logger
	rnd      *rand.Rand
	recorder Recorder
	now      func() time.Time

	mu        sync.Mutex
	id        uuid.UUID
	board     *mines.Board
	startedAt time.Time
	endedAt   *time.Time
	recorded  bool
	seq       uint64

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func(Update)
}

// New starts a session with a game already in progress. A nil recorder
// discards finished games.
func New(
	logger *slog.Logger,
	rnd *rand.Rand,
	recorder Recorder,
	params mines.GameParams,
) *Session {
	if rnd == nil {
		rnd = mines.NewRand()
	}
	if recorder == nil {
		recorder = records.Discard{}
	}
	s := &Session{
		logger:   logger,
		rnd:      rnd,
		recorder: recorder,
		now:      time.Now,
		subs:     make(map[int]func(Update)),
	}
	s.mu.Lock()
	s.reset(params)
	s.mu.Unlock()
	return s
}

// reset must be called with mu held.
func (s *Session) reset(params mines.GameParams) {
	s.id = uuid.New()
	s.board = mines.NewGame(params, s.rnd)
	s.startedAt = s.now().UTC()
	s.endedAt = nil
	s.recorded = false
	s.logger.Debug("new game",
		slog.String("id", s.id.String()),
		slog.String("params", s.board.Params().String()),
	)
}

// NewGame throws the current board away and starts over.
func (s *Session) NewGame(params mines.GameParams) {
	s.mu.Lock()
	s.reset(params)
	u := s.update(EventNewGame)
	s.mu.Unlock()

	s.publish(u)
}

func (s *Session) Reveal(ctx context.Context, row, col int) (mines.Outcome, error) {
	return s.open(ctx, EventReveal, row, col, (*mines.Board).Reveal)
}

func (s *Session) Chord(ctx context.Context, row, col int) (mines.Outcome, error) {
	return s.open(ctx, EventChord, row, col, (*mines.Board).Chord)
}

func (s *Session) open(
	ctx context.Context,
	event Event,
	row, col int,
	fn func(b *mines.Board, row, col int) (mines.Outcome, error),
) (mines.Outcome, error) {
	s.mu.Lock()
	outcome, err := fn(s.board, row, col)
	if err != nil || !outcome.Changed() {
		s.mu.Unlock()
		return outcome, err
	}
	u := s.update(event)
	u.Outcome = outcome
	rec, finished := s.finish()
	s.mu.Unlock()

	s.publish(u)
	if finished {
		if err := s.record(ctx, rec); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

func (s *Session) ToggleFlag(row, col int) (bool, error) {
	s.mu.Lock()
	changed, err := s.board.ToggleFlag(row, col)
	if err != nil || !changed {
		s.mu.Unlock()
		return changed, err
	}
	u := s.update(EventFlag)
	u.Cell = &mines.Coord{Row: row, Col: col}
	s.mu.Unlock()

	s.publish(u)
	return true, nil
}

// Tick advances the clock of the current game. Ticks that arrive after the
// game has ended change nothing and publish nothing.
func (s *Session) Tick() int {
	s.mu.Lock()
	before := s.board.ElapsedSeconds()
	elapsed := s.board.Tick()
	if elapsed == before {
		s.mu.Unlock()
		return elapsed
	}
	u := s.update(EventTick)
	s.mu.Unlock()

	s.publish(u)
	return elapsed
}

// finish stamps the end of a game the first time it is seen over. It must
// be called with mu held.
func (s *Session) finish() (records.Record, bool) {
	if !s.board.GameOver() || s.recorded {
		return records.Record{}, false
	}
	s.recorded = true
	ended := s.now().UTC()
	s.endedAt = &ended

	p := s.board.Params()
	return records.Record{
		ID:             s.id.String(),
		Rows:           p.Rows,
		Columns:        p.Columns,
		MineCount:      p.MineCount,
		Won:            s.board.Won(),
		ElapsedSeconds: s.board.ElapsedSeconds(),
		FinishedAt:     ended,
	}, true
}

func (s *Session) record(ctx context.Context, rec records.Record) error {
	s.logger.Info("game over",
		slog.String("id", rec.ID),
		slog.Bool("won", rec.Won),
		slog.Int("elapsed", rec.ElapsedSeconds),
	)
	if err := s.recorder.Save(ctx, rec); err != nil {
		s.logger.Error("unable to save record", slog.Any("error", err))
		return fmt.Errorf("unable to save record: %w", err)
	}
	return nil
}
