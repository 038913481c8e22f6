package blockfit

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Session owns one player's board, hand and score and turns discrete input
// events into snapshots. It is not safe for concurrent use.
type Session struct {
	cfg     Config
	log     *zap.Logger
	store   BestScoreStore
	rng     *rand.Rand
	catalog Catalog

	board     *Board
	hand      *HandManager
	score     *ScoreTracker
	clears    *LineClearEngine
	placement *PlacementEngine

	gameOver      bool
	refillPending bool
	dragging      int
	cleared       []Cell
}

type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBestScoreStore persists the best score through store.
func WithBestScoreStore(store BestScoreStore) Option {
	return func(s *Session) { s.store = store }
}

// WithRand replaces the seeded generator used to deal pieces.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithCatalog deals pieces from catalog instead of the standard set.
func WithCatalog(catalog Catalog) Option {
	return func(s *Session) {
		if len(catalog) > 0 {
			s.catalog = catalog
		}
	}
}

// NewSession builds a session. No hand is dealt until Start is called.
func NewSession(cfg Config, opts ...Option) *Session {
	cfg = cfg.withDefaults()

	s := &Session{
		cfg:      cfg,
		log:      zap.NewNop(),
		catalog:  StandardCatalog(),
		dragging: NoDrag,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	s.board = NewBoard(cfg.BoardSize)
	s.hand = NewHandManager(s.catalog, s.rng, cfg.HandSize)
	s.score = NewScoreTracker(0, s.persistBest)
	s.clears = NewLineClearEngine(s.score)
	s.placement = NewPlacementEngine(s.score, s.clears)
	return s
}

// Start loads the persisted best score and deals the first hand. A failing
// store is logged and treated as having no best score.
func (s *Session) Start(ctx context.Context) (Snapshot, error) {
	if s.store != nil {
		best, err := s.store.Load(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.Snapshot(), err
			}
			s.log.Warn("loading best score", zap.Error(err))
			best = 0
		}
		if best > s.score.best {
			s.score.best = best
		}
	}

	s.spawn()
	s.log.Info("session started",
		zap.Int("board_size", s.cfg.BoardSize),
		zap.Int("best", s.score.Best()),
	)
	return s.Snapshot(), nil
}

// Config returns the configuration with defaults applied.
func (s *Session) Config() Config { return s.cfg }

// DragStart checks that the piece in slot can be picked up.
func (s *Session) DragStart(slot int) (Snapshot, error) {
	if err := s.checkPickup(slot); err != nil {
		return s.Snapshot(), err
	}
	s.dragging = slot
	return s.Snapshot(), nil
}

// DragCancel drops a held piece back into the hand.
func (s *Session) DragCancel() Snapshot {
	s.dragging = NoDrag
	return s.Snapshot()
}

// DragRelease drops the piece in slot with its top-left cell at (row, col).
// An invalid target is reported through PlaceResult.Outcome, not as an error.
func (s *Session) DragRelease(slot, row, col int) (Snapshot, PlaceResult, error) {
	s.dragging = NoDrag
	if err := s.checkPickup(slot); err != nil {
		return s.Snapshot(), PlaceResult{}, err
	}

	if s.board.HasPending() {
		s.commit()
	}
	s.cleared = nil

	result, err := s.placement.AttemptPlace(s.board, s.hand, slot, row, col)
	if err != nil {
		return s.Snapshot(), result, err
	}

	if result.Outcome == Rejected {
		s.log.Debug("placement rejected",
			zap.String("piece_id", result.Piece.ID),
			zap.Int("slot", slot),
			zap.Int("row", row),
			zap.Int("col", col),
		)
		return s.Snapshot(), result, nil
	}

	s.cleared = result.Clear.Cells
	s.log.Debug("piece placed",
		zap.String("piece_id", result.Piece.ID),
		zap.String("shape", result.Piece.Shape.Name()),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.Int("cleared", result.Clear.Cleared()),
		zap.Int("score", s.score.Current()),
	)

	if !s.cfg.DeferCommit {
		s.commit()
	}

	if result.HandEmptied {
		if s.cfg.DeferRefill {
			s.refillPending = true
		} else {
			s.spawn()
		}
	} else {
		s.evaluateGameOver()
	}

	return s.Snapshot(), result, nil
}

// Preview returns the cells the piece in slot would cover at (row, col), or
// false when it cannot be placed there.
func (s *Session) Preview(slot, row, col int) ([]Cell, bool) {
	if s.checkPickup(slot) != nil {
		return nil, false
	}

	piece, _ := s.hand.Piece(slot)
	board := s.board
	if board.HasPending() {
		board = board.Settled()
	}
	if !board.FitsAt(piece.Shape, row, col) {
		return nil, false
	}
	return board.Footprint(piece.Shape, row, col), true
}

// CommitClear vacates cells left pending by a deferred clear cycle.
func (s *Session) CommitClear() Snapshot {
	if s.board.HasPending() {
		s.commit()
	}
	return s.Snapshot()
}

// Refill deals the next hand once a deferred refill is due.
func (s *Session) Refill() Snapshot {
	if s.refillPending {
		s.spawn()
	}
	return s.Snapshot()
}

// Restart clears the board and current score and deals a new hand. The best
// score is kept.
func (s *Session) Restart() Snapshot {
	s.log.Info("session restarted",
		zap.Int("final_score", s.score.Current()),
		zap.Int("best", s.score.Best()),
	)

	s.board.Reset()
	s.score.Reset()
	s.gameOver = false
	s.refillPending = false
	s.dragging = NoDrag
	s.cleared = nil
	s.spawn()
	return s.Snapshot()
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:         s.board.Grid(),
		Pending:       s.board.PendingCells(),
		Hand:          s.hand.Pieces(),
		Score:         s.score.Current(),
		Best:          s.score.Best(),
		GameOver:      s.gameOver,
		Cleared:       append([]Cell(nil), s.cleared...),
		RefillPending: s.refillPending,
		Dragging:      s.dragging,
		Generation:    s.hand.Generation(),
	}
}

func (s *Session) GameOver() bool { return s.gameOver }

func (s *Session) checkPickup(slot int) error {
	if s.gameOver {
		return ErrGameOver
	}
	piece, err := s.hand.Piece(slot)
	if err != nil {
		return err
	}
	if piece.Placed {
		return fmt.Errorf("slot %d: %w", slot, ErrPiecePlaced)
	}
	return nil
}

func (s *Session) spawn() {
	s.refillPending = false
	pieces := s.hand.Spawn()

	if ce := s.log.Check(zap.DebugLevel, "hand dealt"); ce != nil {
		names := make([]string, len(pieces))
		for i, p := range pieces {
			names[i] = p.Shape.Name()
		}
		ce.Write(zap.Strings("shapes", names), zap.Int("generation", s.hand.Generation()))
	}

	s.evaluateGameOver()
}

func (s *Session) commit() {
	cells := s.clears.Commit(s.board)
	if len(cells) > 0 {
		s.log.Debug("clear committed", zap.Int("cells", len(cells)))
	}
}

// evaluateGameOver judges the hand against the board as it will be after any
// pending clear is committed.
func (s *Session) evaluateGameOver() {
	board := s.board
	if board.HasPending() {
		board = board.Settled()
	}

	s.gameOver = IsGameOver(board, s.hand.Unplaced())
	if s.gameOver {
		s.log.Info("game over",
			zap.Int("score", s.score.Current()),
			zap.Int("best", s.score.Best()),
		)
	}
}

func (s *Session) persistBest(best int) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(context.Background(), best); err != nil {
		s.log.Warn("saving best score", zap.Int("best", best), zap.Error(err))
	}
}
