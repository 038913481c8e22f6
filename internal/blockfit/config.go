package blockfit

import "time"

const (
	DefaultClearDelay  = 300 * time.Millisecond
	DefaultRefillDelay = 500 * time.Millisecond
)

// Config tunes a Session.
type Config struct {
	BoardSize int
	HandSize  int

	// ClearDelay and RefillDelay are the cosmetic pauses the presentation
	// layer waits before calling CommitClear and Refill. The engine itself
	// never waits.
	ClearDelay  time.Duration
	RefillDelay time.Duration

	// DeferCommit leaves cleared cells pending until CommitClear is called.
	// When false, mark and commit happen in the same step.
	DeferCommit bool
	// DeferRefill leaves an exhausted hand empty until Refill is called.
	DeferRefill bool

	// Seed fixes the piece generator. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns the standard 8x8, three-piece game running fully
// synchronously.
func DefaultConfig() Config {
	return Config{
		BoardSize:   DefaultBoardSize,
		HandSize:    DefaultHandSize,
		ClearDelay:  DefaultClearDelay,
		RefillDelay: DefaultRefillDelay,
	}
}

func (c Config) withDefaults() Config {
	if c.BoardSize <= 0 {
		c.BoardSize = DefaultBoardSize
	}
	if c.HandSize <= 0 {
		c.HandSize = DefaultHandSize
	}
	if c.ClearDelay < 0 {
		c.ClearDelay = 0
	}
	if c.RefillDelay < 0 {
		c.RefillDelay = 0
	}
	return c
}
