package blockfit

// ScoreTracker accumulates the current game's score and the best score seen.
type ScoreTracker struct {
	current int
	best    int
	onBest  func(best int)
}

// NewScoreTracker starts a tracker from a previously persisted best score.
// onBest, if non-nil, is called every time the best score increases.
func NewScoreTracker(best int, onBest func(best int)) *ScoreTracker {
	if best < 0 {
		best = 0
	}
	return &ScoreTracker{best: best, onBest: onBest}
}

// AddScore adds a non-negative delta to the current score.
func (s *ScoreTracker) AddScore(delta int) {
	if delta <= 0 {
		return
	}

	s.current += delta
	if s.current > s.best {
		s.best = s.current
		if s.onBest != nil {
			s.onBest(s.best)
		}
	}
}

// Reset zeroes the current score. The best score is kept.
func (s *ScoreTracker) Reset() {
	s.current = 0
}

func (s *ScoreTracker) Current() int { return s.current }
func (s *ScoreTracker) Best() int    { return s.best }
