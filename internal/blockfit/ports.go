package blockfit

import "context"

// BestScoreStore persists the best score as a single integer slot. Load
// returns 0 and no error when nothing has been stored yet.
type BestScoreStore interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, best int) error
}
