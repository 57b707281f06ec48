package store

import (
    "context"
    "errors"
    "fmt"
)

// ErrInvalidScore is returned for non-positive move counts.
var ErrInvalidScore = errors.New("invalid score")

// BestScores persists the lowest completed move count per key.
type BestScores interface {
    // Best returns the stored value; ok is false when nothing is stored yet.
    Best(ctx context.Context, key string) (moves int, ok bool, err error)

    // Record stores moves when it beats the current best (or none exists)
    // and reports whether it did.
    Record(ctx context.Context, key string, moves int) (bool, error)

    Close() error
}

// Key builds the storage key for a memory theme and difficulty.
func Key(theme, difficulty string) string {
    return fmt.Sprintf("memory-best-score-%s-%s", theme, difficulty)
}
