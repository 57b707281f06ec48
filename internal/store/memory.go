package store

import (
    "context"
    "fmt"
    "sync"
)

// memory keeps best scores for the lifetime of the process.
type memory struct {
    mu   sync.RWMutex
    best map[string]int
}

// NewMemory returns an in-process BestScores.
func NewMemory() BestScores {
    return &memory{best: make(map[string]int)}
}

func (m *memory) Best(ctx context.Context, key string) (int, bool, error) {
    m.mu.RLock()
    defer m.mu.RUnlock()
    v, ok := m.best[key]
    return v, ok, nil
}

func (m *memory) Record(ctx context.Context, key string, moves int) (bool, error) {
    if moves <= 0 {
        return false, fmt.Errorf("%w: %d", ErrInvalidScore, moves)
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    if cur, ok := m.best[key]; ok && cur <= moves {
        return false, nil
    }
    m.best[key] = moves
    return true, nil
}

func (m *memory) Close() error { return nil }
