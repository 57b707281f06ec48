package domain

import (
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

var fruit = []string{"apple", "banana", "grape", "orange", "strawberry", "peach", "kiwi", "pineapple"}

func newMemory(t *testing.T, pairs int) Memory {
    t.Helper()
    m, err := NewMemory(MemoryConfig{Symbols: fruit, Pairs: pairs, TimeLimit: 2 * time.Minute}, NewRand(42))
    require.NoError(t, err)
    return m
}

// pairOf returns the index of the other card showing the same symbol as i,
// and some index whose symbol differs.
func pairOf(m Memory, i int) (same, other int) {
    same, other = -1, -1
    for j, c := range m.Cards {
        if j == i {
            continue
        }
        if c.Symbol == m.Cards[i].Symbol {
            same = j
        } else if other < 0 {
            other = j
        }
    }
    return same, other
}

func flip(t *testing.T, m Memory, i int) Memory {
    t.Helper()
    next, ok := m.Flip(i)
    require.True(t, ok, "flip %d rejected", i)
    return next
}

func TestNewMemoryDealsPairs(t *testing.T) {
    for _, pairs := range []int{6, 8} {
        m := newMemory(t, pairs)
        require.Len(t, m.Cards, 2*pairs)
        counts := map[string]int{}
        for i, c := range m.Cards {
            assert.Equal(t, i, c.ID)
            assert.False(t, c.FaceUp)
            assert.False(t, c.Matched)
            counts[c.Symbol]++
        }
        assert.Len(t, counts, pairs)
        for _, s := range fruit[:pairs] {
            assert.Equal(t, 2, counts[s], s)
        }
        assert.Equal(t, 120, m.Remaining)
        assert.Equal(t, InProgress, m.Status())
    }
}

func TestNewMemoryRejectsBadConfig(t *testing.T) {
    bad := []MemoryConfig{
        {Symbols: fruit, Pairs: 0, TimeLimit: time.Minute},
        {Symbols: fruit, Pairs: 3, TimeLimit: time.Minute},
        {Symbols: fruit[:4], Pairs: 6, TimeLimit: time.Minute},
        {Symbols: fruit, Pairs: 6, TimeLimit: 0},
        {Symbols: []string{"a", "b", "a", "c"}, Pairs: 4, TimeLimit: time.Minute},
        {Symbols: []string{"a", "", "b", "c"}, Pairs: 4, TimeLimit: time.Minute},
        {Symbols: fruit, Pairs: 6, TimeLimit: 90*time.Second + 500*time.Millisecond},
    }
    for _, cfg := range bad {
        _, err := NewMemory(cfg, NewRand(1))
        assert.True(t, errors.Is(err, ErrInvalidConfig), "%+v: %v", cfg, err)
    }
}

func TestMatchingPairLocks(t *testing.T) {
    m := newMemory(t, 6)
    same, _ := pairOf(m, 0)

    m = flip(t, m, 0)
    assert.Equal(t, []int{0}, m.Pending)
    assert.Equal(t, 0, m.Moves)

    m = flip(t, m, same)
    assert.Equal(t, 1, m.Moves)
    assert.Empty(t, m.Pending)
    assert.True(t, m.Cards[0].Matched)
    assert.True(t, m.Cards[same].Matched)

    // matched cards stay put
    next, ok := m.Flip(0)
    assert.False(t, ok)
    assert.Equal(t, m, next)
}

func TestMismatchWaitsForRevert(t *testing.T) {
    m := newMemory(t, 6)
    _, other := pairOf(m, 0)

    m = flip(t, m, 0)
    m = flip(t, m, other)
    assert.Equal(t, 1, m.Moves)
    assert.True(t, m.Mismatched())
    assert.True(t, m.Cards[0].FaceUp)
    assert.True(t, m.Cards[other].FaceUp)

    // a third card is blocked while the pair is showing
    third := -1
    for i := range m.Cards {
        if i != 0 && i != other {
            third = i
            break
        }
    }
    next, ok := m.Flip(third)
    assert.False(t, ok)
    assert.Equal(t, m, next)

    m, ok = m.Revert()
    require.True(t, ok)
    assert.False(t, m.Cards[0].FaceUp)
    assert.False(t, m.Cards[other].FaceUp)
    assert.Empty(t, m.Pending)
    assert.Equal(t, 1, m.Moves)

    _, ok = m.Revert()
    assert.False(t, ok)
}

func TestFlipFaceUpCardIsNoop(t *testing.T) {
    m := flip(t, newMemory(t, 6), 3)
    next, ok := m.Flip(3)
    assert.False(t, ok)
    assert.Equal(t, m, next)

    for _, i := range []int{-1, len(m.Cards)} {
        next, ok = m.Flip(i)
        assert.False(t, ok)
        assert.Equal(t, m, next)
    }
}

func TestFlipDoesNotAliasPreviousState(t *testing.T) {
    m := newMemory(t, 6)
    next := flip(t, m, 2)
    assert.False(t, m.Cards[2].FaceUp)
    assert.True(t, next.Cards[2].FaceUp)
}

func TestClearingBoardWins(t *testing.T) {
    m := newMemory(t, 6)
    done := map[int]bool{}
    for i := range m.Cards {
        if done[i] {
            continue
        }
        same, _ := pairOf(m, i)
        m = flip(t, m, i)
        m = flip(t, m, same)
        done[i], done[same] = true, true
    }
    assert.Equal(t, Won, m.Status())
    assert.Equal(t, 6, m.Moves)

    // the clock no longer runs
    next, ok := m.Countdown()
    assert.False(t, ok)
    assert.Equal(t, m, next)
}

func TestCountdownTimesOut(t *testing.T) {
    m, err := NewMemory(MemoryConfig{Symbols: fruit, Pairs: 2, TimeLimit: 3 * time.Second}, NewRand(1))
    require.NoError(t, err)

    m = flip(t, m, 0)
    for i := 0; i < 3; i++ {
        var ok bool
        m, ok = m.Countdown()
        require.True(t, ok)
    }
    assert.Equal(t, 0, m.Remaining)
    assert.Equal(t, TimedOut, m.Status())

    next, ok := m.Flip(1)
    assert.False(t, ok)
    assert.Equal(t, m, next)
}

func TestMemoryApply(t *testing.T) {
    m := newMemory(t, 6)
    e, ok := m.Apply(Cell(Position{Row: 1, Col: 2}), nil)
    require.True(t, ok)
    assert.True(t, e.(Memory).Cards[6].FaceUp)

    e, ok = m.Apply(Cell(Position{Row: 0, Col: 4}), nil)
    assert.False(t, ok)
    assert.Equal(t, m, e)

    e, ok = m.Apply(Tick(), nil)
    require.True(t, ok)
    assert.Equal(t, 119, e.(Memory).Remaining)

    _, ok = m.Apply(Move(Up), nil)
    assert.False(t, ok)
}

func TestCellOutsideLayoutIsNoop(t *testing.T) {
    m := newMemory(t, 6)
    for _, p := range []Position{
        {Row: 3, Col: 0},
        {Row: -1, Col: 1},
        {Row: 1 << 62, Col: 1},
        {Row: 1<<61 + 1, Col: 1},
    } {
        e, ok := m.Apply(Cell(p), nil)
        assert.False(t, ok, "%+v", p)
        assert.Equal(t, m, e)
    }
}

func TestMemoryString(t *testing.T) {
    m, err := NewMemory(MemoryConfig{Symbols: []string{"A", "B"}, Pairs: 2, TimeLimit: 75 * time.Second}, NewRand(1))
    require.NoError(t, err)
    m = flip(t, m, 0)
    want := m.Cards[0].Symbol + " # # #\nmoves 0  time 1:15\n"
    assert.Equal(t, want, m.String())
}
