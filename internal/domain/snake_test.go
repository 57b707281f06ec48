package domain

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func step(t *testing.T, s Snake, rnd Rand) Snake {
    t.Helper()
    next, ok := s.Step(rnd)
    require.True(t, ok)
    return next
}

func TestNewSnake(t *testing.T) {
    s := NewSnake(NewRand(11))
    assert.Equal(t, []Position{{Row: 10, Col: 10}}, s.Body)
    assert.Equal(t, Right, s.Heading)
    assert.NotEqual(t, s.Body[0], s.Food)
    assert.True(t, s.Food.in(SnakeGrid, SnakeGrid))
    assert.Equal(t, InProgress, s.Status())
}

func TestSteerRejectsReversal(t *testing.T) {
    s := NewSnake(NewRand(1))
    next, ok := s.Steer(Left)
    assert.False(t, ok)
    assert.Equal(t, s, next)

    next, ok = s.Steer(Up)
    require.True(t, ok)
    assert.Equal(t, Up, next.Pending)
    assert.Equal(t, Right, next.Heading)

    // still moving right until the next tick, so left stays blocked
    again, ok := next.Steer(Left)
    assert.False(t, ok)
    assert.Equal(t, Up, again.Pending)
}

func TestStepMovesAndDropsTail(t *testing.T) {
    s := Snake{
        Body:    []Position{{Row: 5, Col: 5}, {Row: 5, Col: 4}, {Row: 5, Col: 3}},
        Heading: Right,
        Pending: Right,
        Food:    Position{Row: 0, Col: 0},
    }
    s = step(t, s, NewRand(1))
    assert.Equal(t, []Position{{Row: 5, Col: 6}, {Row: 5, Col: 5}, {Row: 5, Col: 4}}, s.Body)
    assert.Equal(t, 0, s.Score)

    s, _ = s.Steer(Down)
    s = step(t, s, NewRand(1))
    assert.Equal(t, Position{Row: 6, Col: 6}, s.Body[0])
    assert.Equal(t, Down, s.Heading)
}

func TestEatingGrowsAndRespawnsFood(t *testing.T) {
    s := Snake{
        Body:    []Position{{Row: 0, Col: 1}, {Row: 0, Col: 0}},
        Heading: Right,
        Pending: Right,
        Food:    Position{Row: 0, Col: 2},
    }
    s = step(t, s, &scriptedRand{ints: []int{0}})
    assert.Equal(t, []Position{{Row: 0, Col: 2}, {Row: 0, Col: 1}, {Row: 0, Col: 0}}, s.Body)
    assert.Equal(t, 1, s.Score)
    // first free cell in row-major order skips the three segments
    assert.Equal(t, Position{Row: 0, Col: 3}, s.Food)
}

func TestWallCollisionKeepsLastState(t *testing.T) {
    s := Snake{
        Body:    []Position{{Row: 3, Col: SnakeGrid - 1}, {Row: 3, Col: SnakeGrid - 2}},
        Heading: Right,
        Pending: Right,
        Food:    Position{Row: 9, Col: 9},
    }
    next := step(t, s, NewRand(1))
    assert.Equal(t, Over, next.Status())
    assert.Equal(t, s.Body, next.Body)
    assert.Equal(t, s.Heading, next.Heading)

    after, ok := next.Step(NewRand(1))
    assert.False(t, ok)
    assert.Equal(t, next, after)
}

func TestSelfCollision(t *testing.T) {
    // a hook shape: turning up runs into the segment above the head
    s := Snake{
        Body: []Position{
            {Row: 5, Col: 5}, {Row: 5, Col: 4}, {Row: 4, Col: 4},
            {Row: 4, Col: 5}, {Row: 4, Col: 6},
        },
        Heading: Right,
        Pending: Right,
        Food:    Position{Row: 15, Col: 15},
    }
    s, _ = s.Steer(Up)
    next := step(t, s, NewRand(1))
    assert.Equal(t, Over, next.Status())
    assert.Equal(t, s.Body, next.Body)
}

func TestPauseFreezesTicks(t *testing.T) {
    s := NewSnake(NewRand(4))
    paused, ok := s.TogglePause()
    require.True(t, ok)
    assert.True(t, paused.Paused)

    same, ok := paused.Step(NewRand(4))
    assert.False(t, ok)
    assert.Equal(t, paused, same)

    resumed, _ := paused.TogglePause()
    moved := step(t, resumed, NewRand(4))
    assert.Equal(t, Position{Row: 10, Col: 11}, moved.Body[0])
}

func TestPlaceFoodAvoidsBody(t *testing.T) {
    body := make([]Position, 0, SnakeGrid*SnakeGrid-1)
    for r := 0; r < SnakeGrid; r++ {
        for c := 0; c < SnakeGrid; c++ {
            if r == 7 && c == 13 {
                continue
            }
            body = append(body, Position{Row: r, Col: c})
        }
    }
    food, ok := placeFood(body, NewRand(9))
    require.True(t, ok)
    assert.Equal(t, Position{Row: 7, Col: 13}, food)

    _, ok = placeFood(append(body, Position{Row: 7, Col: 13}), NewRand(9))
    assert.False(t, ok)
}

func TestSnakeApply(t *testing.T) {
    s := NewSnake(NewRand(5))
    e, ok := s.Apply(Pause(), nil)
    require.True(t, ok)
    assert.True(t, e.(Snake).Paused)

    e, ok = s.Apply(Cell(Position{}), nil)
    assert.False(t, ok)
    assert.Equal(t, s, e)

    e, ok = s.Apply(Tick(), NewRand(5))
    require.True(t, ok)
    assert.Equal(t, Position{Row: 10, Col: 11}, e.(Snake).Body[0])
}
