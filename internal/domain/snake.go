package domain

import (
    "strings"
    "time"
)

const (
    // SnakeGrid is the side of the square playfield.
    SnakeGrid = 20
    // SnakeTick is the movement period.
    SnakeTick = 150 * time.Millisecond
)

// Snake is the state of one snake run. Body[0] is the head.
type Snake struct {
    Body    []Position `json:"body"`
    Heading Direction  `json:"heading"`
    Pending Direction  `json:"pending"`
    Food    Position   `json:"food"`
    Score   int        `json:"score"`
    Paused  bool       `json:"paused"`
    State   Status     `json:"status"`
}

// NewSnake starts a one-segment snake in the middle heading right.
func NewSnake(rnd Rand) Snake {
    s := Snake{
        Body:    []Position{{Row: SnakeGrid / 2, Col: SnakeGrid / 2}},
        Heading: Right,
        Pending: Right,
    }
    s.Food, _ = placeFood(s.Body, rnd)
    return s
}

// Steer queues a heading for the next tick. Turning straight back onto the
// direction of the last step is ignored.
func (s Snake) Steer(d Direction) (Snake, bool) {
    if s.State.Terminal() || d.Opposite() == 0 || d == s.Heading.Opposite() || d == s.Pending {
        return s, false
    }
    s.Pending = d
    return s, true
}

// TogglePause flips the paused flag while the run is live.
func (s Snake) TogglePause() (Snake, bool) {
    if s.State.Terminal() {
        return s, false
    }
    s.Paused = !s.Paused
    return s, true
}

// Step advances the snake one cell. Hitting a wall or the body ends the run
// and leaves the body where it was.
func (s Snake) Step(rnd Rand) (Snake, bool) {
    if s.State.Terminal() || s.Paused {
        return s, false
    }
    dr, dc := s.Pending.delta()
    head := Position{Row: s.Body[0].Row + dr, Col: s.Body[0].Col + dc}
    if !head.in(SnakeGrid, SnakeGrid) || occupies(s.Body, head) {
        s.State = Over
        return s, true
    }
    s.Heading = s.Pending

    body := make([]Position, 0, len(s.Body)+1)
    body = append(body, head)
    if head == s.Food {
        body = append(body, s.Body...)
        s.Score++
        food, ok := placeFood(body, rnd)
        if !ok {
            s.Body = body
            s.State = Won
            return s, true
        }
        s.Food = food
    } else {
        body = append(body, s.Body[:len(s.Body)-1]...)
    }
    s.Body = body
    return s, true
}

func occupies(body []Position, p Position) bool {
    for _, seg := range body {
        if seg == p {
            return true
        }
    }
    return false
}

// placeFood picks a uniformly random cell the snake does not cover.
func placeFood(body []Position, rnd Rand) (Position, bool) {
    var taken [SnakeGrid][SnakeGrid]bool
    for _, seg := range body {
        taken[seg.Row][seg.Col] = true
    }
    free := SnakeGrid*SnakeGrid - len(body)
    if free <= 0 {
        return Position{}, false
    }
    n := rnd.IntN(free)
    for r := 0; r < SnakeGrid; r++ {
        for c := 0; c < SnakeGrid; c++ {
            if taken[r][c] {
                continue
            }
            if n == 0 {
                return Position{Row: r, Col: c}, true
            }
            n--
        }
    }
    return Position{}, false
}

// Apply handles steering, pause toggles and movement ticks.
func (s Snake) Apply(ev Event, rnd Rand) (Engine, bool) {
    switch ev.Kind {
    case EventDirection:
        return s.Steer(ev.Dir)
    case EventPause:
        return s.TogglePause()
    case EventTick:
        return s.Step(rnd)
    }
    return s, false
}

// Status reports the run state.
func (s Snake) Status() Status { return s.State }

// String draws the grid: '@' head, 'o' body, '*' food.
func (s Snake) String() string {
    var grid [SnakeGrid][SnakeGrid]byte
    for r := range grid {
        for c := range grid[r] {
            grid[r][c] = '.'
        }
    }
    grid[s.Food.Row][s.Food.Col] = '*'
    for i, seg := range s.Body {
        if i == 0 {
            grid[seg.Row][seg.Col] = '@'
        } else {
            grid[seg.Row][seg.Col] = 'o'
        }
    }
    var b strings.Builder
    for _, row := range grid {
        b.Write(row[:])
        b.WriteByte('\n')
    }
    return b.String()
}
