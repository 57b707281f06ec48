package domain

import (
    "errors"
    "math/rand/v2"
)

// ErrInvalidConfig is returned when an engine is constructed from bad parameters.
var ErrInvalidConfig = errors.New("invalid game config")

// Kind identifies a game in the catalogue.
type Kind string

const (
    KindTicTacToe Kind = "tictactoe"
    KindCheckers  Kind = "checkers"
    Kind2048      Kind = "2048"
    KindSnake     Kind = "snake"
    KindMemory    Kind = "memory"
)

// Status is the lifecycle state shared by all engines.
type Status uint8

const (
    InProgress Status = iota
    Won
    Draw
    TimedOut
    Over
)

// String returns the snake_case name of s.
func (s Status) String() string {
    switch s {
    case InProgress:
        return "in_progress"
    case Won:
        return "won"
    case Draw:
        return "draw"
    case TimedOut:
        return "timed_out"
    case Over:
        return "over"
    }
    return "unknown"
}

// Terminal reports whether no further transitions are accepted.
func (s Status) Terminal() bool { return s != InProgress }

// MarshalText encodes a status as its String form.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Position is a 0-indexed row/column pair.
type Position struct {
    Row int `json:"row"`
    Col int `json:"col"`
}

func (p Position) in(rows, cols int) bool {
    return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// Direction is a directional input for 2048 and Snake.
type Direction uint8

const (
    Up Direction = iota + 1
    Down
    Left
    Right
)

var directionNames = map[Direction]string{Up: "up", Down: "down", Left: "left", Right: "right"}

// String returns the lower-case direction name.
func (d Direction) String() string {
    if n, ok := directionNames[d]; ok {
        return n
    }
    return "none"
}

// MarshalText encodes a direction as its String form.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// ParseDirection maps "up", "down", "left", "right" to a Direction.
func ParseDirection(s string) (Direction, bool) {
    for d, n := range directionNames {
        if n == s {
            return d, true
        }
    }
    return 0, false
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
    switch d {
    case Up:
        return Down
    case Down:
        return Up
    case Left:
        return Right
    case Right:
        return Left
    }
    return 0
}

// delta is the row/col step for one move in direction d.
func (d Direction) delta() (int, int) {
    switch d {
    case Up:
        return -1, 0
    case Down:
        return 1, 0
    case Left:
        return 0, -1
    case Right:
        return 0, 1
    }
    return 0, 0
}

// EventKind enumerates the closed input set accepted by engines.
type EventKind uint8

const (
    EventCell EventKind = iota + 1
    EventDirection
    EventPause
    EventTick
    EventRevert
)

// Event is a single input fed to Engine.Apply.
type Event struct {
    Kind EventKind
    Pos  Position
    Dir  Direction
}

// Constructors for the events the shell and the timers send.
func Cell(p Position) Event  { return Event{Kind: EventCell, Pos: p} }
func Move(d Direction) Event { return Event{Kind: EventDirection, Dir: d} }
func Pause() Event           { return Event{Kind: EventPause} }
func Tick() Event            { return Event{Kind: EventTick} }
func Revert() Event          { return Event{Kind: EventRevert} }

// Engine is the common shape of every game state. Apply never mutates the
// receiver; it returns the next state and whether the event was accepted.
// A rejected event returns the receiver unchanged.
type Engine interface {
    Apply(ev Event, rnd Rand) (Engine, bool)
    Status() Status
    String() string
}

// Rand is the only source of randomness an engine sees.
type Rand interface {
    IntN(n int) int
    Float64() float64
}

// NewRand returns a seeded source. Not safe for concurrent use.
func NewRand(seed uint64) Rand {
    return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
