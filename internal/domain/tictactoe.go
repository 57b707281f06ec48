package domain

import "strings"

// Mark represents a Tic-Tac-Toe board cell state.
type Mark uint8

const (
    Empty Mark = iota
    X
    O
)

// String returns "X", "O" or "." for an empty cell.
func (m Mark) String() string {
    switch m {
    case X:
        return "X"
    case O:
        return "O"
    }
    return "."
}

// MarshalText encodes a mark as its String form.
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Board is a fixed 3x3 board stored row-major.
type Board [9]Mark

// TicTacToe holds the current state of a Tic-Tac-Toe match.
type TicTacToe struct {
    Board  Board  `json:"board"`
    Turn   Mark   `json:"turn"`
    Winner Mark   `json:"winner"`
    State  Status `json:"status"`
    Moves  int    `json:"moves"`
}

// NewTicTacToe returns a new game with X to move.
func NewTicTacToe() TicTacToe {
    return TicTacToe{Turn: X}
}

// Play places the current mark at p. Occupied, out of bounds and
// post-game clicks are rejected.
func (g TicTacToe) Play(p Position) (TicTacToe, bool) {
    if g.State.Terminal() || !p.in(3, 3) {
        return g, false
    }
    idx := p.Row*3 + p.Col
    if g.Board[idx] != Empty {
        return g, false
    }

    // Place the mark
    g.Board[idx] = g.Turn
    g.Moves++

    // Check for a win
    if hasWin(g.Board, g.Turn) {
        g.Winner = g.Turn
        g.State = Won
        return g, true
    }

    // Check for draw
    if g.Moves == 9 {
        g.State = Draw
        return g, true
    }

    // Flip turn
    if g.Turn == X {
        g.Turn = O
    } else {
        g.Turn = X
    }
    return g, true
}

// Apply accepts cell events only.
func (g TicTacToe) Apply(ev Event, _ Rand) (Engine, bool) {
    if ev.Kind != EventCell {
        return g, false
    }
    return g.Play(ev.Pos)
}

// Status reports the match state.
func (g TicTacToe) Status() Status { return g.State }

// String prints the board as three rows of marks.
func (g TicTacToe) String() string {
    var b strings.Builder
    for i, m := range g.Board {
        b.WriteString(m.String())
        if i%3 == 2 {
            b.WriteByte('\n')
        }
    }
    return b.String()
}

var ticTacToeLines = [8][3]int{
    // rows
    {0, 1, 2}, {3, 4, 5}, {6, 7, 8},
    // cols
    {0, 3, 6}, {1, 4, 7}, {2, 5, 8},
    // diags
    {0, 4, 8}, {2, 4, 6},
}

func hasWin(b Board, side Mark) bool {
    for _, ln := range ticTacToeLines {
        if b[ln[0]] == side && b[ln[1]] == side && b[ln[2]] == side {
            return true
        }
    }
    return false
}
