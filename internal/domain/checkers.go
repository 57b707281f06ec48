package domain

import "strings"

// Piece is the content of a checkers square.
type Piece uint8

const (
    NoPiece Piece = iota
    Black
    White
)

// String returns "black", "white" or "" for an empty square.
func (p Piece) String() string {
    switch p {
    case Black:
        return "black"
    case White:
        return "white"
    }
    return ""
}

// MarshalText encodes a piece as its String form.
func (p Piece) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p Piece) opponent() Piece {
    if p == White {
        return Black
    }
    return White
}

// forward is the row delta of a single step for p.
func (p Piece) forward() int {
    if p == White {
        return -1
    }
    return 1
}

const checkersSize = 8

// Checkers holds a simplified checkers match: forward-only men, single
// captures, no kings.
type Checkers struct {
    Board    [checkersSize][checkersSize]Piece `json:"board"`
    Turn     Piece                             `json:"turn"`
    Selected Position                          `json:"selected"`
    Picked   bool                              `json:"picked"`
    Winner   Piece                             `json:"winner"`
    State    Status                            `json:"status"`
}

// NewCheckers sets up black on the top three rows and white on the bottom
// three, dark squares only. White moves first.
func NewCheckers() Checkers {
    g := Checkers{Turn: White}
    for r := 0; r < checkersSize; r++ {
        for c := 0; c < checkersSize; c++ {
            if (r+c)%2 == 0 {
                continue
            }
            switch {
            case r < 3:
                g.Board[r][c] = Black
            case r >= checkersSize-3:
                g.Board[r][c] = White
            }
        }
    }
    return g
}

// Click is the two-phase input: the first click selects one of the current
// player's pieces, the second tries to move it. An illegal target only
// clears the selection.
func (g Checkers) Click(p Position) (Checkers, bool) {
    if g.State.Terminal() || !p.in(checkersSize, checkersSize) {
        return g, false
    }
    if !g.Picked {
        if g.Board[p.Row][p.Col] != g.Turn {
            return g, false
        }
        g.Selected, g.Picked = p, true
        return g, true
    }

    from := g.Selected
    g.Selected, g.Picked = Position{}, false
    capture, ok := g.legal(from, p)
    if !ok {
        return g, true
    }

    g.Board[p.Row][p.Col] = g.Board[from.Row][from.Col]
    g.Board[from.Row][from.Col] = NoPiece
    if capture {
        g.Board[(from.Row+p.Row)/2][(from.Col+p.Col)/2] = NoPiece
    }
    g.Turn = g.Turn.opponent()

    // Captures are the only way pieces leave the board, but the scan is
    // cheap enough to run after every move.
    switch {
    case g.Count(White) == 0:
        g.Winner, g.State = Black, Won
    case g.Count(Black) == 0:
        g.Winner, g.State = White, Won
    }
    return g, true
}

// legal reports whether the current player may move from -> to, and
// whether that move is a capture.
func (g Checkers) legal(from, to Position) (capture bool, ok bool) {
    if g.Board[to.Row][to.Col] != NoPiece {
        return false, false
    }
    dr, dc := to.Row-from.Row, to.Col-from.Col
    if dc < 0 {
        dc = -dc
    }
    fwd := g.Turn.forward()
    switch {
    case dc == 1 && dr == fwd:
        return false, true
    case dc == 2 && dr == 2*fwd:
        mid := g.Board[(from.Row+to.Row)/2][(from.Col+to.Col)/2]
        return true, mid == g.Turn.opponent()
    }
    return false, false
}

// Count returns the number of p pieces on the board.
func (g Checkers) Count(p Piece) int {
    n := 0
    for _, row := range g.Board {
        for _, sq := range row {
            if sq == p {
                n++
            }
        }
    }
    return n
}

// Apply accepts cell events only.
func (g Checkers) Apply(ev Event, _ Rand) (Engine, bool) {
    if ev.Kind != EventCell {
        return g, false
    }
    return g.Click(ev.Pos)
}

// Status reports the match state.
func (g Checkers) Status() Status { return g.State }

// String prints the board with 'b', 'w' and '.'.
func (g Checkers) String() string {
    var b strings.Builder
    for _, row := range g.Board {
        for _, sq := range row {
            switch sq {
            case Black:
                b.WriteByte('b')
            case White:
                b.WriteByte('w')
            default:
                b.WriteByte('.')
            }
        }
        b.WriteByte('\n')
    }
    return b.String()
}
