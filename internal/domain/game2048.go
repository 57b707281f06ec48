package domain

import (
    "fmt"
    "strconv"
    "strings"
)

const tiles = 4

// Tiles is the 4x4 2048 grid; 0 marks an empty cell.
type Tiles [tiles][tiles]int

// Game2048 holds the board, the running score and the game-over flag.
type Game2048 struct {
    Board Tiles  `json:"board"`
    Score int    `json:"score"`
    State Status `json:"status"`
}

// New2048 returns a board with two spawned tiles.
func New2048(rnd Rand) Game2048 {
    var g Game2048
    g.Board = spawn(spawn(g.Board, rnd), rnd)
    return g
}

// Load2048 builds a game from an explicit grid. Anything other than 4 rows of
// 4 cells holding 0 or a power of two from 2 up is rejected.
func Load2048(rows [][]int, score int) (Game2048, error) {
    var g Game2048
    if len(rows) != tiles {
        return g, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidConfig, tiles, len(rows))
    }
    for r, row := range rows {
        if len(row) != tiles {
            return g, fmt.Errorf("%w: row %d has %d cells", ErrInvalidConfig, r, len(row))
        }
        for c, v := range row {
            if v != 0 && (v < 2 || v&(v-1) != 0) {
                return g, fmt.Errorf("%w: tile %d at (%d,%d)", ErrInvalidConfig, v, r, c)
            }
            g.Board[r][c] = v
        }
    }
    if score < 0 {
        return g, fmt.Errorf("%w: negative score", ErrInvalidConfig)
    }
    g.Score = score
    if gameOver(g.Board) {
        g.State = Over
    }
    return g, nil
}

// quarterTurns maps a direction to the clockwise rotations that turn it
// into a slide to the left.
var quarterTurns = map[Direction]int{Left: 0, Down: 1, Right: 2, Up: 3}

// Slide moves every tile toward d. A move that changes nothing is rejected
// without spawning a tile.
func (g Game2048) Slide(d Direction, rnd Rand) (Game2048, bool) {
    turns, ok := quarterTurns[d]
    if g.State.Terminal() || !ok {
        return g, false
    }

    b := rotate(g.Board, turns)
    moved := false
    gained := 0
    for i, row := range b {
        next, pts := slideRow(row)
        if next != row {
            moved = true
        }
        b[i] = next
        gained += pts
    }
    if !moved {
        return g, false
    }

    g.Board = spawn(rotate(b, (4-turns)%4), rnd)
    g.Score += gained
    if gameOver(g.Board) {
        g.State = Over
    }
    return g, true
}

// slideRow compacts a row to the left and merges equal neighbours once,
// returning the new row and the points earned.
func slideRow(row [tiles]int) ([tiles]int, int) {
    var out [tiles]int
    n, pts := 0, 0
    merged := false
    for _, v := range row {
        if v == 0 {
            continue
        }
        if n > 0 && !merged && out[n-1] == v {
            out[n-1] *= 2
            pts += out[n-1]
            merged = true
            continue
        }
        out[n] = v
        n++
        merged = false
    }
    return out, pts
}

// rotate turns b clockwise k quarter turns.
func rotate(b Tiles, k int) Tiles {
    for ; k > 0; k-- {
        var out Tiles
        for i := 0; i < tiles; i++ {
            for j := 0; j < tiles; j++ {
                out[i][j] = b[tiles-1-j][i]
            }
        }
        b = out
    }
    return b
}

// spawn puts a 2 (90%) or a 4 on a random empty cell. A full board is
// returned as is.
func spawn(b Tiles, rnd Rand) Tiles {
    var empty []Position
    for r := range b {
        for c := range b[r] {
            if b[r][c] == 0 {
                empty = append(empty, Position{Row: r, Col: c})
            }
        }
    }
    if len(empty) == 0 {
        return b
    }
    p := empty[rnd.IntN(len(empty))]
    v := 4
    if rnd.Float64() < 0.9 {
        v = 2
    }
    b[p.Row][p.Col] = v
    return b
}

func gameOver(b Tiles) bool {
    for r := 0; r < tiles; r++ {
        for c := 0; c < tiles; c++ {
            v := b[r][c]
            if v == 0 {
                return false
            }
            if r < tiles-1 && b[r+1][c] == v {
                return false
            }
            if c < tiles-1 && b[r][c+1] == v {
                return false
            }
        }
    }
    return true
}

// Apply accepts direction events only.
func (g Game2048) Apply(ev Event, rnd Rand) (Engine, bool) {
    if ev.Kind != EventDirection {
        return g, false
    }
    return g.Slide(ev.Dir, rnd)
}

// Status is InProgress until no slide can change the board.
func (g Game2048) Status() Status { return g.State }

// String prints the grid right-aligned, one row per line, '.' for empty.
func (g Game2048) String() string {
    var b strings.Builder
    for _, row := range g.Board {
        for c, v := range row {
            if c > 0 {
                b.WriteByte(' ')
            }
            cell := "."
            if v != 0 {
                cell = strconv.Itoa(v)
            }
            fmt.Fprintf(&b, "%4s", cell)
        }
        b.WriteByte('\n')
    }
    return b.String()
}
