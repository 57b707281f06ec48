package domain

import (
    "testing"
)

// helper to apply a sequence of moves
func playMoves(t *testing.T, g *TicTacToe, moves [][2]int) {
    t.Helper()
    for i, m := range moves {
        next, ok := g.Play(Position{Row: m[0], Col: m[1]})
        if !ok {
            t.Fatalf("move %d (%v) rejected", i, m)
        }
        *g = next
    }
}

func TestNewGameInitialState(t *testing.T) {
    g := NewTicTacToe()
    if g.Turn != X {
        t.Fatalf("expected initial turn X, got %v", g.Turn)
    }
    if g.Moves != 0 {
        t.Fatalf("expected 0 moves, got %d", g.Moves)
    }
    if g.State != InProgress {
        t.Fatalf("expected game in progress, got %v", g.State)
    }
    if g.Winner != Empty {
        t.Fatalf("expected no winner, got %v", g.Winner)
    }
    for i, c := range g.Board {
        if c != Empty {
            t.Fatalf("expected empty board, cell %d = %v", i, c)
        }
    }
}

func TestPlayOutOfBoundsIsNoop(t *testing.T) {
    g := NewTicTacToe()
    cases := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}}
    for _, m := range cases {
        next, ok := g.Play(Position{Row: m[0], Col: m[1]})
        if ok || next != g {
            t.Fatalf("expected %v to be ignored, got ok=%v", m, ok)
        }
    }
}

func TestPlayOccupiedIsNoop(t *testing.T) {
    g := NewTicTacToe()
    playMoves(t, &g, [][2]int{{0, 0}})
    next, ok := g.Play(Position{Row: 0, Col: 0})
    if ok {
        t.Fatalf("expected occupied cell to be rejected")
    }
    if next != g {
        t.Fatalf("rejected move changed the state: %+v vs %+v", next, g)
    }
}

func TestTurnFlipsAfterValidMove(t *testing.T) {
    g := NewTicTacToe()
    if g.Turn != X {
        t.Fatalf("expected X to start")
    }
    playMoves(t, &g, [][2]int{{1, 1}})
    if g.Turn != O {
        t.Fatalf("expected turn to flip to O, got %v", g.Turn)
    }
}

func TestWinConditionsForX(t *testing.T) {
    winningLines := [][][2]int{
        // rows
        {{0, 0}, {0, 1}, {0, 2}},
        {{1, 0}, {1, 1}, {1, 2}},
        {{2, 0}, {2, 1}, {2, 2}},
        // cols
        {{0, 0}, {1, 0}, {2, 0}},
        {{0, 1}, {1, 1}, {2, 1}},
        {{0, 2}, {1, 2}, {2, 2}},
        // diags
        {{0, 0}, {1, 1}, {2, 2}},
        {{0, 2}, {1, 1}, {2, 0}},
    }
    filler := [][2]int{{1, 2}, {2, 1}, {1, 0}, {2, 0}, {0, 2}, {0, 1}}
    for _, line := range winningLines {
        g := NewTicTacToe()
        seq := make([][2]int, 0, 5)
        // X, O, X, O, X on the line
        seq = append(seq, line[0])
        // choose O filler not on the line
        for _, f := range filler {
            if (f != line[0]) && (f != line[1]) && (f != line[2]) {
                seq = append(seq, f)
                break
            }
        }
        seq = append(seq, line[1])
        // another O filler not on the line and not same as previous filler
        for _, f := range filler {
            if (f != line[0]) && (f != line[1]) && (f != line[2]) && (f != seq[1]) {
                seq = append(seq, f)
                break
            }
        }
        seq = append(seq, line[2])

        playMoves(t, &g, seq)
        if g.State != Won || g.Winner != X {
            t.Fatalf("expected X to win on line %v; status=%v winner=%v", line, g.State, g.Winner)
        }
        if g.Moves != 5 {
            t.Fatalf("expected 5 moves to win, got %d", g.Moves)
        }
    }
}

func TestWinConditionsForO(t *testing.T) {
    winningLines := [][][2]int{
        // rows
        {{0, 0}, {0, 1}, {0, 2}},
        {{1, 0}, {1, 1}, {1, 2}},
        {{2, 0}, {2, 1}, {2, 2}},
        // cols
        {{0, 0}, {1, 0}, {2, 0}},
        {{0, 1}, {1, 1}, {2, 1}},
        {{0, 2}, {1, 2}, {2, 2}},
        // diags
        {{0, 0}, {1, 1}, {2, 2}},
        {{0, 2}, {1, 1}, {2, 0}},
    }
    // For O to win: X plays fillers, O plays the line cells.
    fillers := [][2]int{{1, 2}, {2, 1}, {1, 0}, {2, 0}, {0, 2}, {0, 1}, {2, 2}, {1, 1}}
    for _, line := range winningLines {
        g := NewTicTacToe()
        seq := make([][2]int, 0, 6)
        // X filler not on line
        var f1, f2, f3 [2]int
        found := 0
        for _, f := range fillers {
            if (f != line[0]) && (f != line[1]) && (f != line[2]) {
                switch found {
                case 0:
                    f1 = f
                case 1:
                    if f != f1 { f2 = f }
                case 2:
                    if f != f1 && f != f2 { f3 = f }
                }
                found++
                if found == 3 { break }
            }
        }
        seq = append(seq, f1)      // X
        seq = append(seq, line[0]) // O
        seq = append(seq, f2)      // X
        seq = append(seq, line[1]) // O
        seq = append(seq, f3)      // X
        seq = append(seq, line[2]) // O wins

        playMoves(t, &g, seq)
        if g.State != Won || g.Winner != O {
            t.Fatalf("expected O to win on line %v; status=%v winner=%v", line, g.State, g.Winner)
        }
        if g.Moves != 6 {
            t.Fatalf("expected 6 moves to win for O, got %d", g.Moves)
        }
    }
}

func TestDrawNoWinner(t *testing.T) {
    g := NewTicTacToe()
    // Draw pattern (no three in a row)
    seq := [][2]int{
        {0, 0}, {0, 1}, {0, 2},
        {1, 1}, {1, 0}, {1, 2},
        {2, 1}, {2, 0}, {2, 2},
    }
    playMoves(t, &g, seq)
    if g.State != Draw {
        t.Fatalf("expected draw, got %v", g.State)
    }
    if g.Winner != Empty {
        t.Fatalf("expected no winner on draw, got %v", g.Winner)
    }
    if g.Moves != 9 {
        t.Fatalf("expected 9 moves on draw, got %d", g.Moves)
    }
}

func TestGameOverBlocksFurtherMoves(t *testing.T) {
    g := NewTicTacToe()
    // X wins quickly on top row
    seq := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}}
    playMoves(t, &g, seq)
    if g.State != Won || g.Winner != X {
        t.Fatalf("expected X win before extra move")
    }
    // Further move should be blocked
    next, ok := g.Play(Position{Row: 2, Col: 2})
    if ok || next != g {
        t.Fatalf("expected move after game over to be ignored")
    }
}

func TestApplyIgnoresForeignEvents(t *testing.T) {
    g := NewTicTacToe()
    for _, ev := range []Event{Tick(), Pause(), Move(Up), Revert()} {
        next, ok := g.Apply(ev, nil)
        if ok || next.(TicTacToe) != g {
            t.Fatalf("expected %+v to be a no-op", ev)
        }
    }
    next, ok := g.Apply(Cell(Position{Row: 2, Col: 0}), nil)
    if !ok || next.(TicTacToe).Board[6] != X {
        t.Fatalf("expected cell event to place X at (2,0)")
    }
}

func TestString(t *testing.T) {
    g := NewTicTacToe()
    playMoves(t, &g, [][2]int{{0, 0}, {1, 1}})
    want := "X..\n.O.\n...\n"
    if got := g.String(); got != want {
        t.Fatalf("unexpected rendering %q", got)
    }
}

