package domain

import (
    "fmt"
    "strings"
    "time"
)

const (
    // RevertDelay is how long a mismatched pair stays face up.
    RevertDelay = time.Second
    // ClockPeriod is the countdown resolution.
    ClockPeriod = time.Second
)

// MemoryConfig selects the symbols and limits for one memory run.
type MemoryConfig struct {
    Symbols   []string
    Pairs     int
    TimeLimit time.Duration
}

func (c MemoryConfig) validate() error {
    if c.Pairs < 1 {
        return fmt.Errorf("%w: pairs must be positive, got %d", ErrInvalidConfig, c.Pairs)
    }
    if 2*c.Pairs%memoryCols != 0 {
        return fmt.Errorf("%w: %d cards do not fill rows of %d", ErrInvalidConfig, 2*c.Pairs, memoryCols)
    }
    if len(c.Symbols) < c.Pairs {
        return fmt.Errorf("%w: %d pairs need %d symbols, have %d", ErrInvalidConfig, c.Pairs, c.Pairs, len(c.Symbols))
    }
    if c.TimeLimit < ClockPeriod {
        return fmt.Errorf("%w: time limit %s below one second", ErrInvalidConfig, c.TimeLimit)
    }
    if c.TimeLimit%ClockPeriod != 0 {
        return fmt.Errorf("%w: time limit %s is not whole seconds", ErrInvalidConfig, c.TimeLimit)
    }
    seen := make(map[string]bool, c.Pairs)
    for _, s := range c.Symbols[:c.Pairs] {
        if s == "" {
            return fmt.Errorf("%w: empty symbol", ErrInvalidConfig)
        }
        if seen[s] {
            return fmt.Errorf("%w: duplicate symbol %q", ErrInvalidConfig, s)
        }
        seen[s] = true
    }
    return nil
}

// Card is one memory tile.
type Card struct {
    ID      int    `json:"id"`
    Symbol  string `json:"symbol"`
    FaceUp  bool   `json:"faceUp"`
    Matched bool   `json:"matched"`
}

// Memory is the state of one timed matching run.
type Memory struct {
    Cards     []Card `json:"cards"`
    Pending   []int  `json:"pending"`
    Moves     int    `json:"moves"`
    Remaining int    `json:"remaining"`
    State     Status `json:"status"`
}

// NewMemory deals 2*Pairs shuffled cards from the first Pairs symbols.
func NewMemory(cfg MemoryConfig, rnd Rand) (Memory, error) {
    if err := cfg.validate(); err != nil {
        return Memory{}, err
    }
    deck := make([]string, 0, 2*cfg.Pairs)
    deck = append(deck, cfg.Symbols[:cfg.Pairs]...)
    deck = append(deck, cfg.Symbols[:cfg.Pairs]...)
    for i := len(deck) - 1; i > 0; i-- {
        j := rnd.IntN(i + 1)
        deck[i], deck[j] = deck[j], deck[i]
    }
    cards := make([]Card, len(deck))
    for i, s := range deck {
        cards[i] = Card{ID: i, Symbol: s}
    }
    return Memory{
        Cards:     cards,
        Remaining: int(cfg.TimeLimit / ClockPeriod),
    }, nil
}

// Mismatched reports whether a failed pair is waiting to be turned back.
func (m Memory) Mismatched() bool { return len(m.Pending) == 2 }

// Flip turns card i face up. The second flip of a pair counts as a move and
// either locks the pair as matched or leaves both face up until Revert.
func (m Memory) Flip(i int) (Memory, bool) {
    if m.State.Terminal() || i < 0 || i >= len(m.Cards) || len(m.Pending) == 2 {
        return m, false
    }
    if m.Cards[i].Matched || m.Cards[i].FaceUp {
        return m, false
    }

    cards := append([]Card(nil), m.Cards...)
    cards[i].FaceUp = true
    m.Cards = cards
    if len(m.Pending) == 0 {
        m.Pending = []int{i}
        return m, true
    }

    first := m.Pending[0]
    m.Moves++
    if cards[first].Symbol != cards[i].Symbol {
        m.Pending = []int{first, i}
        return m, true
    }

    cards[first].Matched = true
    cards[i].Matched = true
    m.Pending = nil
    if allMatched(cards) {
        m.State = Won
    }
    return m, true
}

// Revert turns a mismatched pair face down again.
func (m Memory) Revert() (Memory, bool) {
    if m.State.Terminal() || !m.Mismatched() {
        return m, false
    }
    cards := append([]Card(nil), m.Cards...)
    for _, i := range m.Pending {
        cards[i].FaceUp = false
    }
    m.Cards = cards
    m.Pending = nil
    return m, true
}

// Countdown removes one second from the clock; reaching zero times the
// run out.
func (m Memory) Countdown() (Memory, bool) {
    if m.State.Terminal() {
        return m, false
    }
    m.Remaining--
    if m.Remaining <= 0 {
        m.Remaining = 0
        m.State = TimedOut
    }
    return m, true
}

func allMatched(cards []Card) bool {
    for _, c := range cards {
        if !c.Matched {
            return false
        }
    }
    return true
}

// Apply routes cell clicks to Flip, ticks to Countdown and revert events
// to Revert.
func (m Memory) Apply(ev Event, _ Rand) (Engine, bool) {
    switch ev.Kind {
    case EventCell:
        if !ev.Pos.in(len(m.Cards)/memoryCols, memoryCols) {
            return m, false
        }
        return m.Flip(ev.Pos.Row*memoryCols + ev.Pos.Col)
    case EventTick:
        return m.Countdown()
    case EventRevert:
        return m.Revert()
    }
    return m, false
}

// Status reports the run state.
func (m Memory) Status() Status { return m.State }

// memoryCols is the width of the card layout used for cell events and
// rendering.
const memoryCols = 4

// String draws the cards in rows of four, hidden ones as '#', followed by
// the move count and the remaining time.
func (m Memory) String() string {
    var b strings.Builder
    for i, c := range m.Cards {
        switch {
        case c.Matched, c.FaceUp:
            b.WriteString(c.Symbol)
        default:
            b.WriteByte('#')
        }
        if i%memoryCols == memoryCols-1 || i == len(m.Cards)-1 {
            b.WriteByte('\n')
        } else {
            b.WriteByte(' ')
        }
    }
    fmt.Fprintf(&b, "moves %d  time %d:%02d\n", m.Moves, m.Remaining/60, m.Remaining%60)
    return b.String()
}
