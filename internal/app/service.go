package app

import (
    "context"
    "errors"
    "fmt"
    "math/rand/v2"
    "sync"
    "time"

    "github.com/benbjohnson/clock"
    "github.com/google/uuid"
    "github.com/rs/zerolog"

    "github.com/jaminalder/codex-arcade/internal/catalog"
    "github.com/jaminalder/codex-arcade/internal/domain"
    "github.com/jaminalder/codex-arcade/internal/store"
)

// Errors exposed by the service layer.
var (
    ErrNotFound    = errors.New("game not found")
    ErrUnknownKind = errors.New("unknown game kind")
)

// scoreTimeout bounds best-score writes made from timer callbacks.
const scoreTimeout = 5 * time.Second

// Options carries the creation parameters a kind needs. Only memory games
// read them.
type Options struct {
    Theme      string
    Difficulty catalog.Difficulty
}

// GameState is the snapshot of one session handed to the shell.
type GameState struct {
    ID         string             `json:"id"`
    Kind       domain.Kind        `json:"kind"`
    Theme      string             `json:"theme,omitempty"`
    Difficulty catalog.Difficulty `json:"difficulty,omitempty"`
    Best       int                `json:"best,omitempty"`
    Game       domain.Engine      `json:"game"`
    Created    time.Time          `json:"created"`
    Updated    time.Time          `json:"updated"`
}

// session owns one engine instance and the timers bound to it. gen changes
// on every restart and on close; scheduled work carrying an older gen is
// dropped.
type session struct {
    mu     sync.Mutex
    state  GameState
    rnd    domain.Rand
    gen    uint64
    closed bool
    stop   context.CancelFunc
    revert *clock.Timer
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages game sessions, their timers and subscribers.
type Service struct {
    mu      sync.Mutex
    games   map[string]*session
    subs    map[string]map[*subscriber]struct{}
    render  func(GameState) []byte
    clock   clock.Clock
    scores  store.BestScores
    log     zerolog.Logger
    newRand func() domain.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock driving ticks and delays.
func WithClock(c clock.Clock) Option { return func(s *Service) { s.clock = c } }

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithRand sets the factory for per-session random sources.
func WithRand(f func() domain.Rand) Option { return func(s *Service) { s.newRand = f } }

// WithRenderer sets the broadcast renderer.
func WithRenderer(r func(GameState) []byte) Option { return func(s *Service) { s.setRenderer(r) } }

// NewService creates a service persisting best scores to scores.
func NewService(scores store.BestScores, opts ...Option) *Service {
    s := &Service{
        games:  make(map[string]*session),
        subs:   make(map[string]map[*subscriber]struct{}),
        render: func(GameState) []byte { return nil },
        clock:  clock.New(),
        scores: scores,
        log:    zerolog.Nop(),
        newRand: func() domain.Rand {
            return domain.NewRand(rand.Uint64())
        },
    }
    for _, o := range opts {
        o(s)
    }
    return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.setRenderer(renderer)
}

func (s *Service) setRenderer(renderer func(GameState) []byte) {
    if renderer == nil {
        s.render = func(GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

// CreateGame starts a new session of kind and its timers.
func (s *Service) CreateGame(ctx context.Context, kind domain.Kind, opts Options) (*GameState, error) {
    sess := &session{rnd: s.newRand()}
    game, err := newEngine(kind, opts, sess.rnd)
    if err != nil {
        return nil, err
    }
    now := s.clock.Now()
    sess.state = GameState{
        ID:      uuid.NewString(),
        Kind:    kind,
        Game:    game,
        Created: now,
        Updated: now,
    }
    if kind == domain.KindMemory {
        sess.state.Theme, sess.state.Difficulty = opts.Theme, opts.Difficulty
        sess.state.Best = s.lookupBest(ctx, sess.state)
    }

    s.mu.Lock()
    s.games[sess.state.ID] = sess
    s.mu.Unlock()

    sess.mu.Lock()
    defer sess.mu.Unlock()
    s.startLocked(sess)
    s.log.Info().Str("game", sess.state.ID).Str("kind", string(kind)).Msg("game created")
    cp := sess.state
    return &cp, nil
}

func newEngine(kind domain.Kind, opts Options, rnd domain.Rand) (domain.Engine, error) {
    switch kind {
    case domain.KindTicTacToe:
        return domain.NewTicTacToe(), nil
    case domain.KindCheckers:
        return domain.NewCheckers(), nil
    case domain.Kind2048:
        return domain.New2048(rnd), nil
    case domain.KindSnake:
        return domain.NewSnake(rnd), nil
    case domain.KindMemory:
        cfg, err := catalog.MemoryConfig(opts.Theme, opts.Difficulty)
        if err != nil {
            return nil, err
        }
        return domain.NewMemory(cfg, rnd)
    }
    return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    sess, ok := s.lookup(id)
    if !ok {
        return nil, false
    }
    sess.mu.Lock()
    defer sess.mu.Unlock()
    if sess.closed {
        return nil, false
    }
    cp := sess.state
    return &cp, true
}

// Input feeds one shell event to the session's engine. Rejected events are
// not errors; the unchanged state is returned. Tick and revert events belong
// to the timers and are ignored here.
func (s *Service) Input(ctx context.Context, id string, ev domain.Event) (*GameState, error) {
    sess, ok := s.lookup(id)
    if !ok {
        return nil, ErrNotFound
    }
    sess.mu.Lock()
    defer sess.mu.Unlock()
    if sess.closed {
        return nil, ErrNotFound
    }
    if ev.Kind != domain.EventTick && ev.Kind != domain.EventRevert {
        s.applyLocked(ctx, sess, ev)
    }
    cp := sess.state
    return &cp, nil
}

// Restart replaces the session's game with a fresh one of the same kind and
// discards every pending timer of the old one.
func (s *Service) Restart(ctx context.Context, id string) (*GameState, error) {
    sess, ok := s.lookup(id)
    if !ok {
        return nil, ErrNotFound
    }
    sess.mu.Lock()
    defer sess.mu.Unlock()
    if sess.closed {
        return nil, ErrNotFound
    }
    opts := Options{Theme: sess.state.Theme, Difficulty: sess.state.Difficulty}
    game, err := newEngine(sess.state.Kind, opts, sess.rnd)
    if err != nil {
        return nil, err
    }
    s.stopLocked(sess)
    sess.state.Game = game
    sess.state.Updated = s.clock.Now()
    if sess.state.Kind == domain.KindMemory {
        sess.state.Best = s.lookupBest(ctx, sess.state)
    }
    s.startLocked(sess)
    s.broadcastLocked(sess)
    s.log.Debug().Str("game", id).Msg("game restarted")
    cp := sess.state
    return &cp, nil
}

// Close stops the session's timers, closes its subscribers and forgets it.
func (s *Service) Close(id string) error {
    s.mu.Lock()
    sess, ok := s.games[id]
    subs := s.subs[id]
    delete(s.games, id)
    delete(s.subs, id)
    s.mu.Unlock()
    if !ok {
        return ErrNotFound
    }

    sess.mu.Lock()
    sess.closed = true
    sess.gen++
    s.stopLocked(sess)
    sess.mu.Unlock()

    for sub := range subs {
        sub.close()
    }
    s.log.Debug().Str("game", id).Msg("game closed")
    return nil
}

// BestScore returns the stored best move count for a memory theme and
// difficulty.
func (s *Service) BestScore(ctx context.Context, theme string, d catalog.Difficulty) (int, bool, error) {
    if _, err := catalog.FindTheme(theme); err != nil {
        return 0, false, err
    }
    if _, err := d.Lookup(); err != nil {
        return 0, false, err
    }
    return s.scores.Best(ctx, store.Key(theme, string(d)))
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.games[id]; !ok {
        return nil, nil, ErrNotFound
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, 8)}
    set[sub] = struct{}{}

    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
            }
            s.mu.Unlock()
            sub.close()
        })
    }
    go func() {
        <-ctx.Done()
        unsub()
    }()
    return sub.ch, unsub, nil
}

func (s *Service) lookup(id string) (*session, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sess, ok := s.games[id]
    return sess, ok
}

func (s *Service) lookupBest(ctx context.Context, st GameState) int {
    best, ok, err := s.scores.Best(ctx, store.Key(st.Theme, string(st.Difficulty)))
    if err != nil {
        s.log.Error().Err(err).Str("game", st.ID).Msg("load best score")
        return 0
    }
    if !ok {
        return 0
    }
    return best
}

// applyLocked runs ev through the engine and handles the consequences of an
// accepted transition: the memory revert delay, terminal clean-up and the
// broadcast.
func (s *Service) applyLocked(ctx context.Context, sess *session, ev domain.Event) bool {
    prev := sess.state.Game.Status()
    next, ok := sess.state.Game.Apply(ev, sess.rnd)
    if !ok {
        return false
    }
    sess.state.Game = next
    sess.state.Updated = s.clock.Now()

    if m, isMemory := next.(domain.Memory); isMemory && ev.Kind == domain.EventCell && m.Mismatched() {
        gen := sess.gen
        sess.revert = s.clock.AfterFunc(domain.RevertDelay, func() {
            s.fire(sess, gen, domain.Revert())
        })
    }
    if !prev.Terminal() && next.Status().Terminal() {
        s.finishLocked(ctx, sess)
    }
    s.broadcastLocked(sess)
    return true
}

// finishLocked tears down the timers of a game that just ended and records
// a memory win.
func (s *Service) finishLocked(ctx context.Context, sess *session) {
    s.stopLocked(sess)
    st := sess.state
    s.log.Info().Str("game", st.ID).Str("kind", string(st.Kind)).
        Stringer("status", st.Game.Status()).Msg("game finished")

    m, ok := st.Game.(domain.Memory)
    if !ok || m.State != domain.Won {
        return
    }
    key := store.Key(st.Theme, string(st.Difficulty))
    improved, err := s.scores.Record(ctx, key, m.Moves)
    if err != nil {
        s.log.Error().Err(err).Str("key", key).Msg("record best score")
        return
    }
    if improved {
        sess.state.Best = m.Moves
        s.log.Info().Str("key", key).Int("moves", m.Moves).Msg("new best score")
    }
}

// fire delivers a timer event. It returns false once the caller should stop
// scheduling: the session is gone, restarted, or finished.
func (s *Service) fire(sess *session, gen uint64, ev domain.Event) bool {
    sess.mu.Lock()
    defer sess.mu.Unlock()
    if sess.closed || sess.gen != gen {
        return false
    }
    if ev.Kind == domain.EventRevert {
        sess.revert = nil
    }
    ctx, cancel := context.WithTimeout(context.Background(), scoreTimeout)
    defer cancel()
    s.applyLocked(ctx, sess, ev)
    return !sess.state.Game.Status().Terminal()
}

// tickPeriod is the periodic timer a kind needs, or 0 for none.
func tickPeriod(kind domain.Kind) time.Duration {
    switch kind {
    case domain.KindSnake:
        return domain.SnakeTick
    case domain.KindMemory:
        return domain.ClockPeriod
    }
    return 0
}

// startLocked opens a new generation and starts its periodic timer.
func (s *Service) startLocked(sess *session) {
    sess.gen++
    period := tickPeriod(sess.state.Kind)
    if period == 0 || sess.state.Game.Status().Terminal() {
        return
    }
    ctx, cancel := context.WithCancel(context.Background())
    sess.stop = cancel
    ticker := s.clock.Ticker(period)
    go s.loop(ctx, sess, sess.gen, ticker)
}

func (s *Service) loop(ctx context.Context, sess *session, gen uint64, ticker *clock.Ticker) {
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if !s.fire(sess, gen, domain.Tick()) {
                return
            }
        }
    }
}

// stopLocked cancels the periodic timer and any pending revert.
func (s *Service) stopLocked(sess *session) {
    if sess.stop != nil {
        sess.stop()
        sess.stop = nil
    }
    if sess.revert != nil {
        sess.revert.Stop()
        sess.revert = nil
    }
}

// broadcastLocked fans the current snapshot out; slow subscribers are dropped.
func (s *Service) broadcastLocked(sess *session) {
    s.mu.Lock()
    defer s.mu.Unlock()
    set := s.subs[sess.state.ID]
    if len(set) == 0 {
        return
    }
    payload := s.render(sess.state)
    for sub := range set {
        select {
        case sub.ch <- payload:
        default:
            // drop slow subscriber
            sub.close()
            delete(set, sub)
        }
    }
}
