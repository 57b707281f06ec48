package web

import (
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/gorilla/websocket"
    "github.com/rs/zerolog/hlog"

    "github.com/jaminalder/codex-arcade/internal/app"
    "github.com/jaminalder/codex-arcade/internal/catalog"
    "github.com/jaminalder/codex-arcade/internal/domain"
)

var errBadInput = errors.New("bad input")

type handlers struct {
    svc       *app.Service
    tpl       *templates
    heartbeat time.Duration
    upgrader  websocket.Upgrader
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
    return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

// statusFor maps service and catalogue errors onto HTTP codes.
func statusFor(err error) int {
    switch {
    case errors.Is(err, app.ErrNotFound):
        return http.StatusNotFound
    case errors.Is(err, app.ErrUnknownKind),
        errors.Is(err, catalog.ErrUnknownTheme),
        errors.Is(err, catalog.ErrUnknownDifficulty),
        errors.Is(err, errBadInput):
        return http.StatusBadRequest
    }
    return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.WriteHeader(code)
    _ = json.NewEncoder(w).Encode(v)
}

func writeFragment(w http.ResponseWriter, code int, b []byte) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(code)
    _, _ = w.Write(b)
}

// parseInput turns submitted form values into an engine event.
func parseInput(form url.Values) (domain.Event, error) {
    if form.Get("action") == "pause" {
        return domain.Pause(), nil
    }
    if s := form.Get("dir"); s != "" {
        d, ok := domain.ParseDirection(strings.ToLower(s))
        if !ok {
            return domain.Event{}, fmt.Errorf("%w: direction %q", errBadInput, s)
        }
        return domain.Move(d), nil
    }
    ri, err := strconv.Atoi(form.Get("r"))
    if err != nil {
        return domain.Event{}, fmt.Errorf("%w: row", errBadInput)
    }
    ci, err := strconv.Atoi(form.Get("c"))
    if err != nil {
        return domain.Event{}, fmt.Errorf("%w: col", errBadInput)
    }
    return domain.Cell(domain.Position{Row: ri, Col: ci}), nil
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    data := indexData{
        Games:        catalog.Games,
        Themes:       catalog.Themes,
        Difficulties: []catalog.Difficulty{catalog.Easy, catalog.Medium},
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.index, "", data))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    _ = r.ParseForm()
    kind := domain.Kind(r.Form.Get("kind"))
    if kind == "" {
        kind = domain.KindTicTacToe
    }
    opts := app.Options{
        Theme:      r.Form.Get("theme"),
        Difficulty: catalog.Difficulty(r.Form.Get("difficulty")),
    }
    if kind == domain.KindMemory && opts.Difficulty == "" {
        opts.Difficulty = catalog.Easy
    }
    gs, err := h.svc.CreateGame(r.Context(), kind, opts)
    if err != nil {
        hlog.FromRequest(r).Warn().Err(err).Str("kind", string(kind)).Msg("create game")
        http.Error(w, err.Error(), statusFor(err))
        return
    }
    http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    gs, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        http.NotFound(w, r)
        return
    }
    data := newBoardView(*gs, "")
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    // Render page with embedded board container
    _, _ = w.Write(renderTemplate(h.tpl.game, "", data))
}

func (h *handlers) input(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    _ = r.ParseForm()
    ev, err := parseInput(r.Form)
    if err != nil {
        gs, ok := h.svc.Get(id)
        if !ok {
            http.NotFound(w, r)
            return
        }
        writeFragment(w, http.StatusBadRequest, h.renderBoard(*gs, "Invalid input"))
        return
    }
    gs, err := h.svc.Input(r.Context(), id, ev)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }
    writeFragment(w, http.StatusOK, h.renderBoard(*gs, ""))
}

func (h *handlers) restart(w http.ResponseWriter, r *http.Request) {
    gs, err := h.svc.Restart(r.Context(), chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }
    writeFragment(w, http.StatusOK, h.renderBoard(*gs, ""))
}

func (h *handlers) remove(w http.ResponseWriter, r *http.Request) {
    if err := h.svc.Close(chi.URLParam(r, "id")); err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
    gs, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
        return
    }
    writeJSON(w, http.StatusOK, gs)
}

type bestRes struct {
    Theme      string             `json:"theme"`
    Difficulty catalog.Difficulty `json:"difficulty"`
    Moves      int                `json:"moves,omitempty"`
    Found      bool               `json:"found"`
}

func (h *handlers) best(w http.ResponseWriter, r *http.Request) {
    theme := chi.URLParam(r, "theme")
    d := catalog.Difficulty(chi.URLParam(r, "difficulty"))
    moves, ok, err := h.svc.BestScore(r.Context(), theme, d)
    if err != nil {
        writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
        return
    }
    writeJSON(w, http.StatusOK, bestRes{Theme: theme, Difficulty: d, Moves: moves, Found: ok})
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        w.WriteHeader(http.StatusNotFound)
        return
    }
    defer unsub()
    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    // Initial flush of headers
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok {
                return
            }
            writeEvent(w, "board", b)
            flusher.Flush()
        }
    }
}

// writeEvent emits one SSE event; every payload line needs its own data
// prefix.
func writeEvent(w io.Writer, name string, payload []byte) {
    _, _ = fmt.Fprintf(w, "event: %s\n", name)
    for _, line := range strings.Split(strings.TrimSpace(string(payload)), "\n") {
        _, _ = fmt.Fprintf(w, "data: %s\n", line)
    }
    _, _ = io.WriteString(w, "\n")
}
