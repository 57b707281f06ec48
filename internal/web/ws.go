package web

import (
    "context"
    "fmt"
    "net/http"
    "strings"
    "sync"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/gorilla/websocket"
    "github.com/rs/zerolog/hlog"

    "github.com/jaminalder/codex-arcade/internal/app"
    "github.com/jaminalder/codex-arcade/internal/domain"
)

const writeWait = 5 * time.Second

// wsMessage is a client command on the websocket. Type is one of cell,
// move, pause or restart.
type wsMessage struct {
    Type string `json:"type"`
    Row  int    `json:"row"`
    Col  int    `json:"col"`
    Dir  string `json:"dir"`
}

func (m wsMessage) event() (domain.Event, error) {
    switch m.Type {
    case "cell":
        return domain.Cell(domain.Position{Row: m.Row, Col: m.Col}), nil
    case "move":
        d, ok := domain.ParseDirection(strings.ToLower(m.Dir))
        if !ok {
            return domain.Event{}, fmt.Errorf("%w: direction %q", errBadInput, m.Dir)
        }
        return domain.Move(d), nil
    case "pause":
        return domain.Pause(), nil
    }
    return domain.Event{}, fmt.Errorf("%w: type %q", errBadInput, m.Type)
}

type wsError struct {
    Error string `json:"error"`
}

// socket streams JSON snapshots of a game and accepts commands on the same
// connection.
func (h *handlers) socket(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    conn, err := h.upgrader.Upgrade(w, r, nil)
    if err != nil {
        // Upgrade already replied
        hlog.FromRequest(r).Debug().Err(err).Msg("websocket upgrade")
        return
    }
    defer conn.Close()

    ctx, cancel := context.WithCancel(r.Context())
    defer cancel()
    ch, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        return
    }
    defer unsub()

    var mu sync.Mutex
    write := func(v any) error {
        mu.Lock()
        defer mu.Unlock()
        _ = conn.SetWriteDeadline(time.Now().Add(writeWait))
        return conn.WriteJSON(v)
    }
    snapshot := func() error {
        gs, ok := h.svc.Get(id)
        if !ok {
            return app.ErrNotFound
        }
        return write(gs)
    }
    if err := snapshot(); err != nil {
        return
    }

    go func() {
        defer conn.Close()
        for {
            select {
            case <-ctx.Done():
                return
            case _, ok := <-ch:
                if !ok {
                    mu.Lock()
                    _ = conn.WriteControl(websocket.CloseMessage,
                        websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream ended"),
                        time.Now().Add(writeWait))
                    mu.Unlock()
                    return
                }
                if err := snapshot(); err != nil {
                    return
                }
            }
        }
    }()

    for {
        var msg wsMessage
        if err := conn.ReadJSON(&msg); err != nil {
            return
        }
        if msg.Type == "restart" {
            _, err = h.svc.Restart(ctx, id)
        } else {
            var ev domain.Event
            if ev, err = msg.event(); err == nil {
                _, err = h.svc.Input(ctx, id, ev)
            }
        }
        if err != nil {
            if werr := write(wsError{Error: err.Error()}); werr != nil {
                return
            }
        }
    }
}
