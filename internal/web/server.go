package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/gorilla/websocket"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/hlog"

    "github.com/jaminalder/codex-arcade/internal/app"
)

// Options tunes the HTTP layer.
type Options struct {
    Logger    zerolog.Logger
    Heartbeat time.Duration
}

// NewServer wires routes and returns an http.Handler. It also installs the
// board renderer used for pushed updates.
func NewServer(s *app.Service, opts Options) http.Handler {
    if opts.Heartbeat <= 0 {
        opts.Heartbeat = 15 * time.Second
    }
    h := &handlers{
        svc:       s,
        tpl:       loadTemplates(),
        heartbeat: opts.Heartbeat,
        upgrader: websocket.Upgrader{
            ReadBufferSize:  1024,
            WriteBufferSize: 1024,
        },
    }
    s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

    r := chi.NewRouter()
    r.Use(chimw.RealIP)
    r.Use(hlog.NewHandler(opts.Logger))
    r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
    r.Use(hlog.RemoteAddrHandler("ip"))
    r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
        hlog.FromRequest(r).Debug().
            Str("method", r.Method).
            Stringer("url", r.URL).
            Int("status", status).
            Int("size", size).
            Dur("duration", d).
            Msg("request")
    }))
    r.Use(chimw.Recoverer)

    r.Get("/", h.index)
    r.Post("/game", h.create)
    r.Get("/best/{theme}/{difficulty}", h.best)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Delete("/", h.remove)
        r.Get("/state", h.state)
        r.Post("/input", h.input)
        r.Post("/restart", h.restart)
        r.Get("/events", h.events)
        r.Get("/ws", h.socket)
    })
    return r
}
