package main

import (
    "context"
    "errors"
    "net"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"

    "github.com/jaminalder/codex-arcade/internal/app"
    "github.com/jaminalder/codex-arcade/internal/config"
    "github.com/jaminalder/codex-arcade/internal/store"
    "github.com/jaminalder/codex-arcade/internal/web"
)

func main() {
    _ = godotenv.Load()
    cfg, err := config.Load()
    if err != nil {
        log.Fatal().Err(err).Msg("load config")
    }

    if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
        zerolog.SetGlobalLevel(lvl)
    }
    logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
    if cfg.Development() {
        logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
    }
    log.Logger = logger

    scores, err := openScores(cfg.DatabasePath)
    if err != nil {
        logger.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("open best scores")
    }
    defer scores.Close()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    svc := app.NewService(scores, app.WithLogger(logger.With().Str("component", "app").Logger()))
    srv := &http.Server{
        Addr:              cfg.Addr(),
        Handler:           web.NewServer(svc, web.Options{Logger: logger, Heartbeat: cfg.HeartbeatInterval}),
        ReadHeaderTimeout: 10 * time.Second,
        // streams end with the process context
        BaseContext: func(net.Listener) context.Context { return ctx },
    }

    errc := make(chan error, 1)
    go func() {
        logger.Info().Str("addr", srv.Addr).Str("env", cfg.Environment).Msg("starting arcade")
        errc <- srv.ListenAndServe()
    }()

    select {
    case err := <-errc:
        if !errors.Is(err, http.ErrServerClosed) {
            logger.Error().Err(err).Msg("server exited")
        }
        return
    case <-ctx.Done():
    }

    logger.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error().Err(err).Msg("shutdown")
    }
}

// openScores picks SQLite when a path is configured and process memory
// otherwise.
func openScores(path string) (store.BestScores, error) {
    if path == "" {
        return store.NewMemory(), nil
    }
    return store.OpenSQLite(path)
}
