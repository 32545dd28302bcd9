// tetoca-stub serves the demo fixture data over the real REST surface, so
// the client can be exercised end to end without the production backend.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tetoca/tetoca-go/internal/config"
	"github.com/tetoca/tetoca-go/internal/data/fixture"
	"github.com/tetoca/tetoca-go/internal/stub"
	"github.com/tetoca/tetoca-go/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "tetoca-stub").Logger()

	shutdownTracing := telemetry.Setup("tetoca-stub", logger)

	store := fixture.NewStore()
	router := stub.Router(store, logger, stub.Options{CORSAllowed: cfg.CORSAllowed})

	srv := &http.Server{
		Addr:    ":" + cfg.StubPort,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.StubPort).Msg("stub server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	_ = shutdownTracing(ctxShutdown)
	logger.Info().Msg("stub server stopped")
}
