// Command mockcatalog runs the in-memory catalog backend double. It is
// meant for local development of the console and for manual testing of
// the session flows (expired tokens yield real 401s).
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ia-technology/catalog-console/internal/infrastructure/config"
	"github.com/ia-technology/catalog-console/internal/mockcatalog"
	"github.com/ia-technology/catalog-console/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env == "development", nil)

	server := mockcatalog.NewServer(cfg.Mock.JWTSecret, cfg.Mock.TokenTTL)
	e := server.NewRouter()

	go func() {
		log.Info().Str("port", cfg.Mock.Port).Msg("mock catalog backend listening")
		if err := e.Start(":" + cfg.Mock.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
