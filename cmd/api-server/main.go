package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/psylabs/art-finder/internal/download"
	"github.com/psylabs/art-finder/internal/logstream"
	"github.com/psylabs/art-finder/internal/museum"
	"github.com/psylabs/art-finder/internal/search"
	"github.com/psylabs/art-finder/internal/session"
	"github.com/psylabs/art-finder/pkg/utils"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	cfg := utils.LoadServerConfig()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Adapter log events go both to the process log and to the streaming
	// debug console.
	hub := logstream.NewHub()
	adapterLog := func(level, message string) {
		hub.Log(level, message)
		switch level {
		case museum.LevelError:
			log.Error().Msg(message)
		case museum.LevelWarn:
			log.Warn().Msg(message)
		default:
			log.Info().Msg(message)
		}
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "log_clients": hub.Clients()})
	})

	router.GET("/ws/logs", logstream.WSHandler(hub))
	router.GET("/logs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"entries": hub.Recent()})
	})

	searchHandler := search.NewHandler(museum.Resolve, adapterLog, cfg.FetchTimeout)
	searchHandler.RegisterRoutes(router.Group(""))

	sessionHandler := session.NewHandler(
		session.NewStore(),
		searchHandler,
		download.NewFetcher(cfg.ImageTimeout),
	)
	sessionHandler.RegisterRoutes(router.Group(""))

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("art finder API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	log.Info().Msg("server stopped")
}
