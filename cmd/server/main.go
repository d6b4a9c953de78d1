package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/jrsteele09/go-session-auth/server"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/sessions/repocache"
	"github.com/jrsteele09/go-session-auth/sessions/repoinmemory"
	"github.com/jrsteele09/go-session-auth/users/sqliterepo"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load() // .env is optional

	c := config.New()
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	displayAppname(c.GetAppName())

	ctx := context.Background()

	userRepo, err := sqliterepo.Open(ctx, c.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer userRepo.Close()

	sessionRepo, err := newSessionRepo(c)
	if err != nil {
		return fmt.Errorf("create session repo: %w", err)
	}

	sessionManager, err := sessions.NewManager(sessionRepo, userRepo, c.GetMaxSessionAge())
	if err != nil {
		return fmt.Errorf("create session manager: %w", err)
	}

	strategy, err := auth.NewLocalPassword(userRepo)
	if err != nil {
		return fmt.Errorf("create authentication strategy: %w", err)
	}

	handler, err := server.New(c, userRepo, strategy, sessionManager)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go purgeExpiredSessions(janitorCtx, sessionManager)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func purgeExpiredSessions(ctx context.Context, manager *sessions.Manager) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := manager.PurgeExpired(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to purge expired sessions")
			}
		}
	}
}

func newSessionRepo(c config.Config) (sessions.Repo, error) {
	if c.GetSessionBackend() == config.SessionBackendCache {
		return repocache.NewCacheSessionRepo(c.GetMaxSessionAge())
	}
	return repoinmemory.NewInMemorySessionRepo(), nil
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
