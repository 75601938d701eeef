package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/teambuilder-backend/internal/goroutine"
	"github.com/ignatzorin/teambuilder-backend/internal/http/handlers"
	"github.com/ignatzorin/teambuilder-backend/internal/http/router"
	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/scheduler"
	"github.com/ignatzorin/teambuilder-backend/internal/service"
	"github.com/ignatzorin/teambuilder-backend/internal/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP и WebSocket сервер",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := logger.Get()
	cfg := a.cfg

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	hub := ws.NewHub(ctx)
	goroutine.SafeGo("ws-hub", hub.Run)

	teamService := service.NewTeamService(a.teams, a.candidates, hub, cfg.MaxTeamsPerOwner)
	seedService, err := service.NewSeedService(a.profiles, a.afterImport)
	if err != nil {
		return err
	}
	if !cfg.IsProduction() {
		seedIfEmpty(ctx, a.profiles, seedService)
	}

	sched := scheduler.New(a.candidates, cfg.FilterOptionsRefresh)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	engine, err := router.SetupRouter(cfg, router.Handlers{
		Health:    handlers.NewHealthHandler(a.db),
		Candidate: handlers.NewCandidateHandler(a.candidates),
		Team:      handlers.NewTeamHandler(teamService, cfg.MaxTeamsPerOwner),
		Dashboard: handlers.NewDashboardHandler(a.candidates, teamService),
		WS:        handlers.NewWSHandler(hub, tokens, a.candidates, cfg.SearchDebounce, cfg.AllowedOrigins),
		Seed:      handlers.NewSeedHandler(seedService),
		Token:     handlers.NewTokenHandler(tokens),
	}, tokens)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("http-shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithField("error", err.Error()).Error("main: ошибка остановки http сервера")
		}
	})

	log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type profileCounter interface {
	Count(ctx context.Context) (int, error)
}

// seedIfEmpty загружает демонстрационных кандидатов в пустую базу.
func seedIfEmpty(ctx context.Context, profiles profileCounter, seeder *service.SeedService) {
	log := logger.Get()
	n, err := profiles.Count(ctx)
	if err != nil {
		log.WithField("error", err.Error()).Warn("main: не удалось посчитать профили")
		return
	}
	if n > 0 {
		return
	}
	imported, err := seeder.SeedDefault(ctx)
	if err != nil {
		log.WithField("error", err.Error()).Error("main: не удалось загрузить демонстрационные профили")
		return
	}
	log.WithField("imported", imported).Info("main: загружены демонстрационные профили")
}
