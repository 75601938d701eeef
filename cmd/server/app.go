package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"github.com/ignatzorin/teambuilder-backend/internal/config"
	"github.com/ignatzorin/teambuilder-backend/internal/db"
	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/migrations"
	"github.com/ignatzorin/teambuilder-backend/internal/repository"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
	"github.com/ignatzorin/teambuilder-backend/internal/service"
)

const redisNamespace = "teambuilder"

// app общие зависимости команд CLI.
type app struct {
	cfg        *config.Config
	db         *sqlx.DB
	redis      *redis.Client
	cache      service.Cache
	profiles   *repository.ProfileRepository
	teams      *repository.TeamRepository
	candidates *service.CandidateService
}

// bootstrap загружает конфигурацию, подключается к базе и применяет миграции.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("конфигурация: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("подключение к базе: %w", err)
	}
	if err := db.RunMigrations(ctx, conn, migrations.Files); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("миграции: %w", err)
	}

	a := &app{cfg: cfg, db: conn}

	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		a.redis = rdb
		a.cache = service.NewRedisCache(rdb, redisNamespace)
		logger.Get().Info("main: кэш фильтров в Redis")
	} else {
		a.cache = service.NewMemoryCache()
	}

	locale, err := language.Parse(cfg.SortLocale)
	if err != nil {
		logger.Get().WithField("locale", cfg.SortLocale).Warn("main: неизвестная локаль сортировки, используется en")
		locale = language.English
	}

	a.profiles = repository.NewProfileRepository(conn)
	a.teams = repository.NewTeamRepository(conn)
	engine := search.NewEngine(a.profiles, search.Config{
		PageSize: cfg.PageSize,
		Locale:   locale,
		Logger:   logger.Get(),
	})
	a.candidates = service.NewCandidateService(engine, a.profiles, a.cache, cfg.FilterOptionsTTL)

	return a, nil
}

// afterImport сбрасывает кэш и пересчитывает значения фильтров после загрузки профилей.
func (a *app) afterImport(ctx context.Context) {
	log := logger.Get()
	if err := a.candidates.InvalidateCache(ctx); err != nil {
		log.WithField("error", err.Error()).Warn("main: не удалось очистить кэш после импорта")
	}
	if _, err := a.candidates.RefreshFilterOptions(ctx); err != nil {
		log.WithField("error", err.Error()).Warn("main: не удалось пересчитать фильтры после импорта")
	}
}

func (a *app) close() {
	log := logger.Get()
	if mc, ok := a.cache.(*service.MemoryCache); ok {
		mc.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.WithField("error", err.Error()).Warn("main: ошибка закрытия redis")
		}
	}
	if err := a.db.Close(); err != nil {
		log.WithField("error", err.Error()).Warn("main: ошибка закрытия базы")
	}
}
