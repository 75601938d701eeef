package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/pkg/apperror"
	"github.com/ignatzorin/teambuilder-backend/internal/repository"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
)

// ProfileReader источник профилей для сервиса кандидатов.
type ProfileReader interface {
	search.ProfileStore
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
}

// CandidateService выдаёт страницы кандидатов и кэширует значения фильтров.
type CandidateService struct {
	engine   *search.Engine
	profiles ProfileReader
	cache    Cache
	ttl      time.Duration
	log      logrus.FieldLogger
}

// NewCandidateService создаёт сервис кандидатов.
func NewCandidateService(engine *search.Engine, profiles ProfileReader, cache Cache, ttl time.Duration) *CandidateService {
	return &CandidateService{
		engine:   engine,
		profiles: profiles,
		cache:    cache,
		ttl:      ttl,
		log:      logger.Get(),
	}
}

// WithLogger заменяет логгер сервиса.
func (s *CandidateService) WithLogger(log logrus.FieldLogger) *CandidateService {
	s.log = log
	return s
}

// PageSize размер страницы выдачи.
func (s *CandidateService) PageSize() int {
	return s.engine.PageSize()
}

// Page возвращает страницу кандидатов. Ошибки хранилища дают пустую страницу.
func (s *CandidateService) Page(ctx context.Context, page int, f models.FilterState, sel *search.SelectionSet) search.Page {
	return s.engine.FetchPage(ctx, page, f, sel)
}

// FilterOptions значения для выпадающих списков; кэш обновляется при промахе.
func (s *CandidateService) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	var opts models.FilterOptions
	found, err := s.cache.Get(ctx, filterOptionsCacheKey, &opts)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("candidates: не удалось прочитать кэш фильтров")
	}
	if found {
		return opts, nil
	}
	return s.RefreshFilterOptions(ctx)
}

// RefreshFilterOptions пересчитывает значения фильтров и кладёт их в кэш.
func (s *CandidateService) RefreshFilterOptions(ctx context.Context) (models.FilterOptions, error) {
	opts, err := s.engine.FilterOptions(ctx)
	if err != nil {
		return models.FilterOptions{}, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить значения фильтров")
	}
	if err := s.cache.Set(ctx, filterOptionsCacheKey, opts, s.ttl); err != nil {
		s.log.WithField("error", err.Error()).Warn("candidates: не удалось сохранить кэш фильтров")
	}
	return opts, nil
}

// InvalidateCache сбрасывает все кэшированные данные о кандидатах.
func (s *CandidateService) InvalidateCache(ctx context.Context) error {
	if err := s.cache.InvalidateByPrefix(ctx, cachePrefixCandidates); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось очистить кэш")
	}
	s.log.Info("candidates: кэш очищен")
	return nil
}

// Get возвращает профиль кандидата.
func (s *CandidateService) Get(ctx context.Context, id string) (*models.Candidate, error) {
	c, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperror.ErrCandidateNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось загрузить кандидата")
	}
	return c, nil
}

// ByIDs загружает кандидатов по списку id в порядке списка; ненайденные пропускаются.
func (s *CandidateService) ByIDs(ctx context.Context, ids []string) ([]models.Candidate, error) {
	if len(ids) == 0 {
		return []models.Candidate{}, nil
	}
	rows, _, err := s.profiles.QueryProfiles(ctx, models.ProfileQuery{
		Conditions: []models.Condition{{Field: "id", Op: models.OpIn, Values: ids}},
	})
	if err != nil {
		return nil, fmt.Errorf("candidates by ids: %w", err)
	}

	byID := make(map[string]models.Candidate, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}
	out := make([]models.Candidate, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
