// Package search реализует выборку кандидатов: фильтры, сортировку, пагинацию
// и выбор между серверной и клиентской пагинацией.
package search

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

// DefaultPageSize размер страницы, если не задан в конфигурации.
const DefaultPageSize = 9

// Strategy способ получения страницы.
type Strategy string

const (
	// StrategyServer пагинация и сортировка делегируются хранилищу.
	StrategyServer Strategy = "server"
	// StrategyClient весь набор загружается и обрабатывается в памяти.
	StrategyClient Strategy = "client"
)

// ProfileStore хранилище профилей кандидатов.
type ProfileStore interface {
	QueryProfiles(ctx context.Context, q models.ProfileQuery) ([]models.Candidate, int, error)
}

// Page результат выборки одной страницы.
type Page struct {
	Items      []CandidateView `json:"items"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Strategy   Strategy        `json:"strategy"`
}

// Config параметры движка.
type Config struct {
	PageSize int
	Locale   language.Tag
	Logger   logrus.FieldLogger
}

// Engine выбирает стратегию и собирает страницу кандидатов. Состояния между вызовами не хранит.
type Engine struct {
	store    ProfileStore
	pageSize int
	locale   language.Tag
	log      logrus.FieldLogger
}

// NewEngine создаёт движок поверх хранилища профилей.
func NewEngine(store ProfileStore, cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.English
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Get()
	}
	return &Engine{
		store:    store,
		pageSize: cfg.PageSize,
		locale:   cfg.Locale,
		log:      cfg.Logger,
	}
}

// PageSize размер страницы движка.
func (e *Engine) PageSize() int {
	return e.pageSize
}

// ChooseStrategy серверная пагинация допустима только без фильтров, без режима
// "только выбранные" и при сортировке, которую умеет хранилище.
func ChooseStrategy(f models.FilterState) Strategy {
	if HasActiveFilters(f) || f.ShowSelected {
		return StrategyClient
	}
	switch f.SortBy {
	case "", models.SortByName, models.SortBySubmitted:
		return StrategyServer
	default:
		return StrategyClient
	}
}

// FetchPage возвращает страницу page для фильтров f. Ошибки хранилища логируются
// и превращаются в пустую страницу с нулевым количеством.
func (e *Engine) FetchPage(ctx context.Context, page int, f models.FilterState, sel *SelectionSet) Page {
	f.Normalize()
	strategy := ChooseStrategy(f)

	result := Page{
		Items:    []CandidateView{},
		Page:     page,
		PageSize: e.pageSize,
		Strategy: strategy,
	}

	var (
		items []models.Candidate
		total int
		err   error
	)
	switch strategy {
	case StrategyServer:
		items, total, err = e.fetchServer(ctx, page, f.SortBy)
	default:
		items, total, err = e.fetchClient(ctx, page, f, sel)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			e.log.WithFields(logrus.Fields{
				"error":    err.Error(),
				"page":     page,
				"strategy": strategy,
			}).Error("search: не удалось получить профили")
		}
		return result
	}

	result.Items = withSelectionAll(items, sel)
	result.TotalCount = total
	result.TotalPages = TotalPages(total, e.pageSize)
	return result
}

func (e *Engine) fetchServer(ctx context.Context, page int, sortBy string) ([]models.Candidate, int, error) {
	if !PageInRange(page, e.pageSize) {
		// только подсчёт: страница за пределами диапазона пуста
		_, total, err := e.store.QueryProfiles(ctx, models.ProfileQuery{Limit: 1, Order: serverOrder(sortBy)})
		return nil, total, err
	}
	return e.store.QueryProfiles(ctx, models.ProfileQuery{
		Order:  serverOrder(sortBy),
		Offset: (page - 1) * e.pageSize,
		Limit:  e.pageSize,
	})
}

func (e *Engine) fetchClient(ctx context.Context, page int, f models.FilterState, sel *SelectionSet) ([]models.Candidate, int, error) {
	all, _, err := e.store.QueryProfiles(ctx, models.ProfileQuery{
		Order: []models.OrderBy{{Field: "name"}},
	})
	if err != nil {
		return nil, 0, err
	}
	filtered := Filter(all, f, sel)
	Sort(filtered, f.SortBy, e.locale)
	return Paginate(filtered, page, e.pageSize), len(filtered), nil
}

// FilterOptions загружает все профили и собирает значения для фильтров.
func (e *Engine) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	all, _, err := e.store.QueryProfiles(ctx, models.ProfileQuery{})
	if err != nil {
		return models.FilterOptions{}, err
	}
	return DiscoverOptions(all), nil
}

func serverOrder(sortBy string) []models.OrderBy {
	if sortBy == models.SortBySubmitted {
		return []models.OrderBy{{Field: "submitted_at", Descending: true}}
	}
	return []models.OrderBy{{Field: "name"}}
}
