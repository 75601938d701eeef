package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/teambuilder-backend/internal/debounce"
	"github.com/ignatzorin/teambuilder-backend/internal/goroutine"
	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
	"github.com/ignatzorin/teambuilder-backend/internal/validation"
)

// PageFetcher источник страниц кандидатов.
type PageFetcher interface {
	Page(ctx context.Context, page int, f models.FilterState, sel *search.SelectionSet) search.Page
}

// Session состояние живого поиска одного соединения: фильтры, страница и выбор.
//
// Каждая выборка получает номер поколения; запуск новой отменяет предыдущую,
// и отправляется только результат последнего поколения.
type Session struct {
	mu       sync.Mutex
	ctx      context.Context
	fetcher  PageFetcher
	emit     func(Outbound)
	debounce *debounce.Debouncer
	log      logrus.FieldLogger
	filters  models.FilterState
	page     int
	sel      *search.SelectionSet
	last     *search.Page
	lastF    models.FilterState
	gen      uint64
	cancel   context.CancelFunc
	inflight sync.WaitGroup
	closed   bool
}

// NewSession создаёт сессию. emit не должен блокироваться.
func NewSession(ctx context.Context, fetcher PageFetcher, debounceDelay time.Duration, emit func(Outbound)) *Session {
	return &Session{
		ctx:      ctx,
		fetcher:  fetcher,
		emit:     emit,
		debounce: debounce.New(debounceDelay),
		log:      logger.Get(),
		filters:  models.DefaultFilterState(),
		page:     1,
		sel:      search.NewSelectionSet(),
	}
}

// Start отправляет текущий выбор и первую страницу.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.emitSelectionLocked()
	s.fetchLocked()
}

// Handle обрабатывает одно входящее сообщение.
func (s *Session) Handle(msg Inbound) {
	var err error
	switch msg.Type {
	case TypeFilters:
		err = s.handleFilters(msg.Data)
	case TypeSearch:
		err = s.handleSearch(msg.Data)
	case TypePage:
		err = s.handlePage(msg.Data)
	case TypeToggle:
		err = s.handleToggle(msg.Data)
	case TypeClearSelection:
		s.mutateSelection(func(sel *search.SelectionSet) { sel.Clear() })
	default:
		err = fmt.Errorf("неизвестный тип сообщения %q", msg.Type)
	}
	if err != nil {
		s.emit(Outbound{Type: TypeError, Data: ErrorPayload{Message: err.Error()}})
	}
}

// Close отменяет отложенный поиск и текущую выборку и ждёт её завершения.
func (s *Session) Close() {
	s.debounce.Stop()

	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.inflight.Wait()
}

// Filters текущее состояние фильтров.
func (s *Session) Filters() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Selection id выбранных кандидатов.
func (s *Session) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.IDs()
}

// handleFilters заменяет все фильтры, кроме поисковой строки, и возвращает на первую страницу.
// Отсутствующие в сообщении поля, включая границы зарплаты, получают значения по умолчанию.
func (s *Session) handleFilters(data json.RawMessage) error {
	f := models.DefaultFilterState()
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("некорректные фильтры: %w", err)
	}
	f.Normalize()
	if !validSortKey(f.SortBy) {
		return fmt.Errorf("неизвестная сортировка %q", f.SortBy)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f.SearchTerm = s.filters.SearchTerm
	s.filters = f
	s.page = 1
	s.fetchLocked()
	return nil
}

func (s *Session) handleSearch(data json.RawMessage) error {
	var d searchData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("некорректный поиск: %w", err)
	}
	term := validation.SanitizeSearchTerm(d.Term)

	s.debounce.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed || s.filters.SearchTerm == term {
			return
		}
		s.filters.SearchTerm = term
		s.page = 1
		s.fetchLocked()
	})
	return nil
}

func (s *Session) handlePage(data json.RawMessage) error {
	var d pageData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("некорректная страница: %w", err)
	}
	if d.Page < 1 {
		return fmt.Errorf("номер страницы должен быть не меньше 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = d.Page
	s.fetchLocked()
	return nil
}

func (s *Session) handleToggle(data json.RawMessage) error {
	var d toggleData
	if err := json.Unmarshal(data, &d); err != nil || d.ID == "" {
		return fmt.Errorf("не указан id кандидата")
	}
	s.mutateSelection(func(sel *search.SelectionSet) { sel.Toggle(d.ID) })
	return nil
}

// mutateSelection меняет выбор. В режиме "только выбранные" страница
// перезапрашивается, иначе у текущей страницы пересчитывается isSelected.
func (s *Session) mutateSelection(fn func(*search.SelectionSet)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.sel)
	s.emitSelectionLocked()

	if s.filters.ShowSelected {
		s.fetchLocked()
		return
	}
	if s.last != nil {
		items := make([]search.CandidateView, len(s.last.Items))
		for i, item := range s.last.Items {
			item.IsSelected = s.sel.Has(item.ID)
			items[i] = item
		}
		s.last.Items = items
		s.emitPageLocked(*s.last, s.lastF)
	}
}

// fetchLocked запускает выборку нового поколения. Вызывается под s.mu.
func (s *Session) fetchLocked() {
	if s.closed {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel

	page := s.page
	filters := s.filters
	sel := search.NewSelectionSet(s.sel.IDs()...)

	s.inflight.Add(1)
	goroutine.SafeGo("ws-session-fetch", func() {
		defer s.inflight.Done()
		defer cancel()

		result := s.fetcher.Page(ctx, page, filters, sel)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen || s.closed {
			s.log.WithField("generation", gen).Debug("ws: устаревший результат отброшен")
			return
		}
		s.last = &result
		s.lastF = filters
		s.emitPageLocked(result, filters)
	})
}

// emitPageLocked отправляет страницу вместе с фильтрами, по которым она получена.
func (s *Session) emitPageLocked(p search.Page, f models.FilterState) {
	s.emit(Outbound{Type: TypePage, Data: PagePayload{
		Page:             p,
		Filters:          f,
		HasActiveFilters: search.HasActiveFilters(f),
	}})
}

func (s *Session) emitSelectionLocked() {
	s.emit(Outbound{Type: TypeSelection, Data: SelectionPayload{
		IDs:   s.sel.IDs(),
		Count: s.sel.Len(),
		Max:   search.MaxSelection,
	}})
}

func validSortKey(key string) bool {
	_, ok := models.ValidSortKeys[key]
	return ok
}
