package ws

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
)

type fetchCall struct {
	page    int
	filters models.FilterState
	sel     []string
}

// scriptedFetcher отвечает страницей с одним кандидатом, id которого равен
// поисковой строке; release позволяет задержать ответ на конкретный запрос.
type scriptedFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	release map[string]chan struct{}
}

func (f *scriptedFetcher) Page(ctx context.Context, page int, fs models.FilterState, sel *search.SelectionSet) search.Page {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{page: page, filters: fs, sel: sel.IDs()})
	gate := f.release[fs.SearchTerm]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	id := fs.SearchTerm
	if id == "" {
		id = "default"
	}
	return search.Page{
		Items:      []search.CandidateView{{Candidate: models.Candidate{ID: id}, IsSelected: sel.Has(id)}},
		TotalCount: 1,
		TotalPages: 1,
		Page:       page,
		PageSize:   9,
	}
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *scriptedFetcher) lastCall() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type outbox struct {
	mu   sync.Mutex
	msgs []Outbound
}

func (o *outbox) emit(msg Outbound) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, msg)
}

func (o *outbox) ofType(typ string) []Outbound {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Outbound
	for _, m := range o.msgs {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

func (o *outbox) lastPage(t *testing.T) PagePayload {
	t.Helper()
	pages := o.ofType(TypePage)
	require.NotEmpty(t, pages)
	return pages[len(pages)-1].Data.(PagePayload)
}

func newTestSession(t *testing.T, fetcher *scriptedFetcher, delay time.Duration) (*Session, *outbox) {
	t.Helper()
	out := &outbox{}
	s := NewSession(context.Background(), fetcher, delay, out.emit)
	s.log = logger.Discard()
	t.Cleanup(s.Close)
	return s, out
}

func inbound(t *testing.T, typ string, data interface{}) Inbound {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return Inbound{Type: typ, Data: raw}
}

func TestSession_StartEmitsSelectionAndFirstPage(t *testing.T) {
	fetcher := &scriptedFetcher{}
	s, out := newTestSession(t, fetcher, 10*time.Millisecond)

	s.Start()

	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, out.ofType(TypeSelection), 1)
	assert.Equal(t, 1, fetcher.lastCall().page)
	assert.False(t, out.lastPage(t).HasActiveFilters)
}

func TestSession_FiltersResetPageAndKeepSearch(t *testing.T) {
	fetcher := &scriptedFetcher{}
	s, out := newTestSession(t, fetcher, time.Millisecond)

	s.Handle(inbound(t, TypeSearch, map[string]string{"term": "go"}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)

	s.Handle(inbound(t, TypePage, map[string]int{"page": 3}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, fetcher.lastCall().page)

	s.Handle(inbound(t, TypeFilters, map[string]interface{}{"sort_by": "salary", "skill_filter": []string{"Go"}}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 3 }, time.Second, 5*time.Millisecond)

	call := fetcher.lastCall()
	assert.Equal(t, 1, call.page)
	assert.Equal(t, "go", call.filters.SearchTerm)
	assert.Equal(t, models.SortBySalary, call.filters.SortBy)
	assert.True(t, out.lastPage(t).HasActiveFilters)
	assert.Equal(t, []string{"Go"}, s.Filters().SkillFilter)
}

func TestSession_FiltersSalaryRangeDefaults(t *testing.T) {
	fetcher := &scriptedFetcher{}
	s, out := newTestSession(t, fetcher, time.Millisecond)

	s.Handle(inbound(t, TypeFilters, map[string]interface{}{"salary_range": map[string]int{"min": 60000}}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.SalaryRange{Min: 60000, Max: models.DefaultSalaryMax}, fetcher.lastCall().filters.SalaryRange)

	s.Handle(inbound(t, TypeFilters, map[string]interface{}{"salary_range": map[string]int{"min": 0, "max": 0}}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.SalaryRange{}, fetcher.lastCall().filters.SalaryRange)
	assert.True(t, out.lastPage(t).HasActiveFilters)

	s.Handle(inbound(t, TypeFilters, map[string]interface{}{"sort_by": "name"}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, fetcher.lastCall().filters.SalaryRange.IsDefault())
	assert.False(t, out.lastPage(t).HasActiveFilters)
}

func TestSession_SearchIsDebounced(t *testing.T) {
	fetcher := &scriptedFetcher{}
	s, out := newTestSession(t, fetcher, 40*time.Millisecond)

	for _, term := range []string{"r", "re", "rea", "react"} {
		s.Handle(inbound(t, TypeSearch, map[string]string{"term": term}))
	}

	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, fetcher.callCount())
	assert.Equal(t, "react", fetcher.lastCall().filters.SearchTerm)
}

func TestSession_LatestFetchWins(t *testing.T) {
	slow := make(chan struct{})
	fetcher := &scriptedFetcher{release: map[string]chan struct{}{"slow": slow}}
	s, out := newTestSession(t, fetcher, 0)

	s.Handle(inbound(t, TypeSearch, map[string]string{"term": "slow"}))
	require.Eventually(t, func() bool { return fetcher.callCount() == 1 }, time.Second, 5*time.Millisecond)

	s.Handle(inbound(t, TypeSearch, map[string]string{"term": "fast"}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)

	close(slow)
	time.Sleep(30 * time.Millisecond)

	pages := out.ofType(TypePage)
	require.Len(t, pages, 1, "устаревший ответ не отправляется")
	assert.Equal(t, "fast", pages[0].Data.(PagePayload).Items[0].ID)
}

func TestSession_ToggleReprojectsCurrentPage(t *testing.T) {
	fetcher := &scriptedFetcher{}
	s, out := newTestSession(t, fetcher, time.Millisecond)

	s.Start()
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)
	first := out.lastPage(t)
	assert.False(t, first.Items[0].IsSelected)

	s.Handle(inbound(t, TypeToggle, map[string]string{"id": "default"}))

	pages := out.ofType(TypePage)
	require.Len(t, pages, 2)
	assert.True(t, pages[1].Data.(PagePayload).Items[0].IsSelected)
	assert.False(t, first.Items[0].IsSelected, "ранее отправленная страница не меняется")
	assert.Equal(t, 1, fetcher.callCount(), "без showSelected повторной выборки нет")

	sel := out.ofType(TypeSelection)
	assert.Equal(t, []string{"default"}, sel[len(sel)-1].Data.(SelectionPayload).IDs)
}

func TestSession_ToggleKeepsFiltersOfShownPage(t *testing.T) {
	slow := make(chan struct{})
	fetcher := &scriptedFetcher{release: map[string]chan struct{}{"slow": slow}}
	s, out := newTestSession(t, fetcher, 0)

	s.Start()
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)

	s.Handle(inbound(t, TypeSearch, map[string]string{"term": "slow"}))
	require.Eventually(t, func() bool { return fetcher.callCount() == 2 }, time.Second, 5*time.Millisecond)

	s.Handle(inbound(t, TypeToggle, map[string]string{"id": "default"}))

	reprojected := out.lastPage(t)
	assert.Equal(t, "default", reprojected.Items[0].ID)
	assert.Empty(t, reprojected.Filters.SearchTerm, "страница помечена фильтрами, по которым получена")
	assert.False(t, reprojected.HasActiveFilters)
	assert.Equal(t, "slow", s.Filters().SearchTerm)

	close(slow)
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "slow", out.lastPage(t).Filters.SearchTerm)
}

func TestSession_ToggleRefetchesInShowSelectedMode(t *testing.T) {
	fetcher := &scriptedFetcher{}
	s, out := newTestSession(t, fetcher, time.Millisecond)

	s.Handle(inbound(t, TypeFilters, map[string]interface{}{"show_selected": true}))
	require.Eventually(t, func() bool { return len(out.ofType(TypePage)) == 1 }, time.Second, 5*time.Millisecond)

	s.Handle(inbound(t, TypeToggle, map[string]string{"id": "7"}))
	require.Eventually(t, func() bool { return fetcher.callCount() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"7"}, fetcher.lastCall().sel)
}

func TestSession_SelectionCapacity(t *testing.T) {
	s, _ := newTestSession(t, &scriptedFetcher{}, time.Millisecond)

	for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
		s.Handle(inbound(t, TypeToggle, map[string]string{"id": id}))
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, s.Selection())

	s.Handle(Inbound{Type: TypeClearSelection})
	assert.Empty(t, s.Selection())
}

func TestSession_RejectsBadMessages(t *testing.T) {
	s, out := newTestSession(t, &scriptedFetcher{}, time.Millisecond)

	s.Handle(Inbound{Type: "explode"})
	s.Handle(inbound(t, TypeFilters, map[string]string{"sort_by": "height"}))
	s.Handle(inbound(t, TypeToggle, map[string]string{}))
	s.Handle(Inbound{Type: TypePage, Data: json.RawMessage(`"x"`)})
	s.Handle(inbound(t, TypePage, map[string]int{"page": 0}))

	assert.Len(t, out.ofType(TypeError), 5)
}

func TestSession_CloseCancelsPendingSearch(t *testing.T) {
	fetcher := &scriptedFetcher{}
	out := &outbox{}
	s := NewSession(context.Background(), fetcher, 30*time.Millisecond, out.emit)
	s.log = logger.Discard()

	s.Handle(inbound(t, TypeSearch, map[string]string{"term": "go"}))
	s.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, fetcher.callCount())
	assert.Empty(t, out.ofType(TypePage))
}
