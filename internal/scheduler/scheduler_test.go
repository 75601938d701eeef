package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/teambuilder-backend/internal/logger"
	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshFilterOptions(context.Context) (models.FilterOptions, error) {
	r.calls.Add(1)
	return models.FilterOptions{Skills: []string{"Go"}}, r.err
}

func TestScheduler_WarmsUpOnStart(t *testing.T) {
	r := &countingRefresher{}
	s := New(r, "@every 1h")
	s.log = logger.Discard()

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, time.Second, 10*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New(&countingRefresher{}, "every tuesday")
	s.log = logger.Discard()

	assert.Error(t, s.Start(context.Background()))
}

func TestScheduler_RefreshErrorIsLogged(t *testing.T) {
	r := &countingRefresher{err: errors.New("down")}
	s := New(r, "@every 1h")
	s.log = logger.Discard()

	assert.NotPanics(t, func() { s.runRefresh(context.Background()) })
	assert.EqualValues(t, 1, r.calls.Load())
}
