package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"HackerNews/internal/domain"
)

type onceDriver struct {
	started bool
	stopped bool
}

func (d *onceDriver) Start(ctx context.Context, job func(time.Time)) error {
	d.started = true
	job(time.Now())
	return nil
}

func (d *onceDriver) Stop(ctx context.Context) error {
	d.stopped = true
	return nil
}

func TestSchedulerRunsRefresh(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		ids:     []domain.StoryID{1},
		stories: storiesByScore(map[domain.StoryID]int{1: 1}),
	}
	r := NewRefresher(RefresherDeps{Source: src, StoryCount: 1})
	driver := &onceDriver{}
	s := NewScheduler(driver, r, nil)

	require.NoError(t, s.Start(context.Background()))
	require.True(t, driver.started)
	require.Equal(t, 1, r.Feed().Len())

	report, ok := r.LastReport()
	require.True(t, ok)
	require.Equal(t, StatusCompleted, report.Status)

	require.NoError(t, s.Stop(context.Background()))
	require.True(t, driver.stopped)
}

func TestSchedulerWithoutDriver(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}
