package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullRepo struct{}

func (nullRepo) Load(ctx context.Context) (*models.PersistedState, error) { return nil, nil }
func (nullRepo) Save(ctx context.Context, state *models.PersistedState) error {
	return nil
}

func newTestWeekService(t *testing.T) (*WeekService, *store.Store) {
	t.Helper()
	st := store.New(nullRepo{})
	t.Cleanup(st.Close)
	return NewWeekService(st), st
}

func TestCurrentWeekIndex(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		// 2026-01-26 is the Monday of ISO week 5: (5-1) mod 4 = 0.
		{time.Date(2026, 1, 26, 12, 0, 0, 0, time.UTC), 0},
		// 2026-01-05 is in ISO week 2.
		{time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC), 1},
		// 2026-01-18 is the Sunday of ISO week 3.
		{time.Date(2026, 1, 18, 12, 0, 0, 0, time.UTC), 2},
		// 2026-01-22 is in ISO week 4.
		{time.Date(2026, 1, 22, 12, 0, 0, 0, time.UTC), 3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CurrentWeekIndex(c.date), "date %s", c.date)
	}
}

func TestActiveWeekFollowsCalendar(t *testing.T) {
	svc, _ := newTestWeekService(t)
	svc.now = func() time.Time { return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) } // ISO week 2

	assert.Equal(t, "week-1", svc.ActiveWeek().ID)
}

func TestActiveWeekOverrideWins(t *testing.T) {
	svc, st := newTestWeekService(t)
	svc.now = func() time.Time { return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) }

	weekID := "week-3"
	st.SetActiveWeekOverride(&weekID)
	assert.Equal(t, "week-3", svc.ActiveWeek().ID)

	st.SetActiveWeekOverride(nil)
	assert.Equal(t, "week-1", svc.ActiveWeek().ID)
}

func TestActiveWeekUnknownOverrideFallsBack(t *testing.T) {
	svc, st := newTestWeekService(t)

	weekID := "week-42"
	st.SetActiveWeekOverride(&weekID)

	week := svc.ActiveWeek()
	require.NotNil(t, week)
	assert.Equal(t, "week-0", week.ID)
}
