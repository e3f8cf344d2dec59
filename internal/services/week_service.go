package services

import (
	"time"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/internal/store"
)

// WeekService resolves which of the four cycle weeks is "current" for a real
// calendar date.
type WeekService struct {
	store *store.Store
	now   func() time.Time
}

func NewWeekService(s *store.Store) *WeekService {
	return &WeekService{store: s, now: time.Now}
}

// CurrentWeekIndex maps a date onto the 4-week cycle: ISO week 1 is cycle
// index 0, ISO week 5 cycles back to 0, and so on.
func CurrentWeekIndex(t time.Time) int {
	_, week := t.ISOWeek()
	return (week - 1) % store.WeekCount
}

// ActiveWeek returns the week the app should show by default. A manual
// override in settings wins over the calendar; an override (or computed id)
// that matches no week falls back to the first one.
func (s *WeekService) ActiveWeek() *models.WeekPlan {
	state := s.store.State()

	weekID := store.WeekID(CurrentWeekIndex(s.now()))
	if state.Settings.ActiveWeekOverride != nil {
		weekID = *state.Settings.ActiveWeekOverride
	}

	if week := state.Week(weekID); week != nil {
		return week
	}
	return state.Weeks[0]
}
