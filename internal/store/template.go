package store

import (
	"fmt"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/pkg/idgen"
)

// WeekCount is the fixed size of the planning cycle. Weeks are addressed by
// the ids week-0..week-3 and are never added or removed.
const WeekCount = 4

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DefaultDefinitions returns the four built-in meal definitions. Also used by
// the v0→v1 migration.
func DefaultDefinitions() []*models.MealDefinition {
	return []*models.MealDefinition{
		{ID: "def-1", Name: "Breakfast", DefaultTime: "08:00", Notify: true},
		{ID: "def-2", Name: "Lunch", DefaultTime: "13:00", Notify: true},
		{ID: "def-3", Name: "Dinner", DefaultTime: "19:00", Notify: true},
		{ID: "def-4", Name: "Snack", DefaultTime: "16:00", Notify: false},
	}
}

func newEmptyDay(dayIndex int, dayOfWeek string) *models.DayPlan {
	return &models.DayPlan{
		ID:        idgen.New(),
		DayOfWeek: dayOfWeek,
		DayIndex:  dayIndex,
		Meals: []*models.MealSlot{
			{ID: idgen.New(), DefinitionID: "def-1", Time: "08:00"},
			{ID: idgen.New(), DefinitionID: "def-2", Time: "13:00"},
			{ID: idgen.New(), DefinitionID: "def-3", Time: "19:00"},
			{ID: idgen.New(), DefinitionID: "def-4", Time: "16:00"},
		},
	}
}

func newEmptyWeek(index int) *models.WeekPlan {
	days := make([]*models.DayPlan, 0, len(dayNames))
	for i, name := range dayNames {
		days = append(days, newEmptyDay(i, name))
	}
	return &models.WeekPlan{
		ID:          WeekID(index),
		Label:       fmt.Sprintf("Week %d", index+1),
		Days:        days,
		GroceryList: []*models.GroceryItem{},
	}
}

// WeekID returns the fixed id for the week at the given cycle index.
func WeekID(index int) string {
	return fmt.Sprintf("week-%d", index)
}

// DefaultWeeks builds the canonical empty 4-week template used at first run
// and as the reset/import baseline.
func DefaultWeeks() []*models.WeekPlan {
	weeks := make([]*models.WeekPlan, 0, WeekCount)
	for i := 0; i < WeekCount; i++ {
		weeks = append(weeks, newEmptyWeek(i))
	}
	return weeks
}

// DefaultSettings builds the first-run settings. The grocery reminder
// defaults to Saturday 09:00, disabled.
func DefaultSettings() *models.AppSettings {
	return &models.AppSettings{
		GroceryReminderEnabled: false,
		GroceryReminderDay:     5,
		GroceryReminderTime:    "09:00",
		ActiveWeekOverride:     nil,
		MealDefinitions:        DefaultDefinitions(),
	}
}

func defaultState() *models.AppState {
	return &models.AppState{
		Weeks:    DefaultWeeks(),
		Settings: DefaultSettings(),
	}
}
