package store

import (
	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/pkg/idgen"
	"github.com/sirupsen/logrus"
)

// DefaultGroceryCategory is assigned to imported grocery items that carry no
// category of their own.
const DefaultGroceryCategory = "Uncategorized"

// ImportPayload is the external import document. Both top-level keys are
// optional; pointers distinguish "absent" from "present but empty", because
// an empty weeks array still resets the plan to the template.
type ImportPayload struct {
	Weeks    *[]ImportedWeek   `json:"weeks"`
	Settings *ImportedSettings `json:"settings"`
}

type ImportedSettings struct {
	MealDefinitions *[]models.MealDefinition `json:"mealDefinitions"`
}

type ImportedWeek struct {
	Label       string                `json:"label"`
	Days        []ImportedDay         `json:"days"`
	GroceryList []ImportedGroceryItem `json:"groceryList"`
}

type ImportedDay struct {
	DayIndex int            `json:"dayIndex"`
	Meals    []ImportedMeal `json:"meals"`
}

type ImportedMeal struct {
	ID           string `json:"id"`
	DefinitionID string `json:"definitionId"`
	Name         string `json:"name"`
	Notes        string `json:"notes"`
	IsDone       bool   `json:"isDone"`
	Time         string `json:"time"`
}

type ImportedGroceryItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Category  string `json:"category"`
	IsChecked bool   `json:"isChecked"`
}

// HasData reports whether the payload carries anything the store would act
// on. The HTTP boundary rejects payloads without data; the store itself
// treats them as a no-op.
func (p *ImportPayload) HasData() bool {
	return p.Weeks != nil || (p.Settings != nil && p.Settings.MealDefinitions != nil)
}

// ImportData reconciles the payload into the canonical 4-week structure and
// applies it as a single atomic state update. Definitions are replaced
// wholesale when present; weeks are rebuilt from the fresh template with the
// payload overlaid per day. A payload without data leaves the state
// unchanged.
func (s *Store) ImportData(p *ImportPayload) {
	if !p.HasData() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	weeks := s.state.Weeks
	settings := s.state.Settings

	if p.Settings != nil && p.Settings.MealDefinitions != nil {
		newSettings := *settings
		defs := make([]*models.MealDefinition, 0, len(*p.Settings.MealDefinitions))
		for i := range *p.Settings.MealDefinitions {
			def := (*p.Settings.MealDefinitions)[i]
			defs = append(defs, &def)
		}
		newSettings.MealDefinitions = defs
		settings = &newSettings
	}

	if p.Weeks != nil {
		weeks = reconcileWeeks(*p.Weeks)
	}

	s.commit(&models.AppState{Weeks: weeks, Settings: settings})
	logrus.WithFields(logrus.Fields{
		"weeks":       p.Weeks != nil,
		"definitions": p.Settings != nil && p.Settings.MealDefinitions != nil,
	}).Info("Imported external data")
}

// reconcileWeeks overlays the imported weeks onto a fresh template. The
// cycle always stays at four weeks: payload weeks past index 3 are dropped,
// missing ones keep the canonical empty week.
func reconcileWeeks(imported []ImportedWeek) []*models.WeekPlan {
	weeks := DefaultWeeks()
	for i := range imported {
		if i >= WeekCount {
			break
		}
		weeks[i] = overlayWeek(weeks[i], &imported[i])
	}
	return weeks
}

func overlayWeek(tmpl *models.WeekPlan, imp *ImportedWeek) *models.WeekPlan {
	week := *tmpl

	if imp.Label != "" {
		week.Label = imp.Label
	}

	// Match payload days to the canonical Monday-start days by dayIndex.
	// Days the payload does not mention keep the empty template day.
	days := make([]*models.DayPlan, len(tmpl.Days))
	for i, tmplDay := range tmpl.Days {
		days[i] = tmplDay
		for j := range imp.Days {
			if imp.Days[j].DayIndex != tmplDay.DayIndex {
				continue
			}
			day := *tmplDay
			day.Meals = normalizeMeals(imp.Days[j].Meals)
			days[i] = &day
			break
		}
	}
	week.Days = days

	list := make([]*models.GroceryItem, 0, len(imp.GroceryList))
	for i := range imp.GroceryList {
		list = append(list, normalizeGroceryItem(&imp.GroceryList[i]))
	}
	week.GroceryList = list

	return &week
}

// normalizeMeals replaces a day's meals wholesale with the imported ones,
// generating ids where missing. Fields pass through as given; a dangling
// definitionId or empty name is accepted as-is.
func normalizeMeals(imported []ImportedMeal) []*models.MealSlot {
	meals := make([]*models.MealSlot, 0, len(imported))
	for _, m := range imported {
		id := m.ID
		if id == "" {
			id = idgen.New()
		}
		meals = append(meals, &models.MealSlot{
			ID:           id,
			DefinitionID: m.DefinitionID,
			Name:         m.Name,
			Notes:        m.Notes,
			IsDone:       m.IsDone,
			Time:         m.Time,
		})
	}
	return meals
}

func normalizeGroceryItem(g *ImportedGroceryItem) *models.GroceryItem {
	id := g.ID
	if id == "" {
		id = idgen.New()
	}
	category := g.Category
	if category == "" {
		category = DefaultGroceryCategory
	}
	return &models.GroceryItem{
		ID:        id,
		Name:      g.Name,
		Quantity:  g.Quantity,
		Category:  category,
		IsChecked: g.IsChecked,
	}
}
