package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu     sync.Mutex
	stored *models.PersistedState
	saves  int
}

func (r *fakeRepo) Load(ctx context.Context) (*models.PersistedState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored, nil
}

func (r *fakeRepo) Save(ctx context.Context, state *models.PersistedState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = state
	r.saves++
	return nil
}

func (r *fakeRepo) snapshot() *models.PersistedState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored
}

func newTestStore(t *testing.T) (*Store, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{}
	s := New(repo)
	t.Cleanup(s.Close)
	return s, repo
}

func TestNewStoreDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	state := s.State()

	require.Len(t, state.Weeks, 4)
	for i, week := range state.Weeks {
		assert.Equal(t, WeekID(i), week.ID)
		require.Len(t, week.Days, 7)
		assert.Equal(t, "Monday", week.Days[0].DayOfWeek)
		assert.Equal(t, "Sunday", week.Days[6].DayOfWeek)
		assert.Empty(t, week.GroceryList)
		for di, day := range week.Days {
			assert.Equal(t, di, day.DayIndex)
			require.Len(t, day.Meals, 4)
		}
	}

	times := []string{"08:00", "13:00", "19:00", "16:00"}
	for i, meal := range state.Weeks[0].Days[0].Meals {
		assert.Equal(t, times[i], meal.Time)
		assert.Empty(t, meal.Name)
		assert.False(t, meal.IsDone)
	}

	require.Len(t, state.Settings.MealDefinitions, 4)
	assert.Equal(t, "Breakfast", state.Settings.MealDefinitions[0].Name)
	assert.False(t, state.Settings.GroceryReminderEnabled)
	assert.Equal(t, 5, state.Settings.GroceryReminderDay)
	assert.Equal(t, "09:00", state.Settings.GroceryReminderTime)
	assert.Nil(t, state.Settings.ActiveWeekOverride)
}

func TestUpdateMeal(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.State()
	day := before.Weeks[0].Days[0]
	meal := day.Meals[0]

	name := "Pancakes"
	s.UpdateMeal("week-0", day.ID, meal.ID, &models.MealSlotUpdate{Name: &name})

	after := s.State()
	updated := after.Weeks[0].Days[0].Meals[0]
	assert.Equal(t, "Pancakes", updated.Name)
	assert.Equal(t, meal.DefinitionID, updated.DefinitionID)
	assert.Equal(t, meal.Time, updated.Time)

	// Everything off the mutated path is reference-stable.
	assert.NotSame(t, before, after)
	assert.Same(t, before.Weeks[0].Days[0].Meals[1], after.Weeks[0].Days[0].Meals[1])
	assert.Same(t, before.Weeks[0].Days[1], after.Weeks[0].Days[1])
	assert.Same(t, before.Weeks[1], after.Weeks[1])
	assert.Same(t, before.Settings, after.Settings)
}

func TestUpdateMealUnknownIDsIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	before := s.State()
	day := before.Weeks[0].Days[0]
	name := "Toast"

	s.UpdateMeal("week-9", day.ID, day.Meals[0].ID, &models.MealSlotUpdate{Name: &name})
	assert.Same(t, before, s.State())

	s.UpdateMeal("week-0", "nope", day.Meals[0].ID, &models.MealSlotUpdate{Name: &name})
	assert.Same(t, before, s.State())

	s.UpdateMeal("week-0", day.ID, "nope", &models.MealSlotUpdate{Name: &name})
	assert.Same(t, before, s.State())
}

func TestUpsertMealUpdatesInsteadOfDuplicating(t *testing.T) {
	s, _ := newTestStore(t)
	day := s.State().Weeks[0].Days[2]

	name := "Soup"
	s.UpsertMeal("week-0", day.ID, "def-2", &models.MealSlotUpdate{Name: &name})

	after := s.State().Weeks[0].Days[2]
	require.Len(t, after.Meals, 4)
	var matches []*models.MealSlot
	for _, m := range after.Meals {
		if m.DefinitionID == "def-2" {
			matches = append(matches, m)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, "Soup", matches[0].Name)

	name2 := "Stew"
	s.UpsertMeal("week-0", day.ID, "def-2", &models.MealSlotUpdate{Name: &name2})
	after = s.State().Weeks[0].Days[2]
	require.Len(t, after.Meals, 4)
	matches = matches[:0]
	for _, m := range after.Meals {
		if m.DefinitionID == "def-2" {
			matches = append(matches, m)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, "Stew", matches[0].Name)
}

func TestUpsertMealCreatesSlotForNewDefinition(t *testing.T) {
	s, _ := newTestStore(t)
	day := s.State().Weeks[1].Days[0]

	name := "Protein shake"
	s.UpsertMeal("week-1", day.ID, "def-custom", &models.MealSlotUpdate{Name: &name})

	after := s.State().Weeks[1].Days[0]
	require.Len(t, after.Meals, 5)
	created := after.Meals[4]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "def-custom", created.DefinitionID)
	assert.Equal(t, "Protein shake", created.Name)
	assert.False(t, created.IsDone)

	// Unknown day id leaves the state untouched.
	before := s.State()
	s.UpsertMeal("week-1", "nope", "def-custom", &models.MealSlotUpdate{Name: &name})
	assert.Same(t, before, s.State())
}

func TestAddGroceryItem(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddGroceryItem("week-1", models.GroceryItem{Name: "Apples", Quantity: "5"})

	list := s.State().Weeks[1].GroceryList
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, "Apples", list[0].Name)
	assert.Equal(t, "5", list[0].Quantity)
	assert.False(t, list[0].IsChecked)

	before := s.State()
	s.AddGroceryItem("week-7", models.GroceryItem{Name: "Pears"})
	assert.Same(t, before, s.State())
}

func TestToggleGroceryItemIsInvolutive(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddGroceryItem("week-0", models.GroceryItem{Name: "Milk", Quantity: "1L"})
	itemID := s.State().Weeks[0].GroceryList[0].ID

	s.ToggleGroceryItem("week-0", itemID)
	assert.True(t, s.State().Weeks[0].GroceryList[0].IsChecked)

	s.ToggleGroceryItem("week-0", itemID)
	assert.False(t, s.State().Weeks[0].GroceryList[0].IsChecked)

	before := s.State()
	s.ToggleGroceryItem("week-0", "nope")
	assert.Same(t, before, s.State())
}

func TestRemoveGroceryItem(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddGroceryItem("week-2", models.GroceryItem{Name: "Rice", Quantity: "1kg"})
	s.AddGroceryItem("week-2", models.GroceryItem{Name: "Beans", Quantity: "500g"})
	itemID := s.State().Weeks[2].GroceryList[0].ID

	s.RemoveGroceryItem("week-2", itemID)

	list := s.State().Weeks[2].GroceryList
	require.Len(t, list, 1)
	assert.Equal(t, "Beans", list[0].Name)

	before := s.State()
	s.RemoveGroceryItem("week-2", "nope")
	assert.Same(t, before, s.State())
}

func TestClearGroceryChecks(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddGroceryItem("week-0", models.GroceryItem{Name: "Eggs", Quantity: "12"})
	s.AddGroceryItem("week-0", models.GroceryItem{Name: "Flour", Quantity: "1kg"})
	for _, item := range s.State().Weeks[0].GroceryList {
		s.ToggleGroceryItem("week-0", item.ID)
	}

	s.ClearGroceryChecks("week-0")

	for _, item := range s.State().Weeks[0].GroceryList {
		assert.False(t, item.IsChecked)
	}
}

func TestSetActiveWeekOverride(t *testing.T) {
	s, _ := newTestStore(t)

	weekID := "week-2"
	s.SetActiveWeekOverride(&weekID)
	require.NotNil(t, s.State().Settings.ActiveWeekOverride)
	assert.Equal(t, "week-2", *s.State().Settings.ActiveWeekOverride)

	s.SetActiveWeekOverride(nil)
	assert.Nil(t, s.State().Settings.ActiveWeekOverride)
}

func TestMealDefinitionCRUD(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddMealDefinition(&models.MealDefinition{ID: "def-5", Name: "Brunch", DefaultTime: "11:00", Notify: true})
	require.Len(t, s.State().Settings.MealDefinitions, 5)

	name := "Late brunch"
	notify := false
	s.UpdateMealDefinition("def-5", &models.MealDefinitionUpdate{Name: &name, Notify: &notify})
	def := s.State().Settings.MealDefinitions[4]
	assert.Equal(t, "Late brunch", def.Name)
	assert.Equal(t, "11:00", def.DefaultTime)
	assert.False(t, def.Notify)

	before := s.State()
	s.UpdateMealDefinition("nope", &models.MealDefinitionUpdate{Name: &name})
	assert.Same(t, before, s.State())

	s.RemoveMealDefinition("def-5")
	require.Len(t, s.State().Settings.MealDefinitions, 4)
}

func TestRemoveMealDefinitionLeavesOrphanedSlots(t *testing.T) {
	s, _ := newTestStore(t)

	s.RemoveMealDefinition("def-1")

	state := s.State()
	require.Len(t, state.Settings.MealDefinitions, 3)
	// Existing slots keep their dangling reference and their time.
	breakfast := state.Weeks[0].Days[0].Meals[0]
	assert.Equal(t, "def-1", breakfast.DefinitionID)
	assert.Equal(t, "08:00", breakfast.Time)
}

func TestResetData(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddMealDefinition(&models.MealDefinition{ID: "def-9", Name: "Dessert", Notify: false})
	weekID := "week-3"
	s.SetActiveWeekOverride(&weekID)
	day := s.State().Weeks[0].Days[0]
	name := "Pancakes"
	s.UpdateMeal("week-0", day.ID, day.Meals[0].ID, &models.MealSlotUpdate{Name: &name})
	s.AddGroceryItem("week-0", models.GroceryItem{Name: "Syrup", Quantity: "1"})

	s.ResetData()

	state := s.State()
	require.Len(t, state.Weeks, 4)
	assert.Empty(t, state.Weeks[0].Days[0].Meals[0].Name)
	assert.Empty(t, state.Weeks[0].GroceryList)
	assert.Nil(t, state.Settings.ActiveWeekOverride)
	// Customized definitions survive a reset.
	require.Len(t, state.Settings.MealDefinitions, 5)
	assert.Equal(t, "Dessert", state.Settings.MealDefinitions[4].Name)
}

func TestEveryMutationIsPersisted(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo)

	s.AddGroceryItem("week-1", models.GroceryItem{Name: "Apples", Quantity: "5"})
	s.Close()

	stored := repo.snapshot()
	require.NotNil(t, stored)
	assert.Equal(t, SchemaVersion, stored.Version)
	require.Len(t, stored.Weeks, 4)
	require.Len(t, stored.Weeks[1].GroceryList, 1)
	assert.Equal(t, "Apples", stored.Weeks[1].GroceryList[0].Name)
}

func TestLoadInstallsPersistedState(t *testing.T) {
	seed := New(&fakeRepo{})
	day := seed.State().Weeks[0].Days[0]
	name := "Omelette"
	seed.UpdateMeal("week-0", day.ID, day.Meals[0].ID, &models.MealSlotUpdate{Name: &name})
	persisted := &models.PersistedState{
		Version:  SchemaVersion,
		Weeks:    seed.State().Weeks,
		Settings: seed.State().Settings,
	}
	seed.Close()

	repo := &fakeRepo{stored: persisted}
	s := New(repo)
	t.Cleanup(s.Close)

	// Defined default state before load completes.
	require.Len(t, s.State().Weeks, 4)
	assert.Empty(t, s.State().Weeks[0].Days[0].Meals[0].Name)

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, "Omelette", s.State().Weeks[0].Days[0].Meals[0].Name)
}

func TestLoadWithoutStoredStateKeepsDefaults(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo)

	require.NoError(t, s.Load(context.Background()))
	s.Close()

	stored := repo.snapshot()
	require.NotNil(t, stored)
	assert.Equal(t, SchemaVersion, stored.Version)
	require.Len(t, stored.Weeks, 4)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s, _ := newTestStore(t)
	ch, cancel := s.Subscribe()
	defer cancel()

	s.AddGroceryItem("week-0", models.GroceryItem{Name: "Butter", Quantity: "1"})

	select {
	case state := <-ch:
		require.Len(t, state.Weeks[0].GroceryList, 1)
	case <-time.After(time.Second):
		t.Fatal("expected a state snapshot after a mutation")
	}
}
