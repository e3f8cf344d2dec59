// Package store holds the single source of truth for the app state: the
// 4-week meal plan cycle and the user settings. Every mutation goes through
// it, produces a new top-level state value that shares every untouched
// subtree with the previous one, and is persisted asynchronously through an
// injected repository.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/pkg/idgen"
	"github.com/sirupsen/logrus"
)

// Repository is the persistence port for the state blob. Load returns
// (nil, nil) when nothing has been stored yet.
type Repository interface {
	Load(ctx context.Context) (*models.PersistedState, error)
	Save(ctx context.Context, state *models.PersistedState) error
}

const saveTimeout = 10 * time.Second

// Store is the state container. It is safe for concurrent use; operations
// are totally ordered by the mutex, and persistence writes are serialized
// through a single latest-wins writer so an older snapshot can never land on
// durable storage after a newer one.
type Store struct {
	mu    sync.RWMutex
	state *models.AppState
	repo  Repository

	pendingMu sync.Mutex
	pending   *models.PersistedState
	kick      chan struct{}
	done      chan struct{}
	stopped   chan struct{}

	subMu sync.Mutex
	subs  map[chan *models.AppState]struct{}
}

// New creates a store holding the freshly generated default state. Consumers
// see that defined default until Load replaces it with persisted data.
func New(repo Repository) *Store {
	s := &Store{
		state:   defaultState(),
		repo:    repo,
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		subs:    make(map[chan *models.AppState]struct{}),
	}
	go s.saveLoop()
	return s
}

// Load reads the persisted blob, migrates it to the current schema version
// and installs it as the in-memory state. When nothing is stored yet the
// default state is kept and written out.
func (s *Store) Load(ctx context.Context) error {
	ps, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load app state: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ps == nil {
		logrus.Info("No persisted state found, starting from defaults")
		s.enqueueSave(s.state)
		return nil
	}

	migrated := Migrate(ps)
	s.state = &models.AppState{Weeks: migrated.Weeks, Settings: migrated.Settings}
	// Re-persist so the blob is upgraded even if no mutation follows.
	if migrated.Version != ps.Version {
		s.enqueueSave(s.state)
	}
	s.notify(s.state)
	return nil
}

// State returns the current state snapshot. Snapshots are never mutated in
// place; callers may hold on to them across operations.
func (s *Store) State() *models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Week returns the current snapshot of the named week, or nil.
func (s *Store) Week(weekID string) *models.WeekPlan {
	return s.State().Week(weekID)
}

// Subscribe registers an observer for state snapshots. The channel carries
// the latest state only; intermediate snapshots may be coalesced. The
// returned func cancels the subscription.
func (s *Store) Subscribe() (<-chan *models.AppState, func()) {
	ch := make(chan *models.AppState, 1)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, ch)
		s.subMu.Unlock()
	}
	return ch, cancel
}

// Close flushes any pending persistence write and stops the writer.
func (s *Store) Close() {
	close(s.done)
	<-s.stopped
}

// UpdateMeal merges the partial update into the meal found via the
// week→day→meal id chain. A broken link anywhere in the chain is a no-op.
func (s *Store) UpdateMeal(weekID, dayID, mealID string, upd *models.MealSlotUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceWeek(weekID, func(week *models.WeekPlan) *models.WeekPlan {
		for di, day := range week.Days {
			if day.ID != dayID {
				continue
			}
			for mi, meal := range day.Meals {
				if meal.ID != mealID {
					continue
				}
				newDay := *day
				newDay.Meals = replaceMeal(day.Meals, mi, upd.Apply(meal))
				return withDay(week, di, &newDay)
			}
			return nil
		}
		return nil
	})
}

// UpsertMeal updates the day's meal for the given definition, or appends a
// fresh slot for it when the day has none yet. Unknown week/day ids are a
// no-op.
func (s *Store) UpsertMeal(weekID, dayID, definitionID string, upd *models.MealSlotUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceWeek(weekID, func(week *models.WeekPlan) *models.WeekPlan {
		for di, day := range week.Days {
			if day.ID != dayID {
				continue
			}
			newDay := *day
			for mi, meal := range day.Meals {
				if meal.DefinitionID == definitionID {
					newDay.Meals = replaceMeal(day.Meals, mi, upd.Apply(meal))
					return withDay(week, di, &newDay)
				}
			}
			slot := upd.Apply(&models.MealSlot{ID: idgen.New(), DefinitionID: definitionID})
			meals := make([]*models.MealSlot, len(day.Meals), len(day.Meals)+1)
			copy(meals, day.Meals)
			newDay.Meals = append(meals, slot)
			return withDay(week, di, &newDay)
		}
		return nil
	})
}

// AddGroceryItem appends a new unchecked item to the named week's list. The
// item's ID and IsChecked fields are overwritten.
func (s *Store) AddGroceryItem(weekID string, item models.GroceryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceWeek(weekID, func(week *models.WeekPlan) *models.WeekPlan {
		item.ID = idgen.New()
		item.IsChecked = false
		list := make([]*models.GroceryItem, len(week.GroceryList), len(week.GroceryList)+1)
		copy(list, week.GroceryList)
		return withGroceryList(week, append(list, &item))
	})
}

// ToggleGroceryItem flips the checked flag on the matching item.
func (s *Store) ToggleGroceryItem(weekID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceWeek(weekID, func(week *models.WeekPlan) *models.WeekPlan {
		for i, item := range week.GroceryList {
			if item.ID != itemID {
				continue
			}
			toggled := *item
			toggled.IsChecked = !item.IsChecked
			list := make([]*models.GroceryItem, len(week.GroceryList))
			copy(list, week.GroceryList)
			list[i] = &toggled
			return withGroceryList(week, list)
		}
		return nil
	})
}

// RemoveGroceryItem removes the matching item from the week's list.
func (s *Store) RemoveGroceryItem(weekID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceWeek(weekID, func(week *models.WeekPlan) *models.WeekPlan {
		found := false
		list := make([]*models.GroceryItem, 0, len(week.GroceryList))
		for _, item := range week.GroceryList {
			if item.ID == itemID {
				found = true
				continue
			}
			list = append(list, item)
		}
		if !found {
			return nil
		}
		return withGroceryList(week, list)
	})
}

// ClearGroceryChecks unchecks every item in the week's list.
func (s *Store) ClearGroceryChecks(weekID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceWeek(weekID, func(week *models.WeekPlan) *models.WeekPlan {
		list := make([]*models.GroceryItem, len(week.GroceryList))
		for i, item := range week.GroceryList {
			if item.IsChecked {
				cleared := *item
				cleared.IsChecked = false
				list[i] = &cleared
			} else {
				list[i] = item
			}
		}
		return withGroceryList(week, list)
	})
}

// SetActiveWeekOverride sets or clears the manual active-week override. The
// id is not validated against the known weeks.
func (s *Store) SetActiveWeekOverride(weekID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceSettings(func(settings *models.AppSettings) {
		settings.ActiveWeekOverride = weekID
	})
}

// SetGroceryReminderEnabled records whether the weekly grocery reminder is
// on. Rescheduling is the caller's responsibility.
func (s *Store) SetGroceryReminderEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceSettings(func(settings *models.AppSettings) {
		settings.GroceryReminderEnabled = enabled
	})
}

// AddMealDefinition appends a definition. The caller supplies the id.
func (s *Store) AddMealDefinition(def *models.MealDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceSettings(func(settings *models.AppSettings) {
		defs := make([]*models.MealDefinition, len(settings.MealDefinitions), len(settings.MealDefinitions)+1)
		copy(defs, settings.MealDefinitions)
		settings.MealDefinitions = append(defs, def)
	})
}

// UpdateMealDefinition merges the partial update into the matching
// definition; unknown ids are a no-op.
func (s *Store) UpdateMealDefinition(defID string, upd *models.MealDefinitionUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, def := range s.state.Settings.MealDefinitions {
		if def.ID != defID {
			continue
		}
		s.replaceSettings(func(settings *models.AppSettings) {
			defs := make([]*models.MealDefinition, len(settings.MealDefinitions))
			copy(defs, settings.MealDefinitions)
			defs[i] = upd.Apply(def)
			settings.MealDefinitions = defs
		})
		return
	}
}

// RemoveMealDefinition removes the matching definition. Meal slots that
// reference it keep their definitionId; there is no cascade delete.
func (s *Store) RemoveMealDefinition(defID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	defs := make([]*models.MealDefinition, 0, len(s.state.Settings.MealDefinitions))
	for _, def := range s.state.Settings.MealDefinitions {
		if def.ID == defID {
			found = true
			continue
		}
		defs = append(defs, def)
	}
	if !found {
		return
	}
	s.replaceSettings(func(settings *models.AppSettings) {
		settings.MealDefinitions = defs
	})
}

// ResetData replaces the weeks with a fresh template and clears the
// active-week override. Meal definitions and the other settings survive.
func (s *Store) ResetData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := *s.state.Settings
	settings.ActiveWeekOverride = nil
	s.commit(&models.AppState{Weeks: DefaultWeeks(), Settings: &settings})
}

// replaceWeek swaps the named week for fn's result and commits the new
// state. Returning nil from fn (or an unknown week id) leaves the state
// untouched. Must be called with the write lock held.
func (s *Store) replaceWeek(weekID string, fn func(*models.WeekPlan) *models.WeekPlan) {
	for i, week := range s.state.Weeks {
		if week.ID != weekID {
			continue
		}
		newWeek := fn(week)
		if newWeek == nil {
			return
		}
		weeks := make([]*models.WeekPlan, len(s.state.Weeks))
		copy(weeks, s.state.Weeks)
		weeks[i] = newWeek
		s.commit(&models.AppState{Weeks: weeks, Settings: s.state.Settings})
		return
	}
}

// replaceSettings commits a state with a shallow-copied settings value that
// fn has adjusted. Must be called with the write lock held.
func (s *Store) replaceSettings(fn func(*models.AppSettings)) {
	settings := *s.state.Settings
	fn(&settings)
	s.commit(&models.AppState{Weeks: s.state.Weeks, Settings: &settings})
}

// commit installs the new state, queues a persistence write and notifies
// subscribers. Must be called with the write lock held.
func (s *Store) commit(state *models.AppState) {
	s.state = state
	s.enqueueSave(state)
	s.notify(state)
}

func withDay(week *models.WeekPlan, i int, day *models.DayPlan) *models.WeekPlan {
	out := *week
	days := make([]*models.DayPlan, len(week.Days))
	copy(days, week.Days)
	days[i] = day
	out.Days = days
	return &out
}

func withGroceryList(week *models.WeekPlan, list []*models.GroceryItem) *models.WeekPlan {
	out := *week
	out.GroceryList = list
	return &out
}

func replaceMeal(meals []*models.MealSlot, i int, m *models.MealSlot) []*models.MealSlot {
	out := make([]*models.MealSlot, len(meals))
	copy(out, meals)
	out[i] = m
	return out
}

// enqueueSave records the snapshot as the pending write, replacing any
// not-yet-written one, and wakes the writer.
func (s *Store) enqueueSave(state *models.AppState) {
	ps := &models.PersistedState{
		Version:  SchemaVersion,
		Weeks:    state.Weeks,
		Settings: state.Settings,
	}
	s.pendingMu.Lock()
	s.pending = ps
	s.pendingMu.Unlock()
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Store) saveLoop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.kick:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *Store) flush() {
	s.pendingMu.Lock()
	ps := s.pending
	s.pending = nil
	s.pendingMu.Unlock()
	if ps == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.repo.Save(ctx, ps); err != nil {
		// In-memory state stays authoritative for the session.
		logrus.WithError(err).Error("Failed to persist app state")
	}
}

func (s *Store) notify(state *models.AppState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		// Latest snapshot wins; a slow subscriber just skips ahead.
		select {
		case ch <- state:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
