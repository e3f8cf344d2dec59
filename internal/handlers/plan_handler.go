package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/internal/services"
	"github.com/Dias221467/Meal_Planner/internal/store"
	"github.com/gorilla/mux"
)

type PlanHandler struct {
	Store        *store.Store
	WeekService  *services.WeekService
	StatsService *services.StatsService
}

func NewPlanHandler(s *store.Store, weekService *services.WeekService, statsService *services.StatsService) *PlanHandler {
	return &PlanHandler{
		Store:        s,
		WeekService:  weekService,
		StatsService: statsService,
	}
}

// GetWeeksHandler returns all four weeks of the cycle.
func (h *PlanHandler) GetWeeksHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.State().Weeks)
}

// GetWeekHandler returns a single week by id.
func (h *PlanHandler) GetWeekHandler(w http.ResponseWriter, r *http.Request) {
	weekID := mux.Vars(r)["weekId"]

	week := h.Store.Week(weekID)
	if week == nil {
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(week)
}

// GetActiveWeekHandler returns the week the app should show by default:
// the manual override when set, otherwise the calendar-derived week.
func (h *PlanHandler) GetActiveWeekHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.WeekService.ActiveWeek())
}

// UpdateMealHandler merges a partial update into one meal slot. Stale ids
// are not an error: the store treats them as a no-op and the current week is
// returned either way.
func (h *PlanHandler) UpdateMealHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	weekID, dayID, mealID := vars["weekId"], vars["dayId"], vars["mealId"]

	var upd models.MealSlotUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	h.Store.UpdateMeal(weekID, dayID, mealID, &upd)

	week := h.Store.Week(weekID)
	if week == nil {
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(week)
}

// UpsertMealHandler updates the day's meal for a definition, creating the
// slot when the day has none yet.
func (h *PlanHandler) UpsertMealHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	weekID, dayID := vars["weekId"], vars["dayId"]

	var req struct {
		DefinitionID string  `json:"definitionId"`
		Name         *string `json:"name"`
		Notes        *string `json:"notes"`
		IsDone       *bool   `json:"isDone"`
		Time         *string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.DefinitionID == "" {
		http.Error(w, "definitionId is required", http.StatusBadRequest)
		return
	}

	upd := &models.MealSlotUpdate{
		Name:   req.Name,
		Notes:  req.Notes,
		IsDone: req.IsDone,
		Time:   req.Time,
	}
	h.Store.UpsertMeal(weekID, dayID, req.DefinitionID, upd)

	week := h.Store.Week(weekID)
	if week == nil {
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(week)
}

// GetStatsHandler returns adherence stats for the requested week, or the
// active week when none is named.
func (h *PlanHandler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	week := h.WeekService.ActiveWeek()
	if weekID := r.URL.Query().Get("weekId"); weekID != "" {
		week = h.Store.Week(weekID)
		if week == nil {
			http.Error(w, "Week not found", http.StatusNotFound)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.StatsService.ForWeek(week))
}
