package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/internal/scheduler"
	"github.com/Dias221467/Meal_Planner/internal/store"
	"github.com/Dias221467/Meal_Planner/pkg/idgen"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	Store     *store.Store
	Scheduler *scheduler.ReminderScheduler
}

func NewSettingsHandler(s *store.Store, sched *scheduler.ReminderScheduler) *SettingsHandler {
	return &SettingsHandler{Store: s, Scheduler: sched}
}

// GetSettingsHandler returns the current settings.
func (h *SettingsHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.State().Settings)
}

// SetActiveWeekOverrideHandler sets or clears the manual active-week
// override. A null weekId clears it.
func (h *SettingsHandler) SetActiveWeekOverrideHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekID *string `json:"weekId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	h.Store.SetActiveWeekOverride(req.WeekID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.State().Settings)
}

// SetGroceryReminderHandler toggles the weekly grocery reminder and rebuilds
// the reminder schedule before responding, so the toggle and the reschedule
// act as one unit.
func (h *SettingsHandler) SetGroceryReminderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	h.Store.SetGroceryReminderEnabled(req.Enabled)
	settings := h.Store.State().Settings
	h.Scheduler.ScheduleAll(settings)

	logrus.WithField("enabled", req.Enabled).Info("Grocery reminder toggled")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// AddMealDefinitionHandler creates a new meal slot definition. An id is
// generated when the client does not supply one.
func (h *SettingsHandler) AddMealDefinitionHandler(w http.ResponseWriter, r *http.Request) {
	var def models.MealDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if def.Name == "" {
		http.Error(w, "Definition must have a name", http.StatusBadRequest)
		return
	}
	if def.ID == "" {
		def.ID = idgen.New()
	}

	h.Store.AddMealDefinition(&def)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&def)
}

// UpdateMealDefinitionHandler merges a partial update into a definition.
func (h *SettingsHandler) UpdateMealDefinitionHandler(w http.ResponseWriter, r *http.Request) {
	defID := mux.Vars(r)["defId"]

	var upd models.MealDefinitionUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	h.Store.UpdateMealDefinition(defID, &upd)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.State().Settings.MealDefinitions)
}

// RemoveMealDefinitionHandler removes a definition. Planned slots that
// reference it keep their data.
func (h *SettingsHandler) RemoveMealDefinitionHandler(w http.ResponseWriter, r *http.Request) {
	defID := mux.Vars(r)["defId"]

	h.Store.RemoveMealDefinition(defID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.State().Settings.MealDefinitions)
}
