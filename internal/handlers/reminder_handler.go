package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dias221467/Meal_Planner/internal/repository"
)

const defaultReminderLimit = 20

type ReminderHandler struct {
	Repo *repository.ReminderRepository
}

func NewReminderHandler(repo *repository.ReminderRepository) *ReminderHandler {
	return &ReminderHandler{Repo: repo}
}

// GetRemindersHandler lists recently fired reminders, newest first.
func (h *ReminderHandler) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultReminderLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	reminders, err := h.Repo.GetRecentReminders(r.Context(), limit)
	if err != nil {
		http.Error(w, "Failed to fetch reminders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}
