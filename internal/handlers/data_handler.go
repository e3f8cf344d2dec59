package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Meal_Planner/internal/store"
	"github.com/sirupsen/logrus"
)

type DataHandler struct {
	Store *store.Store
}

func NewDataHandler(s *store.Store) *DataHandler {
	return &DataHandler{Store: s}
}

// ImportDataHandler merges an external backup into the canonical 4-week
// structure. The payload must carry at least one of the weeks/settings keys;
// the shape check lives here at the boundary, the store itself never
// rejects.
func (h *DataHandler) ImportDataHandler(w http.ResponseWriter, r *http.Request) {
	var payload store.ImportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid import file", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !payload.HasData() {
		http.Error(w, "Import file must contain weeks or settings", http.StatusBadRequest)
		return
	}

	h.Store.ImportData(&payload)
	logrus.Info("Import applied")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.State())
}

// ExportDataHandler returns the full state as a backup document. The output
// round-trips through ImportDataHandler.
func (h *DataHandler) ExportDataHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="meal-planner-backup.json"`)
	json.NewEncoder(w).Encode(h.Store.State())
}

// ResetDataHandler restores the empty 4-week template. Meal definitions
// survive the reset.
func (h *DataHandler) ResetDataHandler(w http.ResponseWriter, r *http.Request) {
	h.Store.ResetData()
	logrus.Info("App state reset to defaults")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.State())
}
