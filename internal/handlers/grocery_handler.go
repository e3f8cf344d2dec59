package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/Dias221467/Meal_Planner/internal/store"
	"github.com/gorilla/mux"
)

type GroceryHandler struct {
	Store *store.Store
}

func NewGroceryHandler(s *store.Store) *GroceryHandler {
	return &GroceryHandler{Store: s}
}

// AddGroceryItemHandler appends an item to the week's shopping list.
func (h *GroceryHandler) AddGroceryItemHandler(w http.ResponseWriter, r *http.Request) {
	weekID := mux.Vars(r)["weekId"]

	var req struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Name == "" {
		http.Error(w, "Item must have a name", http.StatusBadRequest)
		return
	}

	h.Store.AddGroceryItem(weekID, models.GroceryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
	})
	h.respondWithList(w, weekID)
}

// ToggleGroceryItemHandler flips an item's checked flag.
func (h *GroceryHandler) ToggleGroceryItemHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.Store.ToggleGroceryItem(vars["weekId"], vars["itemId"])
	h.respondWithList(w, vars["weekId"])
}

// RemoveGroceryItemHandler removes an item from the list.
func (h *GroceryHandler) RemoveGroceryItemHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.Store.RemoveGroceryItem(vars["weekId"], vars["itemId"])
	h.respondWithList(w, vars["weekId"])
}

// ClearGroceryChecksHandler unchecks every item in the week's list.
func (h *GroceryHandler) ClearGroceryChecksHandler(w http.ResponseWriter, r *http.Request) {
	weekID := mux.Vars(r)["weekId"]
	h.Store.ClearGroceryChecks(weekID)
	h.respondWithList(w, weekID)
}

func (h *GroceryHandler) respondWithList(w http.ResponseWriter, weekID string) {
	week := h.Store.Week(weekID)
	if week == nil {
		http.Error(w, "Week not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(week.GroceryList)
}
