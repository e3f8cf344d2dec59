package models

// MealSlot is one planned (or still empty) meal within a day. An empty Name
// means the slot is unplanned. DefinitionID points at a MealDefinition but is
// not an ownership relation: it may dangle after the definition is removed,
// and the slot keeps its own name/time in that case.
type MealSlot struct {
	ID           string `bson:"id" json:"id"`
	DefinitionID string `bson:"definitionId" json:"definitionId"`
	Name         string `bson:"name" json:"name"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
	IsDone       bool   `bson:"isDone" json:"isDone"`
	Time         string `bson:"time,omitempty" json:"time,omitempty"` // "HH:MM", overrides the definition's default
}

// DayPlan is one calendar day within a week. DayIndex is fixed at creation:
// 0 = Monday .. 6 = Sunday.
type DayPlan struct {
	ID        string      `bson:"id" json:"id"`
	DayOfWeek string      `bson:"dayOfWeek" json:"dayOfWeek"`
	DayIndex  int         `bson:"dayIndex" json:"dayIndex"`
	Meals     []*MealSlot `bson:"meals" json:"meals"`
}

// GroceryItem is a shopping-list entry scoped to one week.
type GroceryItem struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Quantity  string `bson:"quantity" json:"quantity"`
	Category  string `bson:"category,omitempty" json:"category,omitempty"`
	IsChecked bool   `bson:"isChecked" json:"isChecked"`
}

// WeekPlan is one of the four cyclical planning buckets. The collection of
// weeks always has exactly four elements with fixed ids week-0..week-3.
type WeekPlan struct {
	ID          string         `bson:"id" json:"id"`
	Label       string         `bson:"label" json:"label"`
	Days        []*DayPlan     `bson:"days" json:"days"`
	GroceryList []*GroceryItem `bson:"groceryList" json:"groceryList"`
}

// Day returns the day with the given id, or nil.
func (w *WeekPlan) Day(dayID string) *DayPlan {
	for _, d := range w.Days {
		if d.ID == dayID {
			return d
		}
	}
	return nil
}

// MealSlotUpdate is a partial update for a MealSlot; nil fields are left
// untouched.
type MealSlotUpdate struct {
	DefinitionID *string `json:"definitionId,omitempty"`
	Name         *string `json:"name,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	IsDone       *bool   `json:"isDone,omitempty"`
	Time         *string `json:"time,omitempty"`
}

// Apply merges the update into a copy of the given slot.
func (u *MealSlotUpdate) Apply(m *MealSlot) *MealSlot {
	out := *m
	if u.DefinitionID != nil {
		out.DefinitionID = *u.DefinitionID
	}
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Notes != nil {
		out.Notes = *u.Notes
	}
	if u.IsDone != nil {
		out.IsDone = *u.IsDone
	}
	if u.Time != nil {
		out.Time = *u.Time
	}
	return &out
}
