package models

// MealDefinition is a user-configurable recurring meal category ("Breakfast",
// "Lunch", ...). Removing a definition does not touch MealSlots that still
// reference its id.
type MealDefinition struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	DefaultTime string `bson:"defaultTime,omitempty" json:"defaultTime,omitempty"` // "HH:MM"
	Notify      bool   `bson:"notify" json:"notify"`
}

// MealDefinitionUpdate is a partial update for a MealDefinition.
type MealDefinitionUpdate struct {
	Name        *string `json:"name,omitempty"`
	DefaultTime *string `json:"defaultTime,omitempty"`
	Notify      *bool   `json:"notify,omitempty"`
}

// Apply merges the update into a copy of the given definition.
func (u *MealDefinitionUpdate) Apply(d *MealDefinition) *MealDefinition {
	out := *d
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.DefaultTime != nil {
		out.DefaultTime = *u.DefaultTime
	}
	if u.Notify != nil {
		out.Notify = *u.Notify
	}
	return &out
}

// AppSettings is the process-wide configuration part of the state.
// GroceryReminderDay is 0 = Monday .. 6 = Sunday.
type AppSettings struct {
	GroceryReminderEnabled bool              `bson:"isGroceryReminderEnabled" json:"isGroceryReminderEnabled"`
	GroceryReminderDay     int               `bson:"groceryReminderDay" json:"groceryReminderDay"`
	GroceryReminderTime    string            `bson:"groceryReminderTime" json:"groceryReminderTime"`
	ActiveWeekOverride     *string           `bson:"activeWeekOverride" json:"activeWeekOverride"`
	MealDefinitions        []*MealDefinition `bson:"mealDefinitions" json:"mealDefinitions"`
}

// AppState is the root aggregate, persisted as one unit.
type AppState struct {
	Weeks    []*WeekPlan  `bson:"weeks" json:"weeks"`
	Settings *AppSettings `bson:"settings" json:"settings"`
}

// Week returns the week with the given id, or nil.
func (s *AppState) Week(weekID string) *WeekPlan {
	for _, w := range s.Weeks {
		if w.ID == weekID {
			return w
		}
	}
	return nil
}

// PersistedState is the durable envelope for AppState: the state blob plus
// the schema version it was written with.
type PersistedState struct {
	Version  int          `bson:"version" json:"version"`
	Weeks    []*WeekPlan  `bson:"weeks" json:"weeks"`
	Settings *AppSettings `bson:"settings" json:"settings"`
}
