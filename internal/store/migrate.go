package store

import (
	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/sirupsen/logrus"
)

// SchemaVersion is the version written with every persisted blob. Stored
// blobs with an older version are migrated forward one step at a time.
const SchemaVersion = 1

// Migrate upgrades a persisted blob to the current schema version. The input
// is not modified.
func Migrate(ps *models.PersistedState) *models.PersistedState {
	out := *ps
	for out.Version < SchemaVersion {
		switch out.Version {
		case 0:
			migrateV0toV1(&out)
		}
		out.Version++
	}
	return &out
}

// v0 blobs predate configurable meal slots: settings carry no definitions.
// Inject the built-in four; everything else passes through unchanged.
func migrateV0toV1(ps *models.PersistedState) {
	if ps.Settings == nil {
		ps.Settings = DefaultSettings()
		return
	}
	if ps.Settings.MealDefinitions == nil {
		settings := *ps.Settings
		settings.MealDefinitions = DefaultDefinitions()
		ps.Settings = &settings
		logrus.Info("Migrated persisted state v0 -> v1: injected default meal definitions")
	}
}
