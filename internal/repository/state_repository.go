package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stateDocID is the fixed id of the single state document. The whole app
// state is one blob; there is nothing to query inside it server-side.
const stateDocID = "app-state"

type StateRepository struct {
	collection *mongo.Collection
}

func NewStateRepository(db *mongo.Database) *StateRepository {
	return &StateRepository{collection: db.Collection("app_state")}
}

type stateDocument struct {
	ID        string              `bson:"_id"`
	Version   int                 `bson:"version"`
	Weeks     []*models.WeekPlan  `bson:"weeks"`
	Settings  *models.AppSettings `bson:"settings"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

// Load reads the persisted state blob. Returns (nil, nil) when no state has
// been stored yet.
func (r *StateRepository) Load(ctx context.Context) (*models.PersistedState, error) {
	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load app state: %v", err)
	}
	return &models.PersistedState{
		Version:  doc.Version,
		Weeks:    doc.Weeks,
		Settings: doc.Settings,
	}, nil
}

// Save replaces the stored blob with the given snapshot, creating the
// document on first write.
func (r *StateRepository) Save(ctx context.Context, state *models.PersistedState) error {
	doc := stateDocument{
		ID:        stateDocID,
		Version:   state.Version,
		Weeks:     state.Weeks,
		Settings:  state.Settings,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": stateDocID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save app state: %v", err)
	}
	return nil
}
