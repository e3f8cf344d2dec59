package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reminderTTL is how long a fired reminder stays listable before cleanup.
const reminderTTL = 7 * 24 * time.Hour

type ReminderRepository struct {
	collection *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{collection: db.Collection("reminders")}
}

// RecordReminder stores a fired reminder so the app can show it when it next
// syncs.
func (r *ReminderRepository) RecordReminder(ctx context.Context, reminder *models.Reminder) error {
	reminder.CreatedAt = time.Now()
	if reminder.ExpiresAt.IsZero() {
		reminder.ExpiresAt = reminder.CreatedAt.Add(reminderTTL)
	}

	result, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		return fmt.Errorf("failed to record reminder: %v", err)
	}
	reminder.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// GetRecentReminders returns fired reminders, newest first.
func (r *ReminderRepository) GetRecentReminders(ctx context.Context, limit int64) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %v", err)
	}
	defer cursor.Close(ctx)

	reminders := []models.Reminder{}
	for cursor.Next(ctx) {
		var reminder models.Reminder
		if err := cursor.Decode(&reminder); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

// DeleteExpiredReminders removes reminders past their expiry.
func (r *ReminderRepository) DeleteExpiredReminders(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to delete expired reminders: %v", err)
	}
	return nil
}
