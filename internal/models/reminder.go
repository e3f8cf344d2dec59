package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder types.
const (
	ReminderTypeMeal    = "meal"
	ReminderTypeGrocery = "grocery"
)

// Reminder is a record of a fired reminder. The mobile app polls these
// instead of receiving device-local notifications.
type Reminder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"` // for periodic cleanup
}
