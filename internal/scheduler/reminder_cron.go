// Package scheduler turns the meal definitions and the grocery-reminder
// settings into repeating cron jobs. Rescheduling always cancels the whole
// previous schedule first so a settings change can never leave a partial
// schedule behind.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Dias221467/Meal_Planner/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const fireTimeout = 10 * time.Second

// ReminderSink stores fired reminders and cleans up expired ones.
type ReminderSink interface {
	RecordReminder(ctx context.Context, reminder *models.Reminder) error
	DeleteExpiredReminders(ctx context.Context) error
}

// Mailer optionally delivers the grocery reminder by email.
type Mailer interface {
	Send(subject, body string) error
}

type ReminderScheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	sink   ReminderSink
	mailer Mailer // nil when email delivery is not configured
}

func NewReminderScheduler(sink ReminderSink, mailer Mailer) *ReminderScheduler {
	return &ReminderScheduler{sink: sink, mailer: mailer}
}

// ScheduleAll cancels every scheduled reminder and rebuilds the schedule
// from the given settings: one weekly grocery reminder when enabled, one
// daily reminder per definition with notify set and a parseable time, plus a
// daily cleanup of expired reminder records. The lock makes cancel and
// reschedule one atomic unit.
func (s *ReminderScheduler) ScheduleAll(settings *models.AppSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}
	c := cron.New()

	if settings.GroceryReminderEnabled {
		spec, ok := weeklySpec(settings.GroceryReminderDay, settings.GroceryReminderTime)
		if ok {
			c.AddFunc(spec, s.fireGroceryReminder)
		} else {
			logrus.WithFields(logrus.Fields{
				"day":  settings.GroceryReminderDay,
				"time": settings.GroceryReminderTime,
			}).Warn("Invalid grocery reminder settings, skipping")
		}
	}

	for _, def := range settings.MealDefinitions {
		def := def
		if !def.Notify {
			continue
		}
		hour, minute, ok := parseClock(def.DefaultTime)
		if !ok {
			continue
		}
		c.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), func() {
			s.fireMealReminder(def)
		})
	}

	c.AddFunc("@daily", s.cleanupExpired)

	c.Start()
	s.cron = c
	logrus.WithField("entries", len(c.Entries())).Info("Reminder schedule rebuilt")
}

// Stop cancels all scheduled reminders.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

// ScheduledCount returns the number of active cron entries, including the
// cleanup job.
func (s *ReminderScheduler) ScheduledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

func (s *ReminderScheduler) fireGroceryReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	reminder := &models.Reminder{
		Type:    models.ReminderTypeGrocery,
		Title:   "Grocery Shopping Time!",
		Message: "Don't forget to check your plan for the upcoming week.",
	}
	if err := s.sink.RecordReminder(ctx, reminder); err != nil {
		logrus.WithError(err).Error("Failed to record grocery reminder")
	}

	if s.mailer != nil {
		if err := s.mailer.Send(reminder.Title, reminder.Message); err != nil {
			logrus.WithError(err).Warn("Failed to email grocery reminder")
		}
	}
}

func (s *ReminderScheduler) fireMealReminder(def *models.MealDefinition) {
	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	reminder := &models.Reminder{
		Type:    models.ReminderTypeMeal,
		Title:   fmt.Sprintf("Time for %s!", def.Name),
		Message: "Check your meal plan.",
	}
	if err := s.sink.RecordReminder(ctx, reminder); err != nil {
		logrus.WithError(err).Errorf("Failed to record reminder for %s", def.Name)
	}
}

func (s *ReminderScheduler) cleanupExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()
	if err := s.sink.DeleteExpiredReminders(ctx); err != nil {
		logrus.WithError(err).Error("Failed to delete expired reminders")
	}
}

// weeklySpec builds a cron spec for a weekly reminder. day uses the app's
// 0=Monday..6=Sunday convention; cron wants 0=Sunday.
func weeklySpec(day int, clock string) (string, bool) {
	if day < 0 || day > 6 {
		return "", false
	}
	hour, minute, ok := parseClock(clock)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d %d * * %d", minute, hour, (day+1)%7), true
}

// parseClock parses "HH:MM". Definitions without a valid time simply get no
// reminder.
func parseClock(clock string) (hour, minute int, ok bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
