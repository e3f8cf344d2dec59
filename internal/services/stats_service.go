package services

import (
	"math"
	"strings"

	"github.com/Dias221467/Meal_Planner/internal/models"
)

// WeeklyStats are the adherence metrics for one week. Only slots with a
// non-empty name count as planned; empty slots would skew the rate.
type WeeklyStats struct {
	WeekID         string `json:"weekId"`
	PlannedMeals   int    `json:"plannedMeals"`
	CompletedMeals int    `json:"completedMeals"`
	AdherenceRate  int    `json:"adherenceRate"` // rounded percentage
	DailyCompleted [7]int `json:"dailyCompleted"`
}

// StatsService computes adherence statistics over the meal plan.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// ForWeek computes the stats for a single week.
func (s *StatsService) ForWeek(week *models.WeekPlan) WeeklyStats {
	stats := WeeklyStats{WeekID: week.ID}

	for _, day := range week.Days {
		done := 0
		for _, meal := range day.Meals {
			if strings.TrimSpace(meal.Name) == "" {
				continue
			}
			stats.PlannedMeals++
			if meal.IsDone {
				done++
			}
		}
		stats.CompletedMeals += done
		if day.DayIndex >= 0 && day.DayIndex < len(stats.DailyCompleted) {
			stats.DailyCompleted[day.DayIndex] = done
		}
	}

	if stats.PlannedMeals > 0 {
		stats.AdherenceRate = int(math.Round(float64(stats.CompletedMeals) / float64(stats.PlannedMeals) * 100))
	}
	return stats
}
