package services

import (
	"time"

	"github.com/fogmarch/habitgrid/internal/models"
)

// IsDueOn reports whether a habit is due on the given day per its frequency
// rule. Weekday numbering follows time.Weekday: 0=Sunday .. 6=Saturday.
// Malformed or unknown configs are never due.
func IsDueOn(habit models.Habit, day time.Time) bool {
	if habit.Frequency == models.FrequencyDaily {
		return true
	}
	if habit.Frequency != models.FrequencyCustom || habit.FrequencyConfig == nil {
		return false
	}

	config := habit.FrequencyConfig
	switch config.Type {
	case models.ConfigWeeklyCount:
		// The weekly target is advisory; completion may land on any day.
		return true
	case models.ConfigSpecificDays:
		weekday := int(day.Weekday())
		for _, due := range config.Days {
			if due == weekday {
				return true
			}
		}
		return false
	}

	return false
}
