package models

import "time"

const (
	FrequencyDaily  = "daily"
	FrequencyCustom = "custom"
)

const (
	ConfigWeeklyCount  = "weekly_count"
	ConfigSpecificDays = "specific_days"
)

// FrequencyConfig is the tagged payload stored alongside custom-frequency
// habits. Exactly one variant is populated: Count for weekly_count,
// Days for specific_days (0=Sunday .. 6=Saturday).
type FrequencyConfig struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
	Days  []int  `json:"days,omitempty"`
}

type Habit struct {
	ID              string           `gorm:"primaryKey" json:"id"`
	UserID          uint             `gorm:"not null;index" json:"user_id"`
	Name            string           `gorm:"not null" json:"name"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	ColorHex        string           `json:"color_hex"`
	Icon            string           `json:"icon"`
	Frequency       string           `gorm:"not null;default:daily" json:"frequency"`
	FrequencyConfig *FrequencyConfig `gorm:"serializer:json" json:"frequency_config,omitempty"`
	IsArchived      bool             `gorm:"not null;default:false" json:"is_archived"`
	SortOrder       int              `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Completion marks a habit done on a calendar date. CompletedDate is a
// YYYY-MM-DD string; the (habit_id, completed_date) pair is unique at the
// storage layer.
type Completion struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	HabitID       string    `gorm:"not null;uniqueIndex:uidx_habit_date" json:"habit_id"`
	CompletedDate string    `gorm:"type:date;not null;uniqueIndex:uidx_habit_date" json:"completed_date"`
	CreatedAt     time.Time `json:"created_at"`
}
