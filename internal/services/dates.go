package services

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date wire and storage format. Dates carry no
// time-of-day or timezone component anywhere in the system.
const DateLayout = "2006-01-02"

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

func FormatDate(day time.Time) string {
	return day.Format(DateLayout)
}

// MondayOf returns the Monday that starts the week containing day.
func MondayOf(day time.Time) time.Time {
	year, month, date := day.Date()
	midnight := time.Date(year, month, date, 0, 0, 0, 0, time.UTC)
	shift := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -shift)
}

// WeekWindow returns the Monday-start inclusive bounds of the week
// containing day, as calendar-date strings.
func WeekWindow(day time.Time) (string, string) {
	monday := MondayOf(day)
	return FormatDate(monday), FormatDate(monday.AddDate(0, 0, 6))
}

// DaysBetween lists every calendar date from startDate through endDate
// inclusive.
func DaysBetween(startDate string, endDate string) ([]time.Time, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	days := make([]time.Time, 0, 7)
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, cursor)
	}
	return days, nil
}
