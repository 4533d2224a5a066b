// Package timeline lays out a city's activities on one row per calendar day.
package timeline

import (
	"errors"
	"fmt"

	"tripplanner/internal/domain/models"
	"tripplanner/internal/utils"
)

// MaxDays caps how many day rows one city stay expands into.
const MaxDays = 366

var ErrTooManyDays = errors.New("stay is too long")

// Day is one calendar day of a city stay.
type Day struct {
	Date   string  `json:"date"`
	Label  string  `json:"label"`
	Blocks []Block `json:"blocks"`
}

// Block is an activity placed on its day as percentages of 24h.
// Overlapping activities are not stacked.
type Block struct {
	ActivityID string  `json:"activityId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Text       string  `json:"text"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	LeftPct    float64 `json:"leftPct"`
	WidthPct   float64 `json:"widthPct"`
}

// Build expands [StartDate, EndDate] into day buckets and places each
// activity in the bucket whose date string equals its own. An end date
// before the start yields no days, and a stay longer than MaxDays is an
// ErrTooManyDays error. Activities whose times do not parse are left out.
func Build(c models.City) ([]Day, error) {
	start, err := utils.ParseDate(c.StartDate)
	if err != nil {
		return nil, fmt.Errorf("city %s: invalid start date %q", c.ID, c.StartDate)
	}
	end, err := utils.ParseDate(c.EndDate)
	if err != nil {
		return nil, fmt.Errorf("city %s: invalid end date %q", c.ID, c.EndDate)
	}
	if end.After(start.AddDate(0, 0, MaxDays-1)) {
		return nil, fmt.Errorf("city %s: %w (%s to %s, limit %d days)", c.ID, ErrTooManyDays, c.StartDate, c.EndDate, MaxDays)
	}

	days := []Day{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := utils.FormatDate(d)
		day := Day{Date: date, Label: utils.DayLabel(d), Blocks: []Block{}}
		for _, a := range c.Activities {
			if a.Date != date {
				continue
			}
			if b, ok := Place(a); ok {
				day.Blocks = append(day.Blocks, b)
			}
		}
		days = append(days, day)
	}
	return days, nil
}

// Place positions a single activity within its day.
func Place(a models.Activity) (Block, bool) {
	from, err := utils.ParseClock(a.StartTime)
	if err != nil {
		return Block{}, false
	}
	to, err := utils.ParseClock(a.EndTime)
	if err != nil {
		return Block{}, false
	}
	return Block{
		ActivityID: a.ID,
		Name:       a.Name,
		Color:      a.Color,
		Text:       fmt.Sprintf("%s %s - %s", a.Name, a.StartTime, a.EndTime),
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		LeftPct:    float64(from) / utils.MinutesPerDay * 100,
		WidthPct:   float64(to-from) / utils.MinutesPerDay * 100,
	}, true
}
