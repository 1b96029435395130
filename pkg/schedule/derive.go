// Package schedule turns a crop's activity template into dated tasks.
package schedule

import (
	"fmt"
	"time"

	"agriplan/entities"
	"agriplan/pkg/catalog"
)

// StartOfDay truncates t to midnight UTC. The planner works in calendar
// days, so callers pass StartOfDay(time.Now()) as now.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ActivityID(cropID string, i int) string {
	return fmt.Sprintf("%s-activity-%d", cropID, i)
}

// DeriveActivities dates every template entry from plantingDate and keeps
// the ones not due before now, in template order. The index in the ID is the
// template index, so skipped entries leave gaps.
func DeriveActivities(cropID string, p catalog.CropProfile, plantingDate, now time.Time) []entities.PlannedActivity {
	out := make([]entities.PlannedActivity, 0, len(p.Activities))
	for i, tpl := range p.Activities {
		due := plantingDate.AddDate(0, 0, tpl.DayOffset)
		if due.Before(now) {
			continue
		}
		out = append(out, entities.PlannedActivity{
			ID:      ActivityID(cropID, i),
			CropID:  cropID,
			Type:    tpl.Type,
			DueDate: due,
			Notes:   tpl.Notes,
		})
	}
	return out
}

func HarvestDate(p catalog.CropProfile, plantingDate time.Time) time.Time {
	return plantingDate.AddDate(0, 0, p.GrowthDurationDays)
}
