package calculator

import (
	"sort"
	"strings"
	"time"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// Proximity classifies how soon an upcoming hearing is.
type Proximity int

const (
	Later Proximity = iota
	Today
	Tomorrow
)

// HearingAlert is an upcoming hearing with its parsed date and proximity.
type HearingAlert struct {
	Hearing   models.Hearing
	Date      time.Time
	Proximity Proximity
}

// Label is the human-readable "when" of the alert: "Today", "Tomorrow" or
// the hearing date itself.
func (a HearingAlert) Label() string {
	switch a.Proximity {
	case Today:
		return "Today"
	case Tomorrow:
		return "Tomorrow"
	default:
		return models.FormatDate(a.Date)
	}
}

// UpcomingHearings selects hearings on or after today, sorted by date and then
// client name, and classifies each one. Hearings whose date cannot be parsed
// are skipped. A positive horizonDays also drops hearings more than that
// many days ahead.
func UpcomingHearings(today time.Time, hearings []models.Hearing, horizonDays int) []HearingAlert {
	start := models.Day(today)
	tomorrow := start.AddDate(0, 0, 1)

	var alerts []HearingAlert
	for _, h := range hearings {
		date, err := models.ParseDate(h.Date)
		if err != nil {
			continue
		}
		if date.Before(start) {
			continue
		}
		if horizonDays > 0 && date.After(start.AddDate(0, 0, horizonDays)) {
			continue
		}

		proximity := Later
		switch {
		case date.Equal(start):
			proximity = Today
		case date.Equal(tomorrow):
			proximity = Tomorrow
		}

		alerts = append(alerts, HearingAlert{Hearing: h, Date: date, Proximity: proximity})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if !alerts[i].Date.Equal(alerts[j].Date) {
			return alerts[i].Date.Before(alerts[j].Date)
		}
		return strings.ToLower(alerts[i].Hearing.ClientName) < strings.ToLower(alerts[j].Hearing.ClientName)
	})

	return alerts
}
