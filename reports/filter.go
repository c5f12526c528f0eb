package reports

import (
	"strings"
	"time"

	"github.com/linesmerrill/avenue-police-api/models"
)

// Period restricts reports to a calendar month.
type Period string

// Periods
const (
	AllTime       Period = "ALL"
	CurrentMonth  Period = "CURRENT_MONTH"
	PreviousMonth Period = "PREVIOUS_MONTH"
)

// AllOfficers disables the officer filter.
const AllOfficers = "all"

// ParsePeriod maps a query value to a Period. Unknown values mean AllTime.
func ParsePeriod(s string) Period {
	switch Period(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrentMonth:
		return CurrentMonth
	case PreviousMonth:
		return PreviousMonth
	}
	return AllTime
}

// Criteria are the filters applied to the report list. Now anchors the period
// filter and its location decides month boundaries; the zero value means
// time.Now().
type Criteria struct {
	Period    Period
	OfficerID string
	Search    string
	Now       time.Time
}

// Filter returns the reports matching every criterion, in input order. A
// report whose timestamp cannot be read is never dropped by the period filter.
func Filter(records []models.ArrestReport, c Criteria) []models.ArrestReport {
	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	year, month, ok := targetMonth(c.Period, now)
	search := strings.ToLower(c.Search)

	out := make([]models.ArrestReport, 0, len(records))
	for _, r := range records {
		if ok && !inMonth(r.Details.CreatedAt, year, month, now.Location()) {
			continue
		}
		if c.OfficerID != "" && c.OfficerID != AllOfficers && r.Details.Officer.Passport != c.OfficerID {
			continue
		}
		if search != "" && !matches(r.Details, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func targetMonth(p Period, now time.Time) (int, time.Month, bool) {
	switch p {
	case CurrentMonth:
		return now.Year(), now.Month(), true
	case PreviousMonth:
		if now.Month() == time.January {
			return now.Year() - 1, time.December, true
		}
		return now.Year(), now.Month() - 1, true
	}
	return 0, 0, false
}

func inMonth(createdAt string, year int, month time.Month, loc *time.Location) bool {
	t, ok := ParseTimestamp(createdAt)
	if !ok {
		return true
	}
	t = t.In(loc)
	return t.Year() == year && t.Month() == month
}

func matches(d models.ArrestReportDetails, term string) bool {
	for _, field := range []string{d.Accused.Name, d.Accused.Passport, d.Officer.Name, d.Officer.Passport} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
