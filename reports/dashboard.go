package reports

import (
	"time"

	"github.com/linesmerrill/avenue-police-api/models"
)

// Dashboard is everything the reports screen shows at once.
type Dashboard struct {
	Period          Period                `json:"period"`
	Stats           models.Stats          `json:"stats"`
	ArrestsToday    int                   `json:"arrestsToday"`
	ActiveOfficers  int                   `json:"activeOfficers"`
	TopStatutes     []models.StatuteCount `json:"topStatutes"`
	OfficerRanking  []models.OfficerRank  `json:"officerRanking"`
	AttorneyRanking []models.AttorneyRank `json:"attorneyRanking"`
	Officers        []models.Officer      `json:"officers"`
	Timeline        []TimelineEntry       `json:"timeline"`
	GeneratedAt     time.Time             `json:"generatedAt"`
}

// TimelineEntry is a report on the timeline with its display timestamp.
type TimelineEntry struct {
	models.ArrestReport
	DisplayDate string `json:"displayDate"`
}

// BuildDashboard aggregates a snapshot. Stats, statutes and the timeline follow
// the criteria; the rankings and the officer list always cover every report.
func BuildDashboard(s Snapshot, c Criteria) Dashboard {
	now := c.Now
	if now.IsZero() {
		now = time.Now()
		c.Now = now
	}
	filtered := Filter(s.Reports, c)

	active := 0
	for _, u := range s.Officers {
		if u.Details.Active {
			active++
		}
	}

	timeline := Timeline(filtered, TimelineLimit)
	entries := make([]TimelineEntry, len(timeline))
	for i, r := range timeline {
		entries[i] = TimelineEntry{ArrestReport: r, DisplayDate: FormatTimestamp(r.Details.CreatedAt)}
	}

	period := c.Period
	if period == "" {
		period = AllTime
	}

	return Dashboard{
		Period:          period,
		Stats:           ComputeStats(filtered),
		ArrestsToday:    ArrestsToday(s.Reports, now),
		ActiveOfficers:  active,
		TopStatutes:     TopStatutes(filtered, DefaultLimit),
		OfficerRanking:  OfficerRanking(s.Reports, DefaultLimit),
		AttorneyRanking: AttorneyRanking(s.Reports, DefaultLimit),
		Officers:        DistinctOfficers(s.Reports),
		Timeline:        entries,
		GeneratedAt:     now,
	}
}
