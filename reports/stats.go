package reports

import (
	"math"
	"sort"
	"time"

	"github.com/linesmerrill/avenue-police-api/models"
)

// DefaultLimit is the length of every leaderboard unless asked otherwise.
const DefaultLimit = 10

// TimelineLimit is how many reports the timeline shows.
const TimelineLimit = 20

// ComputeStats totals the given reports.
func ComputeStats(records []models.ArrestReport) models.Stats {
	var s models.Stats
	for _, r := range records {
		s.Count++
		s.TotalFineCollected += r.Details.Totals.FineFinal
		s.TotalSentenceMonths += r.Details.Totals.SentenceFinal
		if r.Details.Reductions.AttorneyApplied {
			s.AttorneyCaseCount++
		}
		if r.Details.Reductions.CooperationApplied {
			s.CooperationCaseCount++
		}
	}
	if s.Count > 0 {
		s.AverageFine = int64(math.Floor(float64(s.TotalFineCollected)/float64(s.Count) + 0.5))
		s.AverageSentence = int64(math.Floor(float64(s.TotalSentenceMonths)/float64(s.Count) + 0.5))
	}
	return s
}

// TopStatutes counts how often each statute was charged. Ties keep the order
// in which the statutes were first seen.
func TopStatutes(records []models.ArrestReport, limit int) []models.StatuteCount {
	idx := map[string]int{}
	var out []models.StatuteCount
	for _, r := range records {
		for _, v := range r.Details.Violations {
			i, ok := idx[v.Article]
			if !ok {
				i = len(out)
				idx[v.Article] = i
				out = append(out, models.StatuteCount{Article: v.Article})
			}
			out[i].Count++
			out[i].TotalFine += v.Fine
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return truncate(out, limit)
}

// OfficerRanking ranks officers by number of arrests across all reports.
func OfficerRanking(records []models.ArrestReport, limit int) []models.OfficerRank {
	idx := map[string]int{}
	out := []models.OfficerRank{}
	for _, r := range records {
		o := r.Details.Officer
		i, ok := idx[o.Passport]
		if !ok {
			i = len(out)
			idx[o.Passport] = i
			out = append(out, models.OfficerRank{OfficerPassport: o.Passport, OfficerName: o.Name})
		}
		out[i].ArrestCount++
		out[i].TotalFineCollected += r.Details.Totals.FineFinal
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArrestCount > out[j].ArrestCount
	})
	return truncate(out, limit)
}

// AttorneyRanking ranks attorneys by number of cases across reports that had one.
func AttorneyRanking(records []models.ArrestReport, limit int) []models.AttorneyRank {
	idx := map[string]int{}
	var out []models.AttorneyRank
	for _, r := range records {
		if !r.Details.HasAttorney() {
			continue
		}
		a := r.Details.Attorney
		i, ok := idx[a.Passport]
		if !ok {
			i = len(out)
			idx[a.Passport] = i
			out = append(out, models.AttorneyRank{AttorneyPassport: a.Passport, AttorneyName: a.Name})
		}
		out[i].CaseCount++
		if r.Details.Reductions.AttorneyApplied {
			out[i].ReductionAppliedCount++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CaseCount > out[j].CaseCount
	})
	return truncate(out, limit)
}

// DistinctOfficers lists every officer that filed a report, in first-seen order.
func DistinctOfficers(records []models.ArrestReport) []models.Officer {
	seen := map[string]bool{}
	out := []models.Officer{}
	for _, r := range records {
		o := r.Details.Officer
		if seen[o.Passport] {
			continue
		}
		seen[o.Passport] = true
		out = append(out, o)
	}
	return out
}

// ArrestsToday counts the reports created on now's calendar day.
func ArrestsToday(records []models.ArrestReport, now time.Time) int {
	y, m, d := now.Date()
	n := 0
	for _, r := range records {
		t, ok := ParseTimestamp(r.Details.CreatedAt)
		if !ok {
			continue
		}
		ty, tm, td := t.In(now.Location()).Date()
		if ty == y && tm == m && td == d {
			n++
		}
	}
	return n
}

// Timeline returns the newest reports first. Reports with unreadable
// timestamps go last in their original order.
func Timeline(records []models.ArrestReport, limit int) []models.ArrestReport {
	type entry struct {
		r  models.ArrestReport
		t  time.Time
		ok bool
	}
	entries := make([]entry, len(records))
	for i, r := range records {
		t, ok := ParseTimestamp(r.Details.CreatedAt)
		entries[i] = entry{r: r, t: t, ok: ok}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ok != entries[j].ok {
			return entries[i].ok
		}
		return entries[i].t.After(entries[j].t)
	})
	out := make([]models.ArrestReport, len(entries))
	for i, e := range entries {
		out[i] = e.r
	}
	return truncate(out, limit)
}

func truncate[T any](s []T, limit int) []T {
	if s == nil {
		s = []T{}
	}
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
