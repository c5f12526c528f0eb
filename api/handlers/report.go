package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/reports"
)

const (
	defaultChartWidth  = 8 * vg.Inch
	defaultChartHeight = 4 * vg.Inch
	maxChartInches     = 20
)

// Report exists for the dashboard handlers
type Report struct {
	Cache *reports.Cache
}

// DashboardHandler returns every aggregate of the reports screen for the
// requested ?period=, ?officer= and ?search=
func (re Report) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := re.Cache.Get(r.Context())
	if err != nil {
		config.ErrorStatus("failed to load reports", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, reports.BuildDashboard(snap, criteriaFromRequest(r)))
}

// TopStatutesChartHandler renders the statute leaderboard for the requested
// filters as a PNG. ?limit=, ?width= and ?height= (inches) are optional.
func (re Report) TopStatutesChartHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := re.Cache.Get(r.Context())
	if err != nil {
		config.ErrorStatus("failed to load reports", http.StatusInternalServerError, w, err)
		return
	}

	q := r.URL.Query()
	limit := intParam(q.Get("limit"), reports.DefaultLimit, 1, 50)
	width := vg.Length(intParam(q.Get("width"), 0, 1, maxChartInches)) * vg.Inch
	if width == 0 {
		width = defaultChartWidth
	}
	height := vg.Length(intParam(q.Get("height"), 0, 1, maxChartInches)) * vg.Inch
	if height == 0 {
		height = defaultChartHeight
	}

	filtered := reports.Filter(snap.Reports, criteriaFromRequest(r))
	var buf bytes.Buffer
	if err := reports.WriteTopStatutesChart(&buf, reports.TopStatutes(filtered, limit), width, height); err != nil {
		config.ErrorStatus("failed to render chart", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// RefreshHandler drops the cached reports so the next read refetches them
func (re Report) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	re.Cache.Invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"refreshedAt": time.Now().UTC().Format(time.RFC3339)})
}

// intParam parses a positive query value, falling back to def when it is
// missing or outside [lo, hi]
func intParam(s string, def, lo, hi int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return def
	}
	return n
}
