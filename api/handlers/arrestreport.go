package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/api"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/notify"
	"github.com/linesmerrill/avenue-police-api/penalty"
	"github.com/linesmerrill/avenue-police-api/reports"
	"github.com/linesmerrill/avenue-police-api/roles"
)

const notifyTimeout = 15 * time.Second

// ArrestReport exists for the arrest report handlers
type ArrestReport struct {
	DB       databases.ArrestReportDatabase
	SDB      databases.StatuteDatabase
	Cache    *reports.Cache
	Events   databases.ChangePublisher
	Notifier notify.Notifier
}

// ArrestRequest is the body of a preview or submission. The officer always
// comes from the authenticated caller.
type ArrestRequest struct {
	Accused         models.Accused  `json:"accused"`
	AttorneyPresent bool            `json:"attorneyPresent"`
	Attorney        models.Attorney `json:"attorney"`
	Cooperation     bool            `json:"cooperation"`
	Notes           string          `json:"notes"`
	PhotoURL        string          `json:"photoUrl"`
	StatuteIDs      []string        `json:"statuteIds"`
}

// ArrestPreview is returned by the preview handler
type ArrestPreview struct {
	Violations []models.StatuteViolation `json:"violations"`
	Totals     models.Totals             `json:"totals"`
	Reductions models.Reductions         `json:"reductions"`
}

// ValidationErrorResponse names the field that was rejected
type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PreviewArrestHandler computes the totals of a draft without saving it
func (a ArrestReport) PreviewArrestHandler(w http.ResponseWriter, r *http.Request) {
	form, ok := a.decodeForm(w, r)
	if !ok {
		return
	}

	totals, reductions := form.Totals()
	writeJSON(w, http.StatusOK, ArrestPreview{
		Violations: form.Selection.Items(),
		Totals:     totals,
		Reductions: reductions,
	})
}

// CreateArrestReportHandler validates and files a report. The report number is
// assigned by the database.
func (a ArrestReport) CreateArrestReportHandler(w http.ResponseWriter, r *http.Request) {
	form, ok := a.decodeForm(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := form.Submit(ctx, a.DB)
	var vErr penalty.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Field: vErr.Field, Message: vErr.Message})
		return
	}
	if err != nil {
		config.ErrorStatus("failed to create arrest report", http.StatusInternalServerError, w, err)
		return
	}

	a.Events.Publish(databases.ChangeEvent{
		Kind:       databases.ArrestReportsChanged,
		Operation:  "insert",
		DocumentID: report.ID.Hex(),
		At:         time.Now(),
	})
	go a.announce(*report)

	writeJSON(w, http.StatusCreated, report)
}

// ArrestReportsHandler lists reports filtered by ?period=, ?officer= and ?search=
func (a ArrestReport) ArrestReportsHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Cache.Get(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get arrest reports", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, reports.Filter(snap.Reports, criteriaFromRequest(r)))
}

// ArrestReportByIDHandler returns a single report
func (a ArrestReport) ArrestReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	arrestID := mux.Vars(r)["arrest_id"]

	id, err := primitive.ObjectIDFromHex(arrestID)
	if err != nil {
		config.ErrorStatus("invalid arrest report ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := a.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		config.ErrorStatus("failed to find arrest report", http.StatusNotFound, w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ArrestCountHandler returns how many reports an officer has filed. Officers
// may only ask about themselves.
func (a ArrestReport) ArrestCountHandler(w http.ResponseWriter, r *http.Request) {
	passport := mux.Vars(r)["passport"]

	p, _ := api.PrincipalFromContext(r.Context())
	if p.Role == roles.Officer && p.Passport != passport {
		config.ErrorStatus("officers may only view their own count", http.StatusForbidden, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := a.DB.CountArrestReportsByOfficer(ctx, passport)
	if err != nil {
		config.ErrorStatus("failed to count arrest reports", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"passport": passport, "count": count})
}

// WipeArrestReportsHandler deletes every report. Report numbers are not reused.
func (a ArrestReport) WipeArrestReportsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := a.DB.DeleteAll(ctx)
	if err != nil {
		config.ErrorStatus("failed to delete arrest reports", http.StatusInternalServerError, w, err)
		return
	}

	p, _ := api.PrincipalFromContext(r.Context())
	zap.S().Warnw("arrest reports wiped", "passport", p.Passport, "deleted", deleted)
	a.Events.Publish(databases.ChangeEvent{
		Kind:      databases.ArrestReportsChanged,
		Operation: "delete",
		At:        time.Now(),
	})

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (a ArrestReport) decodeForm(w http.ResponseWriter, r *http.Request) (*penalty.Form, bool) {
	var req ArrestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return nil, false
	}

	p, ok := api.PrincipalFromContext(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, nil)
		return nil, false
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	table, err := a.SDB.List(ctx)
	if err != nil {
		config.ErrorStatus("failed to get statutes", http.StatusInternalServerError, w, err)
		return nil, false
	}

	form := penalty.NewForm(models.Officer{Name: p.Name, Passport: p.Passport})
	form.Accused = req.Accused
	form.AttorneyPresent = req.AttorneyPresent
	form.Attorney = req.Attorney
	form.Cooperation = req.Cooperation
	form.Notes = req.Notes
	form.PhotoURL = req.PhotoURL
	for _, id := range req.StatuteIDs {
		form.Selection.Add(table, id)
	}
	return form, true
}

// announce sends the report to the notifier. Failures never reach the caller.
func (a ArrestReport) announce(report models.ArrestReport) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	count, err := a.DB.CountArrestReportsByOfficer(ctx, report.Details.Officer.Passport)
	if err != nil {
		zap.S().Warnw("failed to count officer arrests", "passport", report.Details.Officer.Passport, "error", err)
	}
	if err := a.Notifier.ArrestSubmitted(ctx, report, count); err != nil {
		zap.S().Errorw("failed to send arrest notification",
			"reportNumber", report.Details.ReportNumber,
			"error", err)
	}
}

func criteriaFromRequest(r *http.Request) reports.Criteria {
	q := r.URL.Query()
	return reports.Criteria{
		Period:    reports.ParsePeriod(q.Get("period")),
		OfficerID: q.Get("officer"),
		Search:    q.Get("search"),
		Now:       time.Now(),
	}
}
