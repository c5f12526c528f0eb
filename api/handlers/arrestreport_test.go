package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/avenue-police-api/api"
	"github.com/linesmerrill/avenue-police-api/api/handlers"
	"github.com/linesmerrill/avenue-police-api/databases"
	mocksdb "github.com/linesmerrill/avenue-police-api/databases/mocks"
	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/notify"
	"github.com/linesmerrill/avenue-police-api/reports"
	"github.com/linesmerrill/avenue-police-api/roles"
)

var statuteTable = []models.StatuteViolation{
	{ID: "1", Article: "Art. 101", Description: "Speeding", Fine: 1000, Penalty: 10, Bail: 500},
	{ID: "2", Article: "Art. 202", Description: "Robbery", Fine: 3000, Penalty: 30, Bail: models.BailDenied},
}

var sergeant = api.Principal{Name: "John Doe", Passport: "100", Role: roles.Officer}

func withPrincipal(req *http.Request, p api.Principal) *http.Request {
	return req.WithContext(api.WithPrincipal(req.Context(), p))
}

// chanNotifier signals every announced report
type chanNotifier struct {
	got chan int64
}

func (c chanNotifier) ArrestSubmitted(ctx context.Context, report models.ArrestReport, officerArrests int64) error {
	c.got <- officerArrests
	return nil
}

func TestArrestReport_PreviewArrestHandler(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("List", mock.Anything).Return(statuteTable, nil)

	body := `{"accused":{"name":"Jane Roe","passport":"42"},"attorneyPresent":true,"attorney":{"name":"Saul","passport":"7"},"cooperation":true,"statuteIds":["1","2","1","99"]}`
	req := withPrincipal(httptest.NewRequest("POST", "/api/v1/arrests/preview", strings.NewReader(body)), sergeant)
	rr := httptest.NewRecorder()
	handlers.ArrestReport{SDB: sdb}.PreviewArrestHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got handlers.ArrestPreview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.Violations, 2)
	assert.Equal(t, int64(4000), got.Totals.FineBase)
	assert.Equal(t, int64(2240), got.Totals.FineFinal)
	assert.Equal(t, int64(40), got.Totals.SentenceBase)
	assert.Equal(t, int64(22), got.Totals.SentenceFinal)
	assert.Equal(t, int64(500), got.Totals.BailTotal)
	assert.True(t, got.Reductions.AttorneyApplied)
	assert.True(t, got.Reductions.CooperationApplied)
}

func TestArrestReport_PreviewArrestHandlerUnauthorized(t *testing.T) {
	rr := httptest.NewRecorder()
	handlers.ArrestReport{}.PreviewArrestHandler(rr, httptest.NewRequest("POST", "/api/v1/arrests/preview", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestArrestReport_CreateArrestReportHandler(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("List", mock.Anything).Return(statuteTable, nil)
	adb := &mocksdb.ArrestReportDatabase{}
	id := primitive.NewObjectID()
	adb.On("CreateArrestReport", mock.Anything, mock.MatchedBy(func(d models.ArrestReportDetails) bool {
		return d.Officer.Passport == "100" && d.Officer.Name == "John Doe" &&
			d.Accused.Passport == "42" && len(d.Violations) == 1 && d.Attorney == nil
	})).Return(func(ctx context.Context, d models.ArrestReportDetails) *models.ArrestReport {
		d.ReportNumber = 17
		return &models.ArrestReport{ID: id, Details: d}
	}, nil)
	adb.On("CountArrestReportsByOfficer", mock.Anything, "100").Return(int64(5), nil)
	events := &recorder{}
	notifier := chanNotifier{got: make(chan int64, 1)}

	body := `{"accused":{"name":"Jane Roe","passport":"42"},"attorneyPresent":true,"attorney":{"name":"","passport":""},"statuteIds":["1"]}`
	req := withPrincipal(httptest.NewRequest("POST", "/api/v1/arrests", strings.NewReader(body)), sergeant)
	rr := httptest.NewRecorder()
	handlers.ArrestReport{DB: adb, SDB: sdb, Events: events, Notifier: notifier}.CreateArrestReportHandler(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got models.ArrestReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(17), got.Details.ReportNumber)
	assert.False(t, got.Details.Reductions.AttorneyApplied)

	require.Len(t, events.events, 1)
	assert.Equal(t, databases.ArrestReportsChanged, events.events[0].Kind)
	assert.Equal(t, id.Hex(), events.events[0].DocumentID)

	select {
	case count := <-notifier.got:
		assert.Equal(t, int64(5), count)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the report to be announced")
	}
}

func TestArrestReport_CreateArrestReportHandlerValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing accused name", `{"accused":{"passport":"42"},"statuteIds":["1"]}`, "accused.name"},
		{"digits in name", `{"accused":{"name":"R2D2","passport":"42"},"statuteIds":["1"]}`, "accused.name"},
		{"letters in passport", `{"accused":{"name":"Jane","passport":"abc"},"statuteIds":["1"]}`, "accused.passport"},
		{"bad attorney passport", `{"accused":{"name":"Jane","passport":"42"},"attorneyPresent":true,"attorney":{"name":"Saul","passport":"x"},"statuteIds":["1"]}`, "attorney.passport"},
		{"no violations", `{"accused":{"name":"Jane","passport":"42"},"statuteIds":["99"]}`, "violations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sdb := &mocksdb.StatuteDatabase{}
			sdb.On("List", mock.Anything).Return(statuteTable, nil)
			adb := &mocksdb.ArrestReportDatabase{}

			req := withPrincipal(httptest.NewRequest("POST", "/api/v1/arrests", strings.NewReader(tt.body)), sergeant)
			rr := httptest.NewRecorder()
			handlers.ArrestReport{DB: adb, SDB: sdb, Events: databases.NopPublisher{}, Notifier: notify.Nop{}}.CreateArrestReportHandler(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var got handlers.ValidationErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.field, got.Field)
			adb.AssertNotCalled(t, "CreateArrestReport", mock.Anything, mock.Anything)
		})
	}
}

func TestArrestReport_CreateArrestReportHandlerStoreError(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("List", mock.Anything).Return(statuteTable, nil)
	adb := &mocksdb.ArrestReportDatabase{}
	adb.On("CreateArrestReport", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	events := &recorder{}

	body := `{"accused":{"name":"Jane Roe","passport":"42"},"statuteIds":["2"]}`
	req := withPrincipal(httptest.NewRequest("POST", "/api/v1/arrests", strings.NewReader(body)), sergeant)
	rr := httptest.NewRecorder()
	handlers.ArrestReport{DB: adb, SDB: sdb, Events: events, Notifier: notify.Nop{}}.CreateArrestReportHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, events.events)
}

func TestArrestReport_ArrestReportsHandler(t *testing.T) {
	now := time.Now().UTC()
	store := &mocksdb.ArrestReportDatabase{}
	store.On("ListArrestReports", mock.Anything).Return([]models.ArrestReport{
		{Details: models.ArrestReportDetails{ReportNumber: 1, Accused: models.Accused{Name: "Jane Roe", Passport: "42"}, Officer: models.Officer{Passport: "100"}, CreatedAt: now.Format(time.RFC3339)}},
		{Details: models.ArrestReportDetails{ReportNumber: 2, Accused: models.Accused{Name: "Bob", Passport: "43"}, Officer: models.Officer{Passport: "200"}, CreatedAt: now.Format(time.RFC3339)}},
	}, nil)
	udb := &mocksdb.UserDatabase{}
	udb.On("ListOfficers", mock.Anything).Return([]models.User{}, nil)
	cache := reports.NewCache(cacheSource{store, udb})

	req := httptest.NewRequest("GET", "/api/v1/arrests?officer=100&search=jane", nil)
	rr := httptest.NewRecorder()
	handlers.ArrestReport{Cache: cache}.ArrestReportsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []models.ArrestReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Details.ReportNumber)
}

func TestArrestReport_ArrestReportByIDHandler(t *testing.T) {
	id := primitive.NewObjectID()
	adb := &mocksdb.ArrestReportDatabase{}
	adb.On("FindOne", mock.Anything, mock.Anything).Return(&models.ArrestReport{ID: id, Details: models.ArrestReportDetails{ReportNumber: 9}}, nil)

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/v1/arrests/"+id.Hex(), nil), map[string]string{"arrest_id": id.Hex()})
	rr := httptest.NewRecorder()
	handlers.ArrestReport{DB: adb}.ArrestReportByIDHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"reportNumber":9`)
}

func TestArrestReport_ArrestReportByIDHandlerInvalidID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/v1/arrests/1234", nil), map[string]string{"arrest_id": "1234"})
	rr := httptest.NewRecorder()
	handlers.ArrestReport{}.ArrestReportByIDHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestArrestReport_ArrestReportByIDHandlerNotFound(t *testing.T) {
	id := primitive.NewObjectID()
	adb := &mocksdb.ArrestReportDatabase{}
	adb.On("FindOne", mock.Anything, mock.Anything).Return(nil, databases.ErrNoDocuments)

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/v1/arrests/"+id.Hex(), nil), map[string]string{"arrest_id": id.Hex()})
	rr := httptest.NewRecorder()
	handlers.ArrestReport{DB: adb}.ArrestReportByIDHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestArrestReport_ArrestCountHandler(t *testing.T) {
	tests := []struct {
		name      string
		principal api.Principal
		passport  string
		want      int
	}{
		{"officer own count", sergeant, "100", http.StatusOK},
		{"officer other count", sergeant, "200", http.StatusForbidden},
		{"command any count", api.Principal{Passport: "1", Role: roles.Command}, "200", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adb := &mocksdb.ArrestReportDatabase{}
			adb.On("CountArrestReportsByOfficer", mock.Anything, tt.passport).Return(int64(3), nil)

			req := httptest.NewRequest("GET", "/api/v1/officers/"+tt.passport+"/arrest-count", nil)
			req = withPrincipal(mux.SetURLVars(req, map[string]string{"passport": tt.passport}), tt.principal)
			rr := httptest.NewRecorder()
			handlers.ArrestReport{DB: adb}.ArrestCountHandler(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"count":3`)
			}
		})
	}
}

func TestArrestReport_WipeArrestReportsHandler(t *testing.T) {
	adb := &mocksdb.ArrestReportDatabase{}
	adb.On("DeleteAll", mock.Anything).Return(int64(12), nil)
	events := &recorder{}

	req := withPrincipal(httptest.NewRequest("DELETE", "/api/v1/arrests", nil), api.Principal{Passport: "1", Role: roles.Developer})
	rr := httptest.NewRecorder()
	handlers.ArrestReport{DB: adb, Events: events}.WipeArrestReportsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deleted":12}`, rr.Body.String())
	require.Len(t, events.events, 1)
	assert.Equal(t, "delete", events.events[0].Operation)
}

// cacheSource joins the two mocks the dashboard cache reads from
type cacheSource struct {
	arrests  *mocksdb.ArrestReportDatabase
	officers *mocksdb.UserDatabase
}

func (c cacheSource) ListArrestReports(ctx context.Context) ([]models.ArrestReport, error) {
	return c.arrests.ListArrestReports(ctx)
}

func (c cacheSource) ListOfficers(ctx context.Context) ([]models.User, error) {
	return c.officers.ListOfficers(ctx)
}
