package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/avenue-police-api/api/handlers"
	"github.com/linesmerrill/avenue-police-api/databases"
	mocksdb "github.com/linesmerrill/avenue-police-api/databases/mocks"
	"github.com/linesmerrill/avenue-police-api/models"
)

// recorder collects published change events
type recorder struct {
	events []databases.ChangeEvent
}

func (r *recorder) Publish(e databases.ChangeEvent) {
	r.events = append(r.events, e)
}

func TestStatute_StatutesHandler(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("List", mock.Anything).Return([]models.StatuteViolation{
		{ID: "1", Article: "Art. 101", Description: "Speeding", Fine: 500},
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/statutes", nil)
	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: databases.NopPublisher{}}.StatutesHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []models.StatuteViolation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Art. 101", got[0].Article)
}

func TestStatute_StatutesHandlerError(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("List", mock.Anything).Return(nil, errors.New("mocked-error"))

	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: databases.NopPublisher{}}.StatutesHandler(rr, httptest.NewRequest("GET", "/api/v1/statutes", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "failed to get statutes", resp.Response.Message)
}

func TestStatute_CreateStatuteHandler(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("Add", mock.Anything, mock.MatchedBy(func(v models.StatuteViolation) bool {
		return v.ID == "" && v.Article == "Art. 200"
	})).Return(models.StatuteViolation{ID: "custom-1", Article: "Art. 200", Description: "Loitering", Fine: 100}, nil)
	events := &recorder{}

	body := `{"id":"ignored","article":"Art. 200","description":"Loitering","fine":100}`
	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: events}.CreateStatuteHandler(rr, httptest.NewRequest("POST", "/api/v1/statutes", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, events.events, 1)
	assert.Equal(t, databases.StatutesChanged, events.events[0].Kind)
	assert.Equal(t, "custom-1", events.events[0].DocumentID)
	sdb.AssertExpectations(t)
}

func TestStatute_CreateStatuteHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"missing article", `{"description":"x"}`},
		{"missing description", `{"article":"Art. 1"}`},
		{"negative fine", `{"article":"Art. 1","description":"x","fine":-1}`},
		{"negative penalty", `{"article":"Art. 1","description":"x","penalty":-5}`},
		{"bail below denied", `{"article":"Art. 1","description":"x","bail":-2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sdb := &mocksdb.StatuteDatabase{}
			rr := httptest.NewRecorder()
			handlers.Statute{DB: sdb, Events: databases.NopPublisher{}}.CreateStatuteHandler(rr, httptest.NewRequest("POST", "/api/v1/statutes", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			sdb.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestStatute_UpdateStatuteHandler(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("Update", mock.Anything, "7", mock.AnythingOfType("models.StatuteViolation")).Return(nil)

	req := httptest.NewRequest("PUT", "/api/v1/statutes/7", strings.NewReader(`{"article":"Art. 7","description":"Theft","fine":900,"bail":-1}`))
	req = mux.SetURLVars(req, map[string]string{"statute_id": "7"})
	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: databases.NopPublisher{}}.UpdateStatuteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got models.StatuteViolation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "7", got.ID)
	assert.Equal(t, models.BailDenied, got.Bail)
}

func TestStatute_UpdateStatuteHandlerNotFound(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("Update", mock.Anything, "404", mock.Anything).Return(databases.ErrNoDocuments)

	req := httptest.NewRequest("PUT", "/api/v1/statutes/404", strings.NewReader(`{"article":"Art. 7","description":"Theft"}`))
	req = mux.SetURLVars(req, map[string]string{"statute_id": "404"})
	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: databases.NopPublisher{}}.UpdateStatuteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatute_DeleteStatuteHandler(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("Remove", mock.Anything, "3").Return(nil)
	events := &recorder{}

	req := mux.SetURLVars(httptest.NewRequest("DELETE", "/api/v1/statutes/3", nil), map[string]string{"statute_id": "3"})
	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: events}.DeleteStatuteHandler(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.Len(t, events.events, 1)
	assert.Equal(t, "delete", events.events[0].Operation)
}

func TestStatute_DeleteStatuteHandlerNotFound(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("Remove", mock.Anything, "404").Return(databases.ErrNoDocuments)
	events := &recorder{}

	req := mux.SetURLVars(httptest.NewRequest("DELETE", "/api/v1/statutes/404", nil), map[string]string{"statute_id": "404"})
	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: events}.DeleteStatuteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, events.events)
}

func TestStatute_ResetStatutesHandler(t *testing.T) {
	sdb := &mocksdb.StatuteDatabase{}
	sdb.On("Reset", mock.Anything).Return(databases.DefaultStatutes(), nil)

	rr := httptest.NewRecorder()
	handlers.Statute{DB: sdb, Events: databases.NopPublisher{}}.ResetStatutesHandler(rr, httptest.NewRequest("POST", "/api/v1/statutes/reset", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []models.StatuteViolation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, len(databases.DefaultStatutes()))
}
