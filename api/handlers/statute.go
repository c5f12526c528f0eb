package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/avenue-police-api/api"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/models"
)

// Statute exists for the penal code reference table handlers
type Statute struct {
	DB     databases.StatuteDatabase
	Events databases.ChangePublisher
}

// StatutesHandler returns the reference table in display order, seeding the defaults on first use
func (s Statute) StatutesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	statutes, err := s.DB.List(ctx)
	if err != nil {
		config.ErrorStatus("failed to get statutes", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, statutes)
}

// CreateStatuteHandler appends a custom statute to the table
func (s Statute) CreateStatuteHandler(w http.ResponseWriter, r *http.Request) {
	var violation models.StatuteViolation
	if err := json.NewDecoder(r.Body).Decode(&violation); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	violation.ID = ""
	if err := validateStatute(violation); err != nil {
		config.ErrorStatus("invalid statute", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	created, err := s.DB.Add(ctx, violation)
	if err != nil {
		config.ErrorStatus("failed to create statute", http.StatusInternalServerError, w, err)
		return
	}
	s.publish("insert", created.ID)

	writeJSON(w, http.StatusCreated, created)
}

// UpdateStatuteHandler replaces a statute. Reports already filed keep their copy.
func (s Statute) UpdateStatuteHandler(w http.ResponseWriter, r *http.Request) {
	statuteID := mux.Vars(r)["statute_id"]

	var violation models.StatuteViolation
	if err := json.NewDecoder(r.Body).Decode(&violation); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validateStatute(violation); err != nil {
		config.ErrorStatus("invalid statute", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err := s.DB.Update(ctx, statuteID, violation)
	if errors.Is(err, databases.ErrNoDocuments) {
		config.ErrorStatus("statute not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to update statute", http.StatusInternalServerError, w, err)
		return
	}
	s.publish("update", statuteID)

	violation.ID = statuteID
	writeJSON(w, http.StatusOK, violation)
}

// DeleteStatuteHandler removes a statute from the table
func (s Statute) DeleteStatuteHandler(w http.ResponseWriter, r *http.Request) {
	statuteID := mux.Vars(r)["statute_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	err := s.DB.Remove(ctx, statuteID)
	if errors.Is(err, databases.ErrNoDocuments) {
		config.ErrorStatus("statute not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to delete statute", http.StatusInternalServerError, w, err)
		return
	}
	s.publish("delete", statuteID)

	w.WriteHeader(http.StatusNoContent)
}

// ResetStatutesHandler restores the default table
func (s Statute) ResetStatutesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	statutes, err := s.DB.Reset(ctx)
	if err != nil {
		config.ErrorStatus("failed to reset statutes", http.StatusInternalServerError, w, err)
		return
	}
	s.publish("replace", "")

	writeJSON(w, http.StatusOK, statutes)
}

func (s Statute) publish(op, id string) {
	s.Events.Publish(databases.ChangeEvent{
		Kind:       databases.StatutesChanged,
		Operation:  op,
		DocumentID: id,
		At:         time.Now(),
	})
}

func validateStatute(v models.StatuteViolation) error {
	switch {
	case strings.TrimSpace(v.Article) == "":
		return errors.New("article is required")
	case strings.TrimSpace(v.Description) == "":
		return errors.New("description is required")
	case v.Fine < 0:
		return fmt.Errorf("fine must not be negative, got %d", v.Fine)
	case v.Penalty < 0:
		return fmt.Errorf("penalty must not be negative, got %d", v.Penalty)
	case v.Bail < models.BailDenied:
		return fmt.Errorf("bail must be -1, 0 or positive, got %d", v.Bail)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
