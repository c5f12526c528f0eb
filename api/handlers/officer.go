package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/avenue-police-api/api"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/penalty"
	"github.com/linesmerrill/avenue-police-api/roles"
)

const (
	minPasswordLength = 4
	maxAge            = 120
	maxRankLength     = 40
)

// Officer exists for the roster handlers
type Officer struct {
	DB     databases.UserDatabase
	Events databases.ChangePublisher
}

// OfficerRequest is the body used to register an officer
type OfficerRequest struct {
	Name           string `json:"name"`
	Passport       string `json:"passport"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	Rank           string `json:"rank"`
	Age            int    `json:"age"`
	ProfilePicture string `json:"profilePicture"`
}

// OfficerStatusRequest toggles an officer's access
type OfficerStatusRequest struct {
	Active *bool `json:"active"`
}

// ProfileRequest is the body of a self-service profile edit. Absent fields are left as they are.
type ProfileRequest struct {
	ProfilePicture *string `json:"profilePicture"`
	Age            *int    `json:"age"`
	Rank           *string `json:"rank"`
}

// OfficersHandler returns the roster without password hashes
func (o Officer) OfficersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	users, err := o.DB.ListOfficers(ctx)
	if err != nil {
		config.ErrorStatus("failed to get officers", http.StatusInternalServerError, w, err)
		return
	}
	for i := range users {
		users[i] = users[i].Redacted()
	}

	writeJSON(w, http.StatusOK, users)
}

// CreateOfficerHandler registers an officer. Only developers may create developers.
func (o Officer) CreateOfficerHandler(w http.ResponseWriter, r *http.Request) {
	var req OfficerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	role, err := req.validate()
	if err != nil {
		config.ErrorStatus("invalid officer", http.StatusBadRequest, w, err)
		return
	}
	if p, _ := api.PrincipalFromContext(r.Context()); role == roles.Developer && p.Role != roles.Developer {
		config.ErrorStatus("only developers may create developers", http.StatusForbidden, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// check if the passport is already registered
	existing, _ := o.DB.FindByPassport(ctx, req.Passport)
	if existing != nil {
		config.ErrorStatus("passport already registered", http.StatusConflict, w, fmt.Errorf("duplicate passport %s", req.Passport))
		return
	}

	user, err := newOfficer(req.Name, req.Passport, req.Password, role)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	user.Details.Rank = req.Rank
	user.Details.Age = req.Age
	user.Details.ProfilePicture = req.ProfilePicture

	if _, err := o.DB.InsertOne(ctx, user); err != nil {
		config.ErrorStatus("failed to create officer", http.StatusInternalServerError, w, err)
		return
	}
	o.publish("insert", user.ID.Hex())

	writeJSON(w, http.StatusCreated, user.Redacted())
}

// UpdateOfficerStatusHandler activates or deactivates an officer
func (o Officer) UpdateOfficerStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["officer_id"])
	if err != nil {
		config.ErrorStatus("invalid officer ID", http.StatusBadRequest, w, err)
		return
	}

	var req OfficerStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Active == nil {
		config.ErrorStatus("active is required", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := o.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"user.active": *req.Active}})
	if err != nil {
		config.ErrorStatus("failed to update officer", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("officer not found", http.StatusNotFound, w, databases.ErrNoDocuments)
		return
	}
	o.publish("update", id.Hex())

	writeJSON(w, http.StatusOK, map[string]interface{}{"_id": id.Hex(), "active": *req.Active})
}

// DeleteOfficerHandler removes an officer from the roster. Their reports stay.
func (o Officer) DeleteOfficerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["officer_id"])
	if err != nil {
		config.ErrorStatus("invalid officer ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := o.DB.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		config.ErrorStatus("failed to delete officer", http.StatusInternalServerError, w, err)
		return
	}
	o.publish("delete", id.Hex())

	w.WriteHeader(http.StatusNoContent)
}

// ProfileHandler returns the caller's own roster entry
func (o Officer) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := api.PrincipalFromContext(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := o.DB.FindByPassport(ctx, p.Passport)
	if errors.Is(err, databases.ErrNoDocuments) {
		config.ErrorStatus("officer not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get officer", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Redacted())
}

// UpdateProfileHandler lets an officer change their own photo, age and rank
func (o Officer) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := api.PrincipalFromContext(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, nil)
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	set, err := req.fields()
	if err != nil {
		config.ErrorStatus("invalid profile", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := o.DB.UpdateOne(ctx, bson.M{"user.passport": p.Passport}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update profile", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("officer not found", http.StatusNotFound, w, databases.ErrNoDocuments)
		return
	}

	user, err := o.DB.FindByPassport(ctx, p.Passport)
	if err != nil {
		config.ErrorStatus("failed to get officer", http.StatusInternalServerError, w, err)
		return
	}
	o.publish("update", user.ID.Hex())

	writeJSON(w, http.StatusOK, user.Redacted())
}

// fields builds the $set document for the fields present in the request
func (req ProfileRequest) fields() (bson.M, error) {
	set := bson.M{}
	if req.ProfilePicture != nil {
		pic := strings.TrimSpace(*req.ProfilePicture)
		if pic != "" {
			u, err := url.Parse(pic)
			if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
				return nil, errors.New("profilePicture must be an http(s) URL")
			}
		}
		set["user.profilePicture"] = pic
	}
	if req.Age != nil {
		if *req.Age < 0 || *req.Age > maxAge {
			return nil, fmt.Errorf("age must be between 0 and %d", maxAge)
		}
		set["user.age"] = *req.Age
	}
	if req.Rank != nil {
		rank := strings.TrimSpace(*req.Rank)
		if len(rank) > maxRankLength {
			return nil, fmt.Errorf("rank must be at most %d characters", maxRankLength)
		}
		set["user.rank"] = rank
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}
	return set, nil
}

func (o Officer) publish(op, id string) {
	o.Events.Publish(databases.ChangeEvent{
		Kind:       databases.OfficersChanged,
		Operation:  op,
		DocumentID: id,
		At:         time.Now(),
	})
}

func (req OfficerRequest) validate() (roles.Role, error) {
	if err := penalty.ValidateName("name", req.Name); err != nil {
		return "", err
	}
	if err := penalty.ValidatePassport("passport", req.Passport); err != nil {
		return "", err
	}
	if len(req.Password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	role, ok := roles.Parse(req.Role)
	if !ok {
		return "", fmt.Errorf("unknown role %q", req.Role)
	}
	if req.Age < 0 {
		return "", errors.New("age must not be negative")
	}
	return role, nil
}

func newOfficer(name, passport, password string, role roles.Role) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Name:      strings.TrimSpace(name),
			Passport:  passport,
			Password:  string(hash),
			Role:      string(role),
			Active:    true,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// BootstrapHeadDeveloper registers the head developer account when its
// passport is not on the roster yet. It reports whether an account was created.
func BootstrapHeadDeveloper(ctx context.Context, db databases.UserDatabase, name, passport, password string) (bool, error) {
	if passport == "" || password == "" {
		return false, nil
	}
	_, err := db.FindByPassport(ctx, passport)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, databases.ErrNoDocuments) {
		return false, fmt.Errorf("failed to look up head developer: %w", err)
	}

	user, err := newOfficer(name, passport, password, roles.Developer)
	if err != nil {
		return false, err
	}
	user.Details.Rank = "Head Developer"
	if _, err := db.InsertOne(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create head developer: %w", err)
	}
	zap.S().Infow("head developer account created", "passport", passport)
	return true, nil
}
