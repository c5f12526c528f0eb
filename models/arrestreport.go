package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArrestReport represents the main arrest report structure
type ArrestReport struct {
	ID      primitive.ObjectID  `json:"_id" bson:"_id"`
	Details ArrestReportDetails `json:"arrestReport" bson:"arrestReport"`
	Version int32               `json:"__v" bson:"__v"`
}

// ArrestReportDetails holds the structure for the inner arrest report details
type ArrestReportDetails struct {
	ReportNumber int64              `json:"reportNumber" bson:"reportNumber"`
	Accused      Accused            `json:"accused" bson:"accused"`
	Officer      Officer            `json:"officer" bson:"officer"`
	Attorney     *Attorney          `json:"attorney,omitempty" bson:"attorney,omitempty"`
	Violations   []StatuteViolation `json:"violations" bson:"violations"`
	Totals       Totals             `json:"totals" bson:"totals"`
	Reductions   Reductions         `json:"reductions" bson:"reductions"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	PhotoURL     string             `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	CreatedAt    string             `json:"createdAt" bson:"createdAt"` // RFC3339, legacy imports use DD/MM/YYYY HH:MM:SS
}

// Accused represents the person being booked
type Accused struct {
	Name     string `json:"name" bson:"name"`
	Passport string `json:"passport" bson:"passport"`
	PhotoURL string `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
}

// Officer represents the arresting officer's details
type Officer struct {
	Name     string `json:"name" bson:"name"`
	Passport string `json:"passport" bson:"passport"`
}

// Attorney represents the legal representation present at booking
type Attorney struct {
	Name     string `json:"name" bson:"name"`
	Passport string `json:"passport" bson:"passport"`
}

// Totals holds the computed fine, sentence and bail amounts
type Totals struct {
	FineBase      int64 `json:"fineBase" bson:"fineBase"`
	SentenceBase  int64 `json:"sentenceBase" bson:"sentenceBase"`
	BailTotal     int64 `json:"bailTotal" bson:"bailTotal"`
	FineFinal     int64 `json:"fineFinal" bson:"fineFinal"`
	SentenceFinal int64 `json:"sentenceFinal" bson:"sentenceFinal"`
}

// Reductions records which discounts were applied to the totals
type Reductions struct {
	AttorneyApplied    bool `json:"attorneyApplied" bson:"attorneyApplied"`
	CooperationApplied bool `json:"cooperationApplied" bson:"cooperationApplied"`
}

// HasAttorney reports whether the report carries an attorney identity
func (d ArrestReportDetails) HasAttorney() bool {
	return d.Attorney != nil && d.Attorney.Passport != ""
}
