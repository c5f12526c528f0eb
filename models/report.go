package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MonthlySummary holds the structure for the monthlySummaries collection in mongo.
// ID is the summarised month formatted as YYYY-MM.
type MonthlySummary struct {
	ID          string             `json:"_id" bson:"_id"`
	Stats       Stats              `json:"stats" bson:"stats"`
	TopStatutes []StatuteCount     `json:"topStatutes" bson:"topStatutes"`
	GeneratedAt primitive.DateTime `json:"generatedAt" bson:"generatedAt"`
}

// Stats are the headline numbers over a set of arrest reports
type Stats struct {
	Count                int   `json:"count" bson:"count"`
	TotalFineCollected   int64 `json:"totalFineCollected" bson:"totalFineCollected"`
	TotalSentenceMonths  int64 `json:"totalSentenceMonths" bson:"totalSentenceMonths"`
	AverageFine          int64 `json:"averageFine" bson:"averageFine"`
	AverageSentence      int64 `json:"averageSentence" bson:"averageSentence"`
	AttorneyCaseCount    int   `json:"attorneyCaseCount" bson:"attorneyCaseCount"`
	CooperationCaseCount int   `json:"cooperationCaseCount" bson:"cooperationCaseCount"`
}

// StatuteCount is one row of the most frequent statutes leaderboard
type StatuteCount struct {
	Article   string `json:"article" bson:"article"`
	Count     int    `json:"count" bson:"count"`
	TotalFine int64  `json:"totalFine" bson:"totalFine"`
}

// OfficerRank is one row of the officer leaderboard
type OfficerRank struct {
	OfficerPassport    string `json:"officerPassport"`
	OfficerName        string `json:"officerName"`
	ArrestCount        int    `json:"arrestCount"`
	TotalFineCollected int64  `json:"totalFineCollected"`
}

// AttorneyRank is one row of the attorney leaderboard
type AttorneyRank struct {
	AttorneyPassport      string `json:"attorneyPassport"`
	AttorneyName          string `json:"attorneyName"`
	CaseCount             int    `json:"caseCount"`
	ReductionAppliedCount int    `json:"reductionAppliedCount"`
}
