package models

// Bail sentinels for StatuteViolation.Bail
const (
	BailNotApplicable int64 = 0
	BailDenied        int64 = -1
)

// StatuteViolation is a single entry of the penal code reference table. Reports
// hold copies of these so later edits to the table never rewrite history.
type StatuteViolation struct {
	ID          string `json:"id" bson:"id"`
	Article     string `json:"article" bson:"article"`
	Description string `json:"description" bson:"description"`
	Category    string `json:"category" bson:"category"`
	Fine        int64  `json:"fine" bson:"fine"`
	Penalty     int64  `json:"penalty" bson:"penalty"`
	Bail        int64  `json:"bail" bson:"bail"`
}

// Statute holds the structure for the statutes collection in mongo
type Statute struct {
	ID       string           `json:"_id" bson:"_id"`
	Details  StatuteViolation `json:"statute" bson:"statute"`
	Position int              `json:"position" bson:"position"`
}
