package databases

// go generate: mockery --name SummaryDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/avenue-police-api/models"
)

const summaryName = "monthlySummaries"

// SummaryDatabase contains the methods to use with the monthly summary database
type SummaryDatabase interface {
	FindOne(ctx context.Context, month string) (*models.MonthlySummary, error)
	Upsert(ctx context.Context, summary models.MonthlySummary) error
}

type summaryDatabase struct {
	db DatabaseHelper
}

// NewSummaryDatabase initializes a new instance of summary database with the provided db connection
func NewSummaryDatabase(db DatabaseHelper) SummaryDatabase {
	return &summaryDatabase{
		db: db,
	}
}

func (s *summaryDatabase) FindOne(ctx context.Context, month string) (*models.MonthlySummary, error) {
	summary := &models.MonthlySummary{}
	err := s.db.Collection(summaryName).FindOne(ctx, bson.M{"_id": month}).Decode(&summary)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Upsert stores the summary, replacing any earlier one for the same month
func (s *summaryDatabase) Upsert(ctx context.Context, summary models.MonthlySummary) error {
	_, err := s.db.Collection(summaryName).UpdateOne(ctx,
		bson.M{"_id": summary.ID},
		bson.M{"$set": bson.M{
			"stats":       summary.Stats,
			"topStatutes": summary.TopStatutes,
			"generatedAt": summary.GeneratedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
