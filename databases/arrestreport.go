package databases

// go generate: mockery --name ArrestReportDatabase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/avenue-police-api/models"
)

const arrestReportName = "arrestReports"

// ArrestReportSequence names the counter that numbers arrest reports
const ArrestReportSequence = arrestReportName

// ArrestReportDatabase contains the methods to use with the arrestReport database
type ArrestReportDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.ArrestReport, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.ArrestReport, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, arrestReport models.ArrestReport, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteAll(ctx context.Context) (int64, error)
	CreateArrestReport(ctx context.Context, draft models.ArrestReportDetails) (*models.ArrestReport, error)
	ListArrestReports(ctx context.Context) ([]models.ArrestReport, error)
	CountArrestReportsByOfficer(ctx context.Context, passport string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type arrestReportDatabase struct {
	db       DatabaseHelper
	counters CounterDatabase
}

// NewArrestReportDatabase initializes a new instance of arrest report database with the provided db connection
func NewArrestReportDatabase(db DatabaseHelper) ArrestReportDatabase {
	return &arrestReportDatabase{
		db:       db,
		counters: NewCounterDatabase(db),
	}
}

func (c *arrestReportDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.ArrestReport, error) {
	arrestReport := &models.ArrestReport{}
	err := c.db.Collection(arrestReportName).FindOne(ctx, filter, opts...).Decode(&arrestReport)
	if err != nil {
		return nil, err
	}
	return arrestReport, nil
}

func (c *arrestReportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ArrestReport, error) {
	var arrestReports []models.ArrestReport
	cr, err := c.db.Collection(arrestReportName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&arrestReports)
	if err != nil {
		return nil, err
	}
	return arrestReports, nil
}

func (c *arrestReportDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	count, err := c.db.Collection(arrestReportName).CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *arrestReportDatabase) InsertOne(ctx context.Context, arrestReport models.ArrestReport, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := c.db.Collection(arrestReportName).InsertOne(ctx, arrestReport, opts...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteAll removes every report. The counter is left alone so numbers are
// never handed out twice.
func (c *arrestReportDatabase) DeleteAll(ctx context.Context) (int64, error) {
	return c.db.Collection(arrestReportName).DeleteMany(ctx, bson.M{})
}

// CreateArrestReport stores a new report. The report number comes from the
// counters collection so concurrent submissions never share one.
func (c *arrestReportDatabase) CreateArrestReport(ctx context.Context, draft models.ArrestReportDetails) (*models.ArrestReport, error) {
	seq, err := c.counters.Next(ctx, ArrestReportSequence)
	if err != nil {
		return nil, fmt.Errorf("failed to assign report number: %w", err)
	}

	draft.ReportNumber = seq
	if draft.CreatedAt == "" {
		draft.CreatedAt = time.Now().Format(time.RFC3339)
	}
	arrestReport := models.ArrestReport{
		ID:      primitive.NewObjectID(),
		Details: draft,
	}

	// a failed insert spends its number; the counter is never rolled back
	// because a concurrent create may already hold the next one
	if _, err := c.InsertOne(ctx, arrestReport); err != nil {
		return nil, fmt.Errorf("failed to insert report %d: %w", seq, err)
	}
	return &arrestReport, nil
}

// ListArrestReports returns every report ordered by report number
func (c *arrestReportDatabase) ListArrestReports(ctx context.Context) ([]models.ArrestReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "arrestReport.reportNumber", Value: 1}})
	arrestReports, err := c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	if arrestReports == nil {
		arrestReports = []models.ArrestReport{}
	}
	return arrestReports, nil
}

// CountArrestReportsByOfficer counts the reports filed by the officer with the given passport
func (c *arrestReportDatabase) CountArrestReportsByOfficer(ctx context.Context, passport string) (int64, error) {
	return c.CountDocuments(ctx, bson.M{"arrestReport.officer.passport": passport})
}

// EnsureIndexes creates the indexes the collection relies on
func (c *arrestReportDatabase) EnsureIndexes(ctx context.Context) error {
	coll := c.db.Collection(arrestReportName)
	_, err := coll.CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "arrestReport.reportNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = coll.CreateIndex(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "arrestReport.officer.passport", Value: 1}},
	})
	return err
}
