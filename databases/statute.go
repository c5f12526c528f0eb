package databases

// go generate: mockery --name StatuteDatabase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/avenue-police-api/models"
)

const statuteName = "statutes"

// StatuteDatabase contains the methods to use with the statute database
type StatuteDatabase interface {
	List(ctx context.Context) ([]models.StatuteViolation, error)
	Add(ctx context.Context, violation models.StatuteViolation) (models.StatuteViolation, error)
	Update(ctx context.Context, id string, violation models.StatuteViolation) error
	Remove(ctx context.Context, id string) error
	Reset(ctx context.Context) ([]models.StatuteViolation, error)
}

type statuteDatabase struct {
	db DatabaseHelper
}

// NewStatuteDatabase initializes a new instance of statute database with the provided db connection
func NewStatuteDatabase(db DatabaseHelper) StatuteDatabase {
	return &statuteDatabase{
		db: db,
	}
}

// List returns the reference table grouped by category, each category in
// insertion order. An empty collection is seeded with DefaultStatutes first.
func (s *statuteDatabase) List(ctx context.Context) ([]models.StatuteViolation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "statute.category", Value: 1}, {Key: "position", Value: 1}})
	cursor, err := s.db.Collection(statuteName).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var statutes []models.Statute
	if err := cursor.Decode(&statutes); err != nil {
		return nil, err
	}

	if len(statutes) == 0 {
		defaults := DefaultStatutes()
		if err := s.insertAll(ctx, defaults); err != nil {
			return nil, err
		}
		sort.SliceStable(defaults, func(i, j int) bool {
			return defaults[i].Category < defaults[j].Category
		})
		return defaults, nil
	}

	out := make([]models.StatuteViolation, len(statutes))
	for i, st := range statutes {
		out[i] = st.Details
	}
	return out, nil
}

// Add appends a custom statute to the end of the table
func (s *statuteDatabase) Add(ctx context.Context, violation models.StatuteViolation) (models.StatuteViolation, error) {
	if violation.ID == "" {
		violation.ID = "art-custom-" + uuid.New().String()
	}
	position, err := s.nextPosition(ctx)
	if err != nil {
		return violation, err
	}
	_, err = s.db.Collection(statuteName).InsertOne(ctx, models.Statute{
		ID:       violation.ID,
		Details:  violation,
		Position: position,
	})
	return violation, err
}

// nextPosition is one past the highest position in use, so removals never
// lead to two statutes sharing a position
func (s *statuteDatabase) nextPosition(ctx context.Context) (int, error) {
	last := &models.Statute{}
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})
	err := s.db.Collection(statuteName).FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Position + 1, nil
}

// Update replaces the statute with the given id, keeping its position
func (s *statuteDatabase) Update(ctx context.Context, id string, violation models.StatuteViolation) error {
	violation.ID = id
	res, err := s.db.Collection(statuteName).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"statute": violation}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

// Remove deletes the statute with the given id. Reports keep their copies.
func (s *statuteDatabase) Remove(ctx context.Context, id string) error {
	deleted, err := s.db.Collection(statuteName).DeleteMany(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNoDocuments
	}
	return nil
}

// Reset replaces the whole table with DefaultStatutes
func (s *statuteDatabase) Reset(ctx context.Context) ([]models.StatuteViolation, error) {
	if _, err := s.db.Collection(statuteName).DeleteMany(ctx, bson.M{}); err != nil {
		return nil, err
	}
	defaults := DefaultStatutes()
	if err := s.insertAll(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

func (s *statuteDatabase) insertAll(ctx context.Context, violations []models.StatuteViolation) error {
	for i, v := range violations {
		_, err := s.db.Collection(statuteName).InsertOne(ctx, models.Statute{
			ID:       v.ID,
			Details:  v,
			Position: i,
		})
		if err != nil {
			return fmt.Errorf("failed to insert statute %s: %w", v.ID, err)
		}
	}
	return nil
}
