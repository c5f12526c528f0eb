package databases

// go generate: mockery --name UserDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/avenue-police-api/models"
)

const userName = "users"

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.User, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.User, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, user models.User) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	FindByPassport(ctx context.Context, passport string) (*models.User, error)
	ListOfficers(ctx context.Context) ([]models.User, error)
	EnsureIndexes(ctx context.Context) error
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userName).FindOne(ctx, filter, opts...).Decode(&user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.User, error) {
	var users []models.User
	cursor, err := u.db.Collection(userName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cursor.Decode(&users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userDatabase) InsertOne(ctx context.Context, user models.User) (InsertOneResultHelper, error) {
	return u.db.Collection(userName).InsertOne(ctx, user)
}

func (u *userDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	res, err := u.db.Collection(userName).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (u *userDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return u.db.Collection(userName).DeleteOne(ctx, filter)
}

func (u *userDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	count, err := u.db.Collection(userName).CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindByPassport returns the account registered under passport
func (u *userDatabase) FindByPassport(ctx context.Context, passport string) (*models.User, error) {
	return u.FindOne(ctx, bson.M{"user.passport": passport})
}

// ListOfficers returns the whole roster ordered by name
func (u *userDatabase) ListOfficers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "user.name", Value: 1}})
	users, err := u.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// EnsureIndexes creates the indexes the collection relies on
func (u *userDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := u.db.Collection(userName).CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user.passport", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
