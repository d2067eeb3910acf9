package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	ColUsers        = "users"
	ColScholarships = "scholarships"
	ColApplications = "applications"
	ColReviews      = "reviews"
)

// Collections are the four logical namespaces the API works with.
type Collections struct {
	Users        *mongo.Collection
	Scholarships *mongo.Collection
	Applications *mongo.Collection
	Reviews      *mongo.Collection
}

// CollectionsFor scopes the fixed collection names to database.
func CollectionsFor(database *mongo.Database) *Collections {
	return &Collections{
		Users:        database.Collection(ColUsers),
		Scholarships: database.Collection(ColScholarships),
		Applications: database.Collection(ColApplications),
		Reviews:      database.Collection(ColReviews),
	}
}

// EnsureIndexes creates the lookup indexes used by the API. It is safe to
// run on every fresh connection.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		{ColApplications, bson.D{{Key: "userEmail", Value: 1}}, false},
		{ColApplications, bson.D{{Key: "scholarshipId", Value: 1}}, false},

		{ColReviews, bson.D{{Key: "email", Value: 1}}, false},
		{ColReviews, bson.D{{Key: "scholarshipId", Value: 1}}, false},

		{ColScholarships, bson.D{{Key: "country", Value: 1}}, false},
		{ColScholarships, bson.D{{Key: "studentsApplied.email", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := database.Collection(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}
