package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/db"
)

// CollectionSource hands out collections per call; *db.Manager implements it.
type CollectionSource interface {
	Collections(ctx context.Context) (*db.Collections, error)
}

var errNoFields = apperrors.NewBadRequestError("No valid fields provided")

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrInvalidID
	}
	return oid, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// findMany decodes every match; an empty result is an empty slice, never nil.
func findMany[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	results := []T{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// findByID returns notFound when no document has the id.
func findByID[T any](ctx context.Context, col *mongo.Collection, id string, notFound error) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var result T
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&result); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound
		}
		return nil, err
	}
	return &result, nil
}

// deleteByID fails with notFound when nothing was deleted.
func deleteByID(ctx context.Context, col *mongo.Collection, id string, notFound error) (*mongo.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if res.DeletedCount != 1 {
		return nil, notFound
	}
	return res, nil
}

// setByID applies a $set and fails with notFound when no document matched.
func setByID(ctx context.Context, col *mongo.Collection, id string, set bson.M, notFound error) (*mongo.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, errNoFields
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, notFound
	}
	return res, nil
}
