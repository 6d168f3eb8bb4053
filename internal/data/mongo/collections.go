// Package mongo implements the domain repositories on MongoDB. Every entity
// lives in its own collection keyed by a string UUID in _id.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	AccountsCollection     = "accounts"
	JournalsCollection     = "journals"
	ProductsCollection     = "products"
	CategoriesCollection   = "categories"
	CommentsCollection     = "comments"
	TransactionsCollection = "transactions"
	UsersCollection        = "users"
	OutboxCollection       = "outbox"
)

// indexSpecs lists the secondary indexes each collection relies on.
var indexSpecs = map[string][]mongo.IndexModel{
	AccountsCollection: {
		{
			Keys: bson.D{{Key: "account_code", Value: 1}},
			Options: options.Index().
				SetName("uniq_account_code").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"account_code": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	},
	JournalsCollection: {
		{Keys: bson.D{{Key: "journal_date", Value: -1}}},
		{Keys: bson.D{{Key: "detail.account", Value: 1}}},
	},
	ProductsCollection: {
		{Keys: bson.D{{Key: "category", Value: 1}}},
	},
	TransactionsCollection: {
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "product", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	},
	UsersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_email").SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("uniq_username").SetUnique(true)},
	},
	OutboxCollection: {
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	},
}

// EnsureIndexes creates the indexes of every collection. Existing indexes
// with the same definition are left alone by the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range indexSpecs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// findAll runs a query and decodes every document. A query without matches
// yields an empty, non-nil slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// idsFilter matches documents whose _id is in ids.
func idsFilter(ids []string) bson.M {
	if ids == nil {
		ids = []string{}
	}
	return bson.M{"_id": bson.M{"$in": ids}}
}
