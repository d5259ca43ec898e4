// Package mongostore implements the store contracts on MongoDB.
package mongostore

import (
	"context"
	"fmt"

	"seller-marketplace/shared/database"
	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// New wraps an open client. Closing the returned store disconnects it.
func New(client *mongo.Client, dbName string) *store.Store {
	db := client.Database(dbName)
	return store.New(
		&Users{coll: db.Collection(database.UsersCollection)},
		&Products{coll: db.Collection(database.ProductsCollection)},
		&Categories{coll: db.Collection(database.CategoriesCollection)},
		&Orders{coll: db.Collection(database.OrdersCollection)},
		client.Disconnect,
	)
}

func byID(id models.ID) bson.M {
	return bson.M{"_id": id}
}

func newID() models.ID {
	return models.ID(primitive.NewObjectID().Hex())
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, id models.ID, doc interface{}) (*models.InsertResult, error) {
	res, err := coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, store.ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}

	inserted := models.IDFromValue(res.InsertedID)
	if inserted == "" {
		inserted = id
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: inserted}, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id models.ID) (*models.DeleteResult, error) {
	res, err := coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func setTrue(ctx context.Context, coll *mongo.Collection, filter bson.M, field string, many, upsert bool) (*models.UpdateResult, error) {
	update := bson.M{"$set": bson.M{field: true}}

	var (
		res *mongo.UpdateResult
		err error
	)
	if many {
		res, err = coll.UpdateMany(ctx, filter, update, options.Update().SetUpsert(upsert))
	} else {
		res, err = coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(upsert))
	}
	if err != nil {
		return nil, fmt.Errorf("set %s in %s: %w", field, coll.Name(), err)
	}

	out := &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		id := models.IDFromValue(res.UpsertedID)
		out.UpsertedID = &id
	}
	return out, nil
}
