package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := ensureApplicationsIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure %s indexes: %w", ColApplications, err)
	}
	return nil
}

func ensureApplicationsIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColApplications)
	_, err := coll.Indexes().CreateMany(ctx, applicationIndexes())
	return err
}

func applicationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		newIndex("insurance_type", 1, "apps_insurance_type"),
		newIndex("created_at", -1, "apps_created_at_desc"),
	}
}

func newIndex(field string, order int32, name string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: order}},
		Options: options.Index().SetName(name),
	}
}
