package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

type ApplicationRepoMongo struct {
	*MongoClient
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewApplicationRepo(c *MongoClient, opTimeout time.Duration) *ApplicationRepoMongo {
	return &ApplicationRepoMongo{
		MongoClient: c,
		coll:        c.DB.Collection(ColApplications),
		opTimeout:   opTimeout,
	}
}

func (repo *ApplicationRepoMongo) Create(ctx context.Context, app core.Application) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, toApplicationDoc(app))
	if err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			return core.ErrApplicationExists
		}
		return fmt.Errorf("applications.insert: %w", err)
	}
	return nil
}

func (repo *ApplicationRepoMongo) Get(ctx context.Context, id string) (core.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc ApplicationDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Application{}, core.ErrApplicationNotFound
		}
		return core.Application{}, fmt.Errorf("applications.findOne: %w", err)
	}
	return fromApplicationDoc(doc)
}

type typeCount struct {
	Type  string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (repo *ApplicationRepoMongo) CountByType(ctx context.Context) (map[core.InsuranceType]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	pipeline := mongodrv.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$insurance_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("applications.aggregate: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []typeCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("applications.cursor: %w", err)
	}

	return countsFromRows(rows), nil
}

// countsFromRows reports every known type, zero when the aggregation had no group for it.
func countsFromRows(rows []typeCount) map[core.InsuranceType]int64 {
	counts := make(map[core.InsuranceType]int64, len(core.InsuranceTypes))
	for _, it := range core.InsuranceTypes {
		counts[it] = 0
	}
	for _, row := range rows {
		counts[core.InsuranceType(row.Type)] = row.Count
	}
	return counts
}
