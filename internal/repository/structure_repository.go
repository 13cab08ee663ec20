package repository

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionSample is what the structure dump needs to know about one collection.
type CollectionSample struct {
	Name  string
	Count int64
	Docs  []bson.M
}

type StructureRepository struct {
	db *mongo.Database
}

func NewStructureRepository(db *mongo.Database) *StructureRepository {
	return &StructureRepository{db: db}
}

func (r *StructureRepository) DatabaseName() string {
	return r.db.Name()
}

// Sample counts every collection and pulls up to n of its newest documents.
func (r *StructureRepository) Sample(ctx context.Context, n int64) ([]CollectionSample, error) {
	names, err := r.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections of %s: %w", r.db.Name(), err)
	}
	sort.Strings(names)

	out := make([]CollectionSample, 0, len(names))
	for _, name := range names {
		col := r.db.Collection(name)
		count, err := col.CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		docs, err := findAll[bson.M](ctx, col, bson.M{},
			options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(n))
		if err != nil {
			return nil, err
		}
		out = append(out, CollectionSample{Name: name, Count: count, Docs: docs})
	}
	return out, nil
}
