package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/cursor"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(JobPostingsCollection)}
}

// FindPage returns up to limit postings newest first, starting after pos
// when it is set. A limit of 0 returns everything.
func (r *JobRepository) FindPage(ctx context.Context, limit int64, after *cursor.Position) ([]models.JobPosting, error) {
	filter := bson.M{}
	if after != nil {
		filter = after.After()
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[models.JobPosting](ctx, r.col, filter, opts)
}
