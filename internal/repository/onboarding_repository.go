package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

// OnboardingRepository serves both onboardings and onboardingrequests,
// which share a document shape.
type OnboardingRepository struct {
	col *mongo.Collection
}

func NewOnboardingRepository(db *mongo.Database, collection string) (*OnboardingRepository, error) {
	if collection != OnboardingsCollection && collection != OnboardingRequestsCollection {
		return nil, fmt.Errorf("not an onboarding collection: %s", collection)
	}
	return &OnboardingRepository{col: db.Collection(collection)}, nil
}

func (r *OnboardingRepository) FindAll(ctx context.Context) ([]models.Onboarding, error) {
	return findAll[models.Onboarding](ctx, r.col, bson.M{})
}

func (r *OnboardingRepository) DeleteIDs(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	return deleteIDs(ctx, r.col, ids)
}
