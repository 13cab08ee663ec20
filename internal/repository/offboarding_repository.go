package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type OffboardingRepository struct {
	col *mongo.Collection
}

func NewOffboardingRepository(db *mongo.Database) *OffboardingRepository {
	return &OffboardingRepository{col: db.Collection(OffboardingRequestCollection)}
}

func (r *OffboardingRepository) FindAll(ctx context.Context) ([]models.OffboardingRequest, error) {
	return findAll[models.OffboardingRequest](ctx, r.col, bson.M{})
}

func (r *OffboardingRepository) SetEmployee(ctx context.Context, id, employeeID bson.ObjectID) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"employee": employeeID, "updatedAt": time.Now()}})
}
