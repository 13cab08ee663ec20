package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(EmployeesCollection)}
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]models.Employee, error) {
	return findAll[models.Employee](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "employeeCode", Value: 1}}))
}

func (r *EmployeeRepository) SetUser(ctx context.Context, id, userID bson.ObjectID) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"userId": userID, "updatedAt": time.Now()}})
}

func (r *EmployeeRepository) ClearUser(ctx context.Context, id bson.ObjectID) error {
	return updateByID(ctx, r.col, id, bson.M{
		"$unset": bson.M{"userId": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	})
}

func (r *EmployeeRepository) Deactivate(ctx context.Context, id bson.ObjectID) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{
		"status":    models.EmployeeInactive,
		"isActive":  false,
		"updatedAt": time.Now(),
	}})
}

func (r *EmployeeRepository) DeleteIDs(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	return deleteIDs(ctx, r.col, ids)
}
