package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(UsersCollection)}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"email": models.NormalizeEmail(email)})
}

func (r *UserRepository) SetPassword(ctx context.Context, id bson.ObjectID, hash string) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"password": hash, "updatedAt": time.Now()}})
}

func (r *UserRepository) SetActive(ctx context.Context, id bson.ObjectID, active bool) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}})
}

func (r *UserRepository) SetEmployee(ctx context.Context, id, employeeID bson.ObjectID) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"employeeId": employeeID, "updatedAt": time.Now()}})
}

func (r *UserRepository) DeleteIDs(ctx context.Context, ids []bson.ObjectID) (int64, error) {
	return deleteIDs(ctx, r.col, ids)
}
