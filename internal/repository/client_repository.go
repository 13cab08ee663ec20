package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(ClientsCollection)}
}

func (r *ClientRepository) Insert(ctx context.Context, c *models.Client) error {
	c.ID = bson.NewObjectID()
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("client code %q already exists: %w", c.Code, err)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	return findAll[models.Client](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
}

func (r *ClientRepository) FindByCode(ctx context.Context, code string) (models.Client, error) {
	return findOne[models.Client](ctx, r.col, bson.M{"code": strings.ToUpper(strings.TrimSpace(code))})
}

func (r *ClientRepository) SetStatus(ctx context.Context, id bson.ObjectID, status string) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"status": status}, "$currentDate": bson.M{"updatedAt": true}})
}

func (r *ClientRepository) FindByID(ctx context.Context, id bson.ObjectID) (models.Client, error) {
	return findOne[models.Client](ctx, r.col, bson.M{"_id": id})
}

func (r *ClientRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}
