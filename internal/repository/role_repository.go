package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(RolesCollection)}
}

func (r *RoleRepository) Insert(ctx context.Context, role *models.Role) error {
	role.ID = bson.NewObjectID()
	if _, err := r.col.InsertOne(ctx, role); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("role slug %q already exists for tenant %s: %w", role.Slug, role.TenantID, err)
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepository) FindAll(ctx context.Context, tenantID string) ([]models.Role, error) {
	return findAll[models.Role](ctx, r.col, bson.M{"tenantId": tenantID}, options.Find().SetSort(bson.D{{Key: "slug", Value: 1}}))
}

func (r *RoleRepository) FindBySlug(ctx context.Context, tenantID, slug string) (models.Role, error) {
	return findOne[models.Role](ctx, r.col, bson.M{"tenantId": tenantID, "slug": slug})
}

func (r *RoleRepository) FindByID(ctx context.Context, id bson.ObjectID) (models.Role, error) {
	return findOne[models.Role](ctx, r.col, bson.M{"_id": id})
}

func (r *RoleRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}
