package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type TenantRepository struct {
	col *mongo.Collection
}

func NewTenantRepository(global *mongo.Database) *TenantRepository {
	return &TenantRepository{col: global.Collection(TenantsCollection)}
}

func (r *TenantRepository) FindAll(ctx context.Context) ([]models.Tenant, error) {
	return findAll[models.Tenant](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "companyName", Value: 1}}))
}

type AuditLogRepository struct {
	col *mongo.Collection
}

func NewAuditLogRepository(global *mongo.Database) *AuditLogRepository {
	return &AuditLogRepository{col: global.Collection(AuditLogsCollection)}
}

func (r *AuditLogRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.col.Name(), err)
	}
	return n, nil
}

func (r *AuditLogRepository) Drop(ctx context.Context) error {
	if err := r.col.Drop(ctx); err != nil {
		return fmt.Errorf("drop %s: %w", r.col.Name(), err)
	}
	return nil
}
