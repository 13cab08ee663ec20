package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

func tenantIndexes() []indexSpec {
	return []indexSpec{
		{repository.RolesCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_tenant_slug"),
		}},
		{repository.ClientsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_client_code"),
		}},
		{repository.EmployeeRequestsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "requestNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_request_number"),
		}},
		{repository.EmployeeRequestsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "employee", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("employee_status"),
		}},
		{repository.TeamMeetingsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "scheduledAt", Value: 1}},
			Options: options.Index().SetName("scheduled_at"),
		}},
	}
}

// EnsureIndexes creates the indexes the record schemas rely on. It is
// idempotent; existing indexes with the same definition are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	var created []string
	for _, spec := range tenantIndexes() {
		name, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model)
		if err != nil {
			return created, fmt.Errorf("index on %s: %w", spec.collection, err)
		}
		created = append(created, spec.collection+"."+name)
	}
	return created, nil
}
