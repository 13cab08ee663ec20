package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrNotFound = errors.New("document not found")

const (
	UsersCollection              = "users"
	EmployeesCollection          = "employees"
	OnboardingsCollection        = "onboardings"
	OnboardingRequestsCollection = "onboardingrequests"
	OffboardingRequestCollection = "offboardingrequests"
	ProjectsCollection           = "projects"
	ProjectAssignmentsCollection = "projectassignments"
	JobPostingsCollection        = "jobpostings"
	RolesCollection              = "roles"
	ClientsCollection            = "clients"
	EmployeeRequestsCollection   = "employeerequests"
	TeamMeetingsCollection       = "teammeetings"
	CountersCollection           = "counters"
	TenantsCollection            = "tenants"
	AuditLogsCollection          = "superadminauditlogs"
)

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any) (T, error) {
	var doc T
	err := col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, fmt.Errorf("%s: %w", col.Name(), ErrNotFound)
	}
	if err != nil {
		return doc, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	return doc, nil
}

func deleteIDs(ctx context.Context, col *mongo.Collection, ids []bson.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", col.Name(), err)
	}
	return res.DeletedCount, nil
}

func updateByID(ctx context.Context, col *mongo.Collection, id bson.ObjectID, update bson.M) error {
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update %s %s: %w", col.Name(), id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", col.Name(), id.Hex(), ErrNotFound)
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id bson.ObjectID) error {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", col.Name(), id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", col.Name(), id.Hex(), ErrNotFound)
	}
	return nil
}
