package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
)

// MongoReconcileWriter applies reconcile fixes through the tenant repositories.
type MongoReconcileWriter struct {
	Users        *repository.UserRepository
	Employees    *repository.EmployeeRepository
	Offboardings *repository.OffboardingRepository
}

func (w MongoReconcileWriter) LinkEmployeeUser(ctx context.Context, employeeID, userID bson.ObjectID) error {
	if err := w.Employees.SetUser(ctx, employeeID, userID); err != nil {
		return err
	}
	return w.Users.SetEmployee(ctx, userID, employeeID)
}

func (w MongoReconcileWriter) ClearEmployeeUser(ctx context.Context, employeeID bson.ObjectID) error {
	return w.Employees.ClearUser(ctx, employeeID)
}

func (w MongoReconcileWriter) RepointOffboarding(ctx context.Context, offboardingID, employeeID bson.ObjectID) error {
	return w.Offboardings.SetEmployee(ctx, offboardingID, employeeID)
}

func (w MongoReconcileWriter) DeactivateEmployee(ctx context.Context, employeeID bson.ObjectID, userID *bson.ObjectID) error {
	if err := w.Employees.Deactivate(ctx, employeeID); err != nil {
		return err
	}
	if userID == nil {
		return nil
	}
	return w.Users.SetActive(ctx, *userID, false)
}
