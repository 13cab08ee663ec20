package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type UserLister interface {
	FindAll(ctx context.Context) ([]models.User, error)
}

type EmployeeLister interface {
	FindAll(ctx context.Context) ([]models.Employee, error)
}

type OffboardingLister interface {
	FindAll(ctx context.Context) ([]models.OffboardingRequest, error)
}

type OnboardingStore interface {
	FindAll(ctx context.Context) ([]models.Onboarding, error)
	DeleteIDs(ctx context.Context, ids []bson.ObjectID) (int64, error)
}

type IDDeleter interface {
	DeleteIDs(ctx context.Context, ids []bson.ObjectID) (int64, error)
}
