package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
)

type fakeUsers struct{ users []models.User }

func (f *fakeUsers) FindAll(context.Context) ([]models.User, error) { return f.users, nil }

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == models.NormalizeEmail(email) {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUsers) SetPassword(_ context.Context, id bson.ObjectID, hash string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Password = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeEmployees struct{ employees []models.Employee }

func (f *fakeEmployees) FindAll(context.Context) ([]models.Employee, error) { return f.employees, nil }

type fakeOffboardings struct{ requests []models.OffboardingRequest }

func (f *fakeOffboardings) FindAll(context.Context) ([]models.OffboardingRequest, error) {
	return f.requests, nil
}

type failingLister struct{}

func (failingLister) FindAll(context.Context) ([]models.User, error) {
	return nil, errors.New("connection reset")
}

type recordingDeleter struct {
	ids [][]bson.ObjectID
	err error
}

func (d *recordingDeleter) DeleteIDs(_ context.Context, ids []bson.ObjectID) (int64, error) {
	if d.err != nil {
		return 0, d.err
	}
	d.ids = append(d.ids, ids)
	return int64(len(ids)), nil
}

func oidPtr(id bson.ObjectID) *bson.ObjectID { return &id }
