package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

func TestCheckEmployeeQuality(t *testing.T) {
	joined := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	user := models.User{ID: bson.NewObjectID(), Email: "asha@acme.in"}

	clean := models.Employee{
		ID: bson.NewObjectID(), EmployeeCode: "EMP001", FirstName: "Asha", LastName: "Rao",
		Email: "asha@acme.in", Department: "Engineering", Designation: "SDE",
		DateOfJoining: &joined, Status: models.EmployeeActive, UserID: &user.ID,
	}
	sloppy := models.Employee{
		ID: bson.NewObjectID(), FirstName: "Ravi", Email: "ravi-at-acme",
		Status: "resigned", UserID: oidPtr(bson.NewObjectID()),
	}
	bare := models.Employee{ID: bson.NewObjectID(), EmployeeCode: "EMP003"}

	report := CheckEmployeeQuality([]models.Employee{clean, sloppy, bare}, []models.User{user})

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Clean)
	require.Len(t, report.Employees, 2)

	assert.Equal(t, "Ravi", report.Employees[0].Name)
	assert.ElementsMatch(t, []QualityIssue{
		{Field: "employeeCode", Problem: "missing"},
		{Field: "lastName", Problem: "missing"},
		{Field: "department", Problem: "missing"},
		{Field: "designation", Problem: "missing"},
		{Field: "email", Problem: "malformed"},
		{Field: "dateOfJoining", Problem: "missing"},
		{Field: "status", Problem: `unknown status "resigned"`},
		{Field: "userId", Problem: "points at no user"},
	}, report.Employees[0].Issues)

	assert.Equal(t, "EMP003", report.Employees[1].EmployeeCode)
	assert.Equal(t, 2, report.FieldCounts["lastName"])
	assert.Equal(t, 2, report.FieldCounts["userId"])
	assert.Equal(t, 2, report.FieldCounts["email"])
	assert.Equal(t, 1, report.FieldCounts["status"])
}

func TestCheckEmployeeQuality_Empty(t *testing.T) {
	report := CheckEmployeeQuality(nil, nil)
	assert.Zero(t, report.Total)
	assert.NotNil(t, report.Employees)
}

func TestRunQualityCheck_PropagatesErrors(t *testing.T) {
	_, err := RunQualityCheck(context.Background(), &fakeEmployees{}, failingLister{})
	assert.ErrorContains(t, err, "connection reset")
}
