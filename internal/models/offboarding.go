package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	OffboardingPending    = "pending"
	OffboardingApproved   = "approved"
	OffboardingInProgress = "in-progress"
	OffboardingCompleted  = "completed"
	OffboardingCancelled  = "cancelled"
)

// OffboardingRequest.Employee historically held either the employee _id or
// the user _id, depending on which screen raised the request.
type OffboardingRequest struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Employee       bson.ObjectID `bson:"employee,omitempty" json:"employee,omitempty"`
	EmployeeEmail  string        `bson:"employeeEmail,omitempty" json:"employeeEmail,omitempty"`
	Reason         string        `bson:"reason,omitempty" json:"reason,omitempty"`
	Status         string        `bson:"status,omitempty" json:"status,omitempty"`
	LastWorkingDay *time.Time    `bson:"lastWorkingDay,omitempty" json:"lastWorkingDay,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
