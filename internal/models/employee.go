package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	EmployeeActive     = "active"
	EmployeeInactive   = "inactive"
	EmployeeOnNotice   = "on-notice"
	EmployeeTerminated = "terminated"
)

var EmployeeStatuses = []string{EmployeeActive, EmployeeInactive, EmployeeOnNotice, EmployeeTerminated}

type Employee struct {
	ID               bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	EmployeeCode     string         `bson:"employeeCode,omitempty" json:"employeeCode,omitempty"`
	FirstName        string         `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName         string         `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email            string         `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Department       string         `bson:"department,omitempty" json:"department,omitempty"`
	Designation      string         `bson:"designation,omitempty" json:"designation,omitempty"`
	DateOfJoining    *time.Time     `bson:"dateOfJoining,omitempty" json:"dateOfJoining,omitempty"`
	Status           string         `bson:"status,omitempty" json:"status,omitempty"`
	IsActive         bool           `bson:"isActive" json:"isActive"`
	UserID           *bson.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	ReportingManager *bson.ObjectID `bson:"reportingManager,omitempty" json:"reportingManager,omitempty"`
	CreatedAt        time.Time      `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt        time.Time      `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Active treats either the status field or the legacy isActive flag as live.
func (e Employee) Active() bool {
	if e.Status != "" {
		return e.Status == EmployeeActive || e.Status == EmployeeOnNotice
	}
	return e.IsActive
}
