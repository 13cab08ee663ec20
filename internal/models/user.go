package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleHR         = "hr"
	RoleManager    = "manager"
	RoleEmployee   = "employee"
	RoleCandidate  = "candidate"
)

// User is an account document, either in a tenant database or in the
// global database for cross-tenant accounts.
type User struct {
	ID         bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string         `bson:"email" json:"email"`
	Password   string         `bson:"password,omitempty" json:"-"`
	FirstName  string         `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName   string         `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Role       string         `bson:"role" json:"role"`
	IsActive   bool           `bson:"isActive" json:"isActive"`
	EmployeeID *bson.ObjectID `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	TenantID   string         `bson:"tenantId,omitempty" json:"tenantId,omitempty"`
	LastLogin  *time.Time     `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt  time.Time      `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  time.Time      `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsPrivileged reports whether the account must never be removed by cleanup.
func (u User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// NormalizeEmail is the comparison key used across users, employees and
// onboarding records.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
