package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Tenant is a company registered in the global database.
type Tenant struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TenantID    string        `bson:"tenantId" json:"tenantId"`
	CompanyName string        `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Subdomain   string        `bson:"subdomain,omitempty" json:"subdomain,omitempty"`
	Status      string        `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Key returns the identifier used in the tenant's database name; older
// tenants only carry their ObjectID.
func (t Tenant) Key() string {
	if t.TenantID != "" {
		return t.TenantID
	}
	return t.ID.Hex()
}
