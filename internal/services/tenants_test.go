package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

func TestMatchTenants(t *testing.T) {
	naming := database.Naming{Prefix: "tenant_", LegacyPrefix: "hrms_tenant_"}
	oldTenant := models.Tenant{ID: bson.NewObjectID(), CompanyName: "Old Co"}
	tenants := []models.Tenant{
		{TenantID: "acme", CompanyName: "Acme", Status: "active"},
		oldTenant,
		{TenantID: "ghost", CompanyName: "Ghost"},
	}
	dbs := map[string]string{
		"acme":          "tenant_acme",
		oldTenant.Key(): "hrms_tenant_" + oldTenant.Key(),
		"zeta":          "tenant_zeta",
		"beta":          "hrms_tenant_beta",
	}

	got := MatchTenants(tenants, dbs, naming)
	assert.Equal(t, []TenantInfo{
		{TenantID: "acme", CompanyName: "Acme", Status: "active", Database: "tenant_acme", Registered: true},
		{TenantID: oldTenant.ID.Hex(), CompanyName: "Old Co", Database: "hrms_tenant_" + oldTenant.ID.Hex(), Legacy: true, Registered: true},
		{TenantID: "ghost", CompanyName: "Ghost", Registered: true},
		{TenantID: "beta", Database: "hrms_tenant_beta", Legacy: true},
		{TenantID: "zeta", Database: "tenant_zeta"},
	}, got)
}
