package services

import (
	"sort"

	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

type TenantInfo struct {
	TenantID    string `json:"tenantId"`
	CompanyName string `json:"companyName,omitempty"`
	Status      string `json:"status,omitempty"`
	Database    string `json:"database,omitempty"`
	Legacy      bool   `json:"legacy"`
	Registered  bool   `json:"registered"`
}

// MatchTenants joins the global tenant registry with the tenant databases
// that actually exist. Databases without a registry entry are reported as
// unregistered; registry entries without a database have an empty Database.
func MatchTenants(tenants []models.Tenant, dbs map[string]string, naming database.Naming) []TenantInfo {
	out := make([]TenantInfo, 0, len(tenants))
	seen := map[string]bool{}
	for _, t := range tenants {
		key := t.Key()
		seen[key] = true
		info := TenantInfo{TenantID: key, CompanyName: t.CompanyName, Status: t.Status, Registered: true}
		if db, ok := dbs[key]; ok {
			info.Database = db
			_, info.Legacy, _ = naming.TenantIDFromDB(db)
		}
		out = append(out, info)
	}

	var extra []string
	for id := range dbs {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		_, legacy, _ := naming.TenantIDFromDB(dbs[id])
		out = append(out, TenantInfo{TenantID: id, Database: dbs[id], Legacy: legacy})
	}
	return out
}
