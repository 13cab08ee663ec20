package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ScopeSelf       = "self"
	ScopeTeam       = "team"
	ScopeDepartment = "department"
	ScopeTenant     = "tenant"
)

var RoleScopes = []string{ScopeSelf, ScopeTeam, ScopeDepartment, ScopeTenant}

type Permission struct {
	Module  string   `bson:"module" json:"module"`
	Actions []string `bson:"actions" json:"actions"`
}

// Role is a tenant-scoped permission bundle. Slug is unique per tenant.
type Role struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	TenantID    string         `bson:"tenantId" json:"tenantId"`
	Name        string         `bson:"name" json:"name"`
	Slug        string         `bson:"slug" json:"slug"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Permissions []Permission   `bson:"permissions" json:"permissions"`
	ParentRole  *bson.ObjectID `bson:"parentRole,omitempty" json:"parentRole,omitempty"`
	Scope       string         `bson:"scope" json:"scope"`
	IsSystem    bool           `bson:"isSystem" json:"isSystem"`
	IsActive    bool           `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Slugify lower-cases s and collapses every run of non-alphanumerics into a
// single dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ApplyDefaults fills the fields a new role gets when the caller leaves them
// empty. A new role (no createdAt yet) starts active.
func (r *Role) ApplyDefaults(now time.Time) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Slug == "" {
		r.Slug = Slugify(r.Name)
	} else {
		r.Slug = Slugify(r.Slug)
	}
	if r.Scope == "" {
		r.Scope = ScopeSelf
	}
	if r.Permissions == nil {
		r.Permissions = []Permission{}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
		r.IsActive = true
	}
	r.UpdatedAt = now
}

func (r Role) Validate() error {
	if r.TenantID == "" {
		return invalid("role tenantId is required")
	}
	if r.Name == "" {
		return invalid("role name is required")
	}
	if r.Slug == "" {
		return invalid("role slug is empty after normalising %q", r.Name)
	}
	if err := oneOf("role scope", r.Scope, RoleScopes); err != nil {
		return err
	}
	if r.ParentRole != nil && !r.ID.IsZero() && *r.ParentRole == r.ID {
		return invalid("role %s cannot be its own parent", r.Slug)
	}
	for _, p := range r.Permissions {
		if p.Module == "" {
			return invalid("role %s has a permission without module", r.Slug)
		}
	}
	return nil
}

// EffectivePermissions merges the permissions of the role with those of
// every ancestor. Actions are deduplicated and sorted per module.
func EffectivePermissions(roles map[bson.ObjectID]Role, id bson.ObjectID) ([]Permission, error) {
	merged := map[string][]string{}
	seen := map[bson.ObjectID]bool{}
	cur := id
	for {
		if seen[cur] {
			return nil, fmt.Errorf("role hierarchy cycle at %s", cur.Hex())
		}
		seen[cur] = true
		role, ok := roles[cur]
		if !ok {
			return nil, fmt.Errorf("role %s not found", cur.Hex())
		}
		for _, p := range role.Permissions {
			for _, a := range p.Actions {
				if !slices.Contains(merged[p.Module], a) {
					merged[p.Module] = append(merged[p.Module], a)
				}
			}
		}
		if role.ParentRole == nil {
			break
		}
		cur = *role.ParentRole
	}

	modules := make([]string, 0, len(merged))
	for m := range merged {
		modules = append(modules, m)
	}
	slices.Sort(modules)
	out := make([]Permission, 0, len(modules))
	for _, m := range modules {
		actions := merged[m]
		slices.Sort(actions)
		out = append(out, Permission{Module: m, Actions: actions})
	}
	return out, nil
}
