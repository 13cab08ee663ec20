package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrTenantNotFound  = errors.New("tenant database not found")
	ErrInvalidTenantID = errors.New("invalid tenant id")
)

var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,48}$`)

// Naming describes how tenant identifiers map onto database names.
type Naming struct {
	Prefix       string
	LegacyPrefix string
}

func ValidTenantID(id string) bool {
	return tenantIDPattern.MatchString(id)
}

// Candidates returns the database names a tenant may live in, current naming first.
func (n Naming) Candidates(tenantID string) []string {
	names := []string{n.Prefix + tenantID}
	if n.LegacyPrefix != "" && n.LegacyPrefix != n.Prefix {
		names = append(names, n.LegacyPrefix+tenantID)
	}
	return names
}

// TenantIDFromDB reports the tenant id encoded in a database name and
// whether the name uses the legacy prefix.
func (n Naming) TenantIDFromDB(dbName string) (id string, legacy bool, ok bool) {
	if n.Prefix != "" {
		if id, ok := strings.CutPrefix(dbName, n.Prefix); ok && id != "" {
			return id, false, true
		}
	}
	if n.LegacyPrefix != "" {
		if id, ok := strings.CutPrefix(dbName, n.LegacyPrefix); ok && id != "" {
			return id, true, true
		}
	}
	return "", false, false
}

// Pick returns the first candidate present in existing.
func (n Naming) Pick(tenantID string, existing []string) (string, error) {
	for _, c := range n.Candidates(tenantID) {
		if slices.Contains(existing, c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
}

// ResolveTenantDB looks up which database holds tenantID.
func ResolveTenantDB(ctx context.Context, client *mongo.Client, n Naming, tenantID string) (*mongo.Database, error) {
	if !ValidTenantID(tenantID) {
		return nil, fmt.Errorf("%w %q", ErrInvalidTenantID, tenantID)
	}
	names, err := client.ListDatabaseNames(ctx, bson.M{"name": bson.M{"$in": n.Candidates(tenantID)}})
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	name, err := n.Pick(tenantID, names)
	if err != nil {
		return nil, err
	}
	return client.Database(name), nil
}

// TenantDatabases lists every database matching either naming convention.
func TenantDatabases(ctx context.Context, client *mongo.Client, n Naming) (map[string]string, error) {
	names, err := client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	out := make(map[string]string)
	for _, name := range names {
		id, legacy, ok := n.TenantIDFromDB(name)
		if !ok {
			continue
		}
		if _, seen := out[id]; seen && legacy {
			continue
		}
		out[id] = name
	}
	return out, nil
}
