package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/cursor"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
)

// ReportService produces the read-only reports shared by the CLI and the
// ops server.
type ReportService struct {
	Client   *mongo.Client
	Naming   database.Naming
	GlobalDB string
}

func (s *ReportService) tenantDB(ctx context.Context, tenantID string) (*mongo.Database, error) {
	return database.ResolveTenantDB(ctx, s.Client, s.Naming, tenantID)
}

func (s *ReportService) Tenants(ctx context.Context) ([]TenantInfo, error) {
	tenants, err := repository.NewTenantRepository(s.Client.Database(s.GlobalDB)).FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dbs, err := database.TenantDatabases(ctx, s.Client, s.Naming)
	if err != nil {
		return nil, err
	}
	return MatchTenants(tenants, dbs, s.Naming), nil
}

func (s *ReportService) Structure(ctx context.Context, tenantID string, sampleSize int64) (TenantStructure, error) {
	db, err := s.tenantDB(ctx, tenantID)
	if err != nil {
		return TenantStructure{}, err
	}
	return DescribeTenant(ctx, repository.NewStructureRepository(db), sampleSize)
}

func (s *ReportService) Quality(ctx context.Context, tenantID string) (QualityReport, error) {
	db, err := s.tenantDB(ctx, tenantID)
	if err != nil {
		return QualityReport{}, err
	}
	return RunQualityCheck(ctx, repository.NewEmployeeRepository(db), repository.NewUserRepository(db))
}

func (s *ReportService) Reconcile(ctx context.Context, tenantID string) (ReconcilePlan, error) {
	db, err := s.tenantDB(ctx, tenantID)
	if err != nil {
		return ReconcilePlan{}, err
	}
	return RunReconcilePlan(ctx,
		repository.NewUserRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewOffboardingRepository(db))
}

// Jobs lists job postings newest first. limit 0 means no paging; after is
// the Next cursor of a previous page.
func (s *ReportService) Jobs(ctx context.Context, tenantID string, limit int64, after string) (JobPage, error) {
	var pos *cursor.Position
	if after != "" {
		p, err := cursor.Decode(after)
		if err != nil {
			return JobPage{}, err
		}
		pos = &p
	}
	db, err := s.tenantDB(ctx, tenantID)
	if err != nil {
		return JobPage{}, err
	}
	fetch := limit
	if limit > 0 {
		fetch = limit + 1
	}
	jobs, err := repository.NewJobRepository(db).FindPage(ctx, fetch, pos)
	if err != nil {
		return JobPage{}, err
	}
	return NewJobPage(jobs, limit), nil
}

// Users lists the accounts of a tenant, or of the global database when
// tenantID is empty.
func (s *ReportService) Users(ctx context.Context, tenantID string) ([]models.User, error) {
	db := s.Client.Database(s.GlobalDB)
	if tenantID != "" {
		var err error
		if db, err = s.tenantDB(ctx, tenantID); err != nil {
			return nil, err
		}
	}
	users, err := repository.NewUserRepository(db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("users of %s: %w", db.Name(), err)
	}
	return users, nil
}
