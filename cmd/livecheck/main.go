// Command livecheck runs the repair and record paths against a throwaway
// tenant database on a real MongoDB and drops it afterwards.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/bootstrap"
	"github.com/vibhu2208/hrms-backend-sub007/config"
	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/logger"
	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
	"github.com/vibhu2208/hrms-backend-sub007/internal/services"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so the scratch database is dropped and the
// client disconnected before the process exits.
func realMain() int {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	base, err := logger.New(cfg.LogLevel, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	tenant := "livecheck_" + uuid.NewString()[:8]
	log := logger.ForRun(base, "livecheck", tenant)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("connect", zap.Error(err))
		return 1
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		_ = database.DisconnectMongo(dctx, client)
	}()

	db := client.Database(cfg.TenantPrefix + tenant)
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dcancel()
		if err := db.Drop(dctx); err != nil {
			log.Warn("drop scratch database", zap.Error(err))
		}
	}()

	if err := run(ctx, log, client, cfg, tenant, db); err != nil {
		log.Error("livecheck failed", zap.Error(err))
		return 1
	}
	log.Info("livecheck passed")
	return 0
}

func run(ctx context.Context, log *zap.Logger, client *mongo.Client, cfg config.Config, tenant string, db *mongo.Database) error {
	if err := seed(ctx, db); err != nil {
		return err
	}

	naming := database.Naming{Prefix: cfg.TenantPrefix, LegacyPrefix: cfg.LegacyTenantPrefix}
	resolved, err := database.ResolveTenantDB(ctx, client, naming, tenant)
	if err != nil {
		return err
	}
	if resolved.Name() != db.Name() {
		return fmt.Errorf("resolved %s, want %s", resolved.Name(), db.Name())
	}

	users := repository.NewUserRepository(db)
	employees := repository.NewEmployeeRepository(db)
	offboardings := repository.NewOffboardingRepository(db)

	plan, err := services.RunReconcilePlan(ctx, users, employees, offboardings)
	if err != nil {
		return err
	}
	log.Info("reconcile planned", zap.Int("findings", len(plan.Findings)), zap.Int("fixes", len(plan.Fixes())))
	if plan.Count(services.FindingUnlinkedEmployee) != 1 || plan.Count(services.FindingOffboardingUserRef) != 1 {
		return fmt.Errorf("unexpected plan: %+v", plan.Findings)
	}
	w := services.MongoReconcileWriter{Users: users, Employees: employees, Offboardings: offboardings}
	if _, err := services.ApplyReconcile(ctx, plan, w); err != nil {
		return err
	}
	again, err := services.RunReconcilePlan(ctx, users, employees, offboardings)
	if err != nil {
		return err
	}
	if n := len(again.Fixes()); n != 0 {
		return fmt.Errorf("%d fixes left after apply: %+v", n, again.Findings)
	}

	if _, err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	reqs := repository.NewEmployeeRequestRepository(db)
	var (
		numbers []string
		ids     []bson.ObjectID
	)
	for i := 0; i < 2; i++ {
		r := models.EmployeeRequest{Employee: bson.NewObjectID(), Subject: fmt.Sprintf("laptop %d", i), RequestType: "asset"}
		r.ApplyDefaults(time.Now())
		if err := reqs.Insert(ctx, &r); err != nil {
			return err
		}
		numbers = append(numbers, r.RequestNumber)
		ids = append(ids, r.ID)
	}
	_, first, _ := models.ParseRequestNumber(numbers[0])
	_, second, _ := models.ParseRequestNumber(numbers[1])
	if second != first+1 {
		return fmt.Errorf("request numbers not sequential: %v", numbers)
	}
	log.Info("request numbering ok", zap.Strings("numbers", numbers))

	if err := reqs.Delete(ctx, ids[1]); err != nil {
		return err
	}
	if _, err := reqs.FindByID(ctx, ids[1]); !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("deleted request still readable: %v", err)
	}

	sample, err := services.DescribeTenant(ctx, repository.NewStructureRepository(db), 2)
	if err != nil {
		return err
	}
	log.Info("structure", zap.Int("collections", len(sample.Collections)))
	return nil
}

// seed writes an employee without a user link and a completed offboarding
// that points at the user instead of the employee.
func seed(ctx context.Context, db *mongo.Database) error {
	now := time.Now()
	userID := bson.NewObjectID()
	empID := bson.NewObjectID()

	if _, err := db.Collection(repository.UsersCollection).InsertOne(ctx, models.User{
		ID: userID, Email: "lc.user@hrms.local", Role: models.RoleEmployee, IsActive: true, CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if _, err := db.Collection(repository.EmployeesCollection).InsertOne(ctx, models.Employee{
		ID: empID, EmployeeCode: "LC-001", FirstName: "Live", LastName: "Check",
		Email: "LC.User@hrms.local", Status: models.EmployeeActive, IsActive: true, CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed employee: %w", err)
	}
	if _, err := db.Collection(repository.OffboardingRequestCollection).InsertOne(ctx, models.OffboardingRequest{
		ID: bson.NewObjectID(), Employee: userID, Reason: "resignation", Status: models.OffboardingCompleted,
	}); err != nil {
		return fmt.Errorf("seed offboarding: %w", err)
	}
	return nil
}
