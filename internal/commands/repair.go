package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/repository"
	"github.com/vibhu2208/hrms-backend-sub007/internal/services"
)

func (c *cli) repairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Plan and apply data repairs",
		Long: `Every repair computes its plan from the current data and prints it.
Nothing is written unless --apply is given.`,
	}
	cmd.AddCommand(
		c.reconcileCmd(),
		c.cleanupTestUsersCmd(),
		c.cleanupCandidatesCmd(),
		c.resetPasswordCmd(),
		c.verifyPasswordCmd(),
		c.dropAuditLogsCmd(),
	)
	return cmd
}

func (c *cli) dryRun(w io.Writer) {
	fmt.Fprintln(w, "\ndry run: nothing changed, rerun with --apply")
}

func (c *cli) reconcileCmd() *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Cross-check users, employees and offboarding requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				users := repository.NewUserRepository(db)
				employees := repository.NewEmployeeRepository(db)
				offboardings := repository.NewOffboardingRepository(db)

				plan, err := services.RunReconcilePlan(ctx, users, employees, offboardings)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if err := render(out, c.asJSON, plan, func(w io.Writer) error { return printReconcile(w, plan) }); err != nil {
					return err
				}
				if !apply || len(plan.Fixes()) == 0 {
					if len(plan.Fixes()) > 0 {
						c.dryRun(out)
					}
					return nil
				}

				w := services.MongoReconcileWriter{Users: users, Employees: employees, Offboardings: offboardings}
				applied, err := services.ApplyReconcile(ctx, plan, w)
				c.log.Info("reconcile applied", zap.Int("applied", applied), zap.Int("planned", len(plan.Fixes())))
				if err != nil {
					return fmt.Errorf("after %d fixes: %w", applied, err)
				}
				fmt.Fprintf(out, "\napplied %d fixes\n", applied)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "write the fixes")
	return cmd
}

func (c *cli) cleanupTestUsersCmd() *cobra.Command {
	var (
		apply   bool
		pattern string
	)
	cmd := &cobra.Command{
		Use:   "cleanup-test-users",
		Short: "Delete test accounts and their employee records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Errorf("invalid --pattern: %w", err)
			}
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				users := repository.NewUserRepository(db)
				employees := repository.NewEmployeeRepository(db)
				us, err := users.FindAll(ctx)
				if err != nil {
					return err
				}
				emps, err := employees.FindAll(ctx)
				if err != nil {
					return err
				}

				plan := services.PlanTestUserCleanup(us, emps, re)
				out := cmd.OutOrStdout()
				if err := render(out, c.asJSON, plan, func(w io.Writer) error { return printTestUserPlan(w, plan) }); err != nil {
					return err
				}
				if len(plan.Users) == 0 && len(plan.Employees) == 0 {
					return nil
				}
				if !apply {
					c.dryRun(out)
					return nil
				}
				du, de, err := services.ApplyTestUserCleanup(ctx, plan, users, employees)
				c.log.Info("test users removed", zap.Int64("users", du), zap.Int64("employees", de))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\ndeleted %d users and %d employees\n", du, de)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "delete the selected records")
	cmd.Flags().StringVar(&pattern, "pattern", services.DefaultTestUserPattern, "regexp matched against user emails")
	return cmd
}

func (c *cli) cleanupCandidatesCmd() *cobra.Command {
	var (
		apply bool
		email string
	)
	cmd := &cobra.Command{
		Use:   "cleanup-candidates",
		Short: "Remove closed onboarding records and the candidate accounts left behind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				onboardings, err := repository.NewOnboardingRepository(db, repository.OnboardingsCollection)
				if err != nil {
					return err
				}
				requests, err := repository.NewOnboardingRepository(db, repository.OnboardingRequestsCollection)
				if err != nil {
					return err
				}
				users := repository.NewUserRepository(db)

				obs, err := onboardings.FindAll(ctx)
				if err != nil {
					return err
				}
				reqs, err := requests.FindAll(ctx)
				if err != nil {
					return err
				}
				us, err := users.FindAll(ctx)
				if err != nil {
					return err
				}

				plan := services.PlanCandidateCleanup(obs, reqs, us, email)
				out := cmd.OutOrStdout()
				if err := render(out, c.asJSON, plan, func(w io.Writer) error { return printCandidatePlan(w, plan) }); err != nil {
					return err
				}
				if plan.Empty() {
					return nil
				}
				if !apply {
					c.dryRun(out)
					return nil
				}
				res, err := services.ApplyCandidateCleanup(ctx, plan, onboardings, requests, users)
				c.log.Info("candidates removed",
					zap.Int64("onboardings", res.Onboardings),
					zap.Int64("requests", res.Requests),
					zap.Int64("users", res.Users))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\ndeleted %d onboardings, %d onboarding requests, %d users\n", res.Onboardings, res.Requests, res.Users)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "delete the selected records")
	cmd.Flags().StringVar(&email, "email", "", "only this candidate, whatever the record status")
	return cmd
}

// userDB picks the global database with --global, otherwise the tenant's.
func (c *cli) userDB(ctx context.Context, client *mongo.Client, global bool) (*mongo.Database, error) {
	if global {
		return client.Database(c.cfg.GlobalDB), nil
	}
	return database.ResolveTenantDB(ctx, client, c.naming(), c.tenant)
}

func (c *cli) credentialFlags(cmd *cobra.Command, email, password *string, global *bool) {
	cmd.Flags().StringVar(email, "email", "", "account email")
	cmd.Flags().StringVar(password, "password", "", "password")
	cmd.Flags().BoolVar(global, "global", false, "use the global database instead of a tenant")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}

func (c *cli) checkScope(global bool) error {
	if global {
		return nil
	}
	return c.requireTenant()
}

func (c *cli) resetPasswordCmd() *cobra.Command {
	var (
		email, password string
		global, apply   bool
	)
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new bcrypt password on an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.checkScope(global); err != nil {
				return err
			}
			if len(password) < services.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", services.MinPasswordLength)
			}
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				db, err := c.userDB(ctx, client, global)
				if err != nil {
					return err
				}
				users := repository.NewUserRepository(db)
				out := cmd.OutOrStdout()
				if !apply {
					u, err := users.FindByEmail(ctx, email)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "would reset the password of %s (%s) in %s\n", u.Email, u.Role, db.Name())
					c.dryRun(out)
					return nil
				}
				u, err := services.Credentials{Store: users, Cost: c.cfg.BcryptCost}.Reset(ctx, email, password)
				if err != nil {
					return err
				}
				c.log.Info("password reset", zap.String("email", u.Email), zap.String("db", db.Name()))
				fmt.Fprintf(out, "password of %s reset in %s\n", u.Email, db.Name())
				return nil
			})
		},
	}
	c.credentialFlags(cmd, &email, &password, &global)
	cmd.Flags().BoolVar(&apply, "apply", false, "write the new hash")
	return cmd
}

func (c *cli) verifyPasswordCmd() *cobra.Command {
	var (
		email, password string
		global          bool
	)
	cmd := &cobra.Command{
		Use:   "verify-password",
		Short: "Check a password against the stored hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.checkScope(global); err != nil {
				return err
			}
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				db, err := c.userDB(ctx, client, global)
				if err != nil {
					return err
				}
				ok, u, err := services.Credentials{Store: repository.NewUserRepository(db)}.Verify(ctx, email, password)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch {
				case u.Password == "":
					fmt.Fprintf(out, "%s has no password set\n", u.Email)
				case ok:
					fmt.Fprintf(out, "password matches for %s (role %s, active %t)\n", u.Email, u.Role, u.IsActive)
				default:
					fmt.Fprintf(out, "password does NOT match for %s\n", u.Email)
				}
				if !ok {
					return errors.New("password verification failed")
				}
				return nil
			})
		},
	}
	c.credentialFlags(cmd, &email, &password, &global)
	return cmd
}

func (c *cli) dropAuditLogsCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "drop-audit-logs",
		Short: "Drop the super-admin audit log collection of the global database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				logs := repository.NewAuditLogRepository(client.Database(c.cfg.GlobalDB))
				n, err := logs.Count(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s.%s holds %d documents\n", c.cfg.GlobalDB, repository.AuditLogsCollection, n)
				if !yes {
					return errors.New("refusing to drop without --yes")
				}
				if err := logs.Drop(ctx); err != nil {
					return err
				}
				c.log.Warn("audit logs dropped", zap.Int64("documents", n))
				fmt.Fprintln(out, "dropped")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the drop")
	return cmd
}
