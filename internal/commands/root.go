package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/config"
	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/logger"
	"github.com/vibhu2208/hrms-backend-sub007/internal/services"
)

var errTenantRequired = errors.New("--tenant is required")

// cli carries the root flags and what PersistentPreRunE builds from them.
type cli struct {
	tenant  string
	envFile string
	verbose bool
	asJSON  bool
	timeout time.Duration

	cfg config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	c := &cli{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "hrmsops",
		Short: "Diagnostics and data repair for the multi-tenant HRMS",
		Long: `hrmsops inspects tenant databases, reconciles users with employees and
offboarding requests, resets credentials and smoke-tests the HRMS API.

Repairs print their plan and change nothing unless --apply is given.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.tenant, "tenant", "t", "", "tenant id")
	pf.StringVar(&c.envFile, "env-file", "", "env file to load (default .env when present)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&c.asJSON, "json", false, "print reports as JSON")
	pf.DurationVar(&c.timeout, "timeout", 0, "overall deadline (default OP_TIMEOUT)")

	root.AddCommand(
		c.inspectCmd(),
		c.jobsCmd(),
		c.repairCmd(),
		c.smokeCmd(),
		c.recordsCmd(),
		c.indexesCmd(),
		c.serveCmd(),
	)
	return root
}

// Execute runs the CLI. Any command error is logged once and exits 1.
func Execute() {
	c := NewRootCmd()
	cmd, err := c.ExecuteC()
	if err == nil {
		return
	}
	if log := runLogger(cmd); log != nil {
		log.Error("command failed", zap.Error(err))
		_ = log.Sync()
	} else {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}

type loggerKey struct{}

func runLogger(cmd *cobra.Command) *zap.Logger {
	if cmd == nil || cmd.Context() == nil {
		return nil
	}
	log, _ := cmd.Context().Value(loggerKey{}).(*zap.Logger)
	return log
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(c.envFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.timeout <= 0 {
		c.timeout = cfg.Timeout
	}

	base, err := logger.New(cfg.LogLevel, c.verbose)
	if err != nil {
		return err
	}
	c.log = logger.ForRun(base, cmd.CommandPath(), c.tenant)
	cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, c.log))
	c.log.Debug("configured",
		zap.String("global_db", cfg.GlobalDB),
		zap.String("api", cfg.APIBaseURL),
		zap.Duration("timeout", c.timeout))
	return nil
}

func (c *cli) naming() database.Naming {
	return database.Naming{Prefix: c.cfg.TenantPrefix, LegacyPrefix: c.cfg.LegacyTenantPrefix}
}

func (c *cli) requireTenant() error {
	if c.tenant == "" {
		return errTenantRequired
	}
	if !database.ValidTenantID(c.tenant) {
		return fmt.Errorf("%w %q", database.ErrInvalidTenantID, c.tenant)
	}
	return nil
}

// withMongo connects, runs fn under the command deadline and disconnects.
func (c *cli) withMongo(cmd *cobra.Command, fn func(ctx context.Context, client *mongo.Client) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()

	client, err := database.ConnectMongo(ctx, c.cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		if err := database.DisconnectMongo(dctx, client); err != nil {
			c.log.Warn("disconnect", zap.Error(err))
		}
	}()
	return fn(ctx, client)
}

// withTenant resolves the --tenant database before calling fn.
func (c *cli) withTenant(cmd *cobra.Command, fn func(ctx context.Context, db *mongo.Database) error) error {
	if err := c.requireTenant(); err != nil {
		return err
	}
	return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
		db, err := database.ResolveTenantDB(ctx, client, c.naming(), c.tenant)
		if err != nil {
			return err
		}
		c.log.Debug("tenant database", zap.String("db", db.Name()))
		return fn(ctx, db)
	})
}

func (c *cli) reports(client *mongo.Client) *services.ReportService {
	return &services.ReportService{Client: client, Naming: c.naming(), GlobalDB: c.cfg.GlobalDB}
}
