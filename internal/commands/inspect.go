package commands

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

func (c *cli) inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Read-only reports over tenant and global databases",
	}
	cmd.AddCommand(c.inspectEmployeesCmd(), c.inspectTenantCmd(), c.inspectUsersCmd(), c.inspectTenantsCmd())
	return cmd
}

func (c *cli) inspectEmployeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "Data-quality check of the tenant's employee records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireTenant(); err != nil {
				return err
			}
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				report, err := c.reports(client).Quality(ctx, c.tenant)
				if err != nil {
					return err
				}
				c.log.Info("quality check", zap.Int("employees", report.Total), zap.Int("clean", report.Clean))
				return render(cmd.OutOrStdout(), c.asJSON, report, func(w io.Writer) error {
					return printQuality(w, report)
				})
			})
		},
	}
}

func (c *cli) inspectTenantCmd() *cobra.Command {
	var sample int64
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Collections, counts and field types of a tenant database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireTenant(); err != nil {
				return err
			}
			if sample < 1 {
				return errors.New("--sample must be at least 1")
			}
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				st, err := c.reports(client).Structure(ctx, c.tenant, sample)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, st, func(w io.Writer) error {
					return printStructure(w, st)
				})
			})
		},
	}
	cmd.Flags().Int64Var(&sample, "sample", 3, "documents sampled per collection")
	return cmd
}

func (c *cli) inspectUsersCmd() *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Accounts of a tenant, or of the global database with --global",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant := c.tenant
			if global {
				tenant = ""
			} else if err := c.requireTenant(); err != nil {
				return err
			}
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				users, err := c.reports(client).Users(ctx, tenant)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, users, func(w io.Writer) error {
					return printUsers(w, users)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "list the global database instead of a tenant")
	return cmd
}

func (c *cli) inspectTenantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tenants",
		Short: "Registered tenants and the database each one uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				tenants, err := c.reports(client).Tenants(ctx)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, tenants, func(w io.Writer) error {
					return printTenants(w, tenants)
				})
			})
		},
	}
}

// jobsCmd lists a tenant's job postings; the tenant is positional.
func (c *cli) jobsCmd() *cobra.Command {
	var (
		limit int64
		after string
	)
	cmd := &cobra.Command{
		Use:     "jobs <tenantId>",
		Short:   "List the job postings of a tenant",
		Example: "  hrmsops jobs acme\n  hrmsops jobs acme --limit 20 --cursor <next>",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.tenant = args[0]
			if err := c.requireTenant(); err != nil {
				return err
			}
			if limit < 0 {
				return errors.New("--limit cannot be negative")
			}
			return c.withMongo(cmd, func(ctx context.Context, client *mongo.Client) error {
				page, err := c.reports(client).Jobs(ctx, c.tenant, limit, after)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), c.asJSON, page, func(w io.Writer) error {
					return printJobs(w, c.tenant, page)
				})
			})
		},
	}
	cmd.Flags().Int64Var(&limit, "limit", 0, "page size (0 lists everything)")
	cmd.Flags().StringVar(&after, "cursor", "", "next cursor printed by the previous page")
	return cmd
}
