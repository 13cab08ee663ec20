package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/bootstrap"
)

func (c *cli) indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the unique indexes the record collections rely on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTenant(cmd, func(ctx context.Context, db *mongo.Database) error {
				names, err := bootstrap.EnsureIndexes(ctx, db)
				for _, n := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "ok  %s.%s\n", db.Name(), n)
				}
				if err != nil {
					return err
				}
				c.log.Info("indexes ensured", zap.Int("count", len(names)))
				return nil
			})
		},
	}
}
