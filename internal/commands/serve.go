package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/controllers"
	"github.com/vibhu2208/hrms-backend-sub007/internal/middleware"
	"github.com/vibhu2208/hrms-backend-sub007/internal/routes"
)

var errNoSecret = errors.New("JWT_SECRET is required")

func (c *cli) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only tenant reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.JWTSecret == "" {
				return errNoSecret
			}
			if port == "" {
				port = c.cfg.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			connectCtx, cancel := context.WithTimeout(ctx, c.timeout)
			client, err := database.ConnectMongo(connectCtx, c.cfg.MongoURI)
			cancel()
			if err != nil {
				return err
			}
			defer func() {
				dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer dcancel()
				_ = database.DisconnectMongo(dctx, client)
			}()

			h := controllers.NewReportController(c.reports(client), c.timeout, c.log)
			app := routes.NewApp(c.cfg.JWTSecret, h)

			errc := make(chan error, 1)
			go func() {
				c.log.Info("listening", zap.String("addr", ":"+port))
				errc <- app.Listen(":" + port)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			c.log.Info("shutting down")
			sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer scancel()
			return app.ShutdownWithContext(sctx)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default PORT)")
	cmd.AddCommand(c.serveTokenCmd())
	return cmd
}

func (c *cli) serveTokenCmd() *cobra.Command {
	var (
		uid string
		ttl time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the report server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.JWTSecret == "" {
				return errNoSecret
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}
			tok, err := middleware.SignToken(c.cfg.JWTSecret, uid, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "operator id put in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
