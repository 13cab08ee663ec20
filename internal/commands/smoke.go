package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/internal/apiclient"
	"github.com/vibhu2208/hrms-backend-sub007/utils"
)

type smokeFlags struct {
	baseURL  string
	email    string
	password string
}

func (c *cli) smokeCmd() *cobra.Command {
	var f smokeFlags
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Log in to a running HRMS server and exercise its endpoints",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.baseURL, "base-url", "", "HRMS server (default API_BASE_URL)")
	pf.StringVar(&f.email, "email", "", "login email")
	pf.StringVar(&f.password, "password", "", "login password")
	_ = cmd.MarkPersistentFlagRequired("email")
	_ = cmd.MarkPersistentFlagRequired("password")

	cmd.AddCommand(c.smokeRunCmd(&f), c.smokeSendOfferCmd(&f))
	return cmd
}

// login returns a client holding a token, having printed who it belongs to.
func (c *cli) login(ctx context.Context, cmd *cobra.Command, f *smokeFlags) (*apiclient.Client, error) {
	base := f.baseURL
	if base == "" {
		base = c.cfg.APIBaseURL
	}
	client := apiclient.New(base, c.timeout).WithTenant(c.tenant)
	res, err := client.Login(ctx, f.email, f.password)
	if err != nil {
		return nil, err
	}
	c.log.Debug("logged in", zap.String("base", base), zap.Duration("took", res.Duration))

	info, err := apiclient.DecodeToken(client.Token())
	if err != nil {
		c.log.Warn("token is not a readable JWT", zap.Error(err))
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", f.email)
		return client, nil
	}
	if info.Email == "" {
		info.Email = f.email
	}
	printToken(cmd.OutOrStdout(), info)
	return client, nil
}

func (c *cli) smokeRunCmd(f *smokeFlags) *cobra.Command {
	var suite, planFile string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a built-in suite or a YAML plan of endpoint checks",
		Example: `  hrmsops smoke run --email m@acme.com --password ... --suite manager
  hrmsops smoke run --email m@acme.com --password ... --plan checks.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := c.loadPlan(suite, planFile)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			client, err := c.login(ctx, cmd, f)
			if err != nil {
				return err
			}
			outcomes := client.Run(ctx, plan)
			failed, err := printOutcomes(cmd.OutOrStdout(), outcomes)
			if err != nil {
				return err
			}
			c.log.Info("smoke run", zap.Int("checks", len(outcomes)), zap.Int("failed", failed))
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&suite, "suite", "all", "built-in suite: "+strings.Join(apiclient.SuiteNames(), ", "))
	cmd.Flags().StringVar(&planFile, "plan", "", "YAML plan file used instead of --suite")
	return cmd
}

func (c *cli) loadPlan(suite, planFile string) (apiclient.Plan, error) {
	if planFile != "" {
		return apiclient.LoadPlan(planFile)
	}
	return apiclient.Suite(suite)
}

func (c *cli) smokeSendOfferCmd(f *smokeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "send-offer <onboardingId>",
		Short: "Trigger the offer email of an onboarding record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := utils.Oid(args[0]); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			client, err := c.login(ctx, cmd, f)
			if err != nil {
				return err
			}
			res, err := client.SendOffer(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %d in %s\n%s\n", res.Method, res.Path, res.Status, res.Duration, orDash(res.Excerpt))
			if res.Status < 200 || res.Status > 299 {
				return fmt.Errorf("send-offer returned %d", res.Status)
			}
			return nil
		},
	}
}
