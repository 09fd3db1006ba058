package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newSeedCommand(opts *globalOptions) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "seed-coa",
		Short: "Create the missing accounts of the starter chart",
		Long: `Creates every account of the starter chart that does not exist yet.
The chart comes from COA_SEED_FILE when set, otherwise the built-in default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(os.Stderr)

			app, err := openApplication(cmd.Context(), logger, true)
			if err != nil {
				return err
			}
			defer app.close()

			created, err := app.services.Account.SeedDefaultChart(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to seed chart of accounts: %w", err)
			}

			logger.Info("Chart of accounts seeded", slog.Int("created", len(created)))
			out := cmd.OutOrStdout()
			for _, acc := range created {
				fmt.Fprintf(out, "%-10s %-10s %s\n", acc.Code, acc.AccountType, acc.Name)
			}
			fmt.Fprintf(out, "%d account(s) created\n", len(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "pos-cli", "user id recorded on the created accounts")

	return cmd
}
