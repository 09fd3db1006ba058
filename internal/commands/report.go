package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
)

// reportOptions are the flags shared by the report subcommands.
type reportOptions struct {
	from   string
	to     string
	asOf   string
	asJSON bool
}

func (o *reportOptions) period() (domain.JournalFilter, error) {
	var filter domain.JournalFilter
	var err error
	if filter.From, err = domain.ParseDate(o.from, time.Time{}); err != nil {
		return filter, err
	}
	if filter.To, err = domain.ParseDate(o.to, time.Time{}); err != nil {
		return filter, err
	}
	return filter, nil
}

func (o *reportOptions) asOfDate() (time.Time, error) {
	return domain.ParseDate(o.asOf, time.Now().UTC())
}

type reportFunc func(ctx context.Context, svc portssvc.ReportingService, o *reportOptions, args []string, w io.Writer) error

func newReportCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print financial statements derived from the journal",
	}

	cmd.AddCommand(
		newReportSubcommand(opts, "trial-balance", "Trial balance as of a date", cobra.NoArgs, printTrialBalance),
		newReportSubcommand(opts, "income-statement", "Revenue, expenses and net income over a period", cobra.NoArgs, printIncomeStatement),
		newReportSubcommand(opts, "balance-sheet", "Assets, liabilities and equity as of a date", cobra.NoArgs, printBalanceSheet),
		newReportSubcommand(opts, "ledger <account-code>", "Running-balance history of one account", cobra.ExactArgs(1), printLedger),
		newReportSubcommand(opts, "dashboard", "Headline figures of a period", cobra.NoArgs, printDashboard),
	)

	return cmd
}

func newReportSubcommand(opts *globalOptions, use, short string, args cobra.PositionalArgs, run reportFunc) *cobra.Command {
	ro := &reportOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApplication(cmd.Context(), opts.logger(os.Stderr), false)
			if err != nil {
				return err
			}
			defer app.close()
			return run(cmd.Context(), app.services.Reporting, ro, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&ro.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ro.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ro.asOf, "as-of", "", "as-of date (YYYY-MM-DD), defaults to today")
	cmd.Flags().BoolVar(&ro.asJSON, "json", false, "print the report as JSON")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTrialBalance(ctx context.Context, svc portssvc.ReportingService, o *reportOptions, _ []string, w io.Writer) error {
	asOf, err := o.asOfDate()
	if err != nil {
		return err
	}
	report, err := svc.TrialBalance(ctx, asOf)
	if err != nil {
		return err
	}
	if o.asJSON {
		return writeJSON(w, report)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Trial balance as of %s\t\t\t\n", report.AsOf.Format(domain.DateLayout))
	fmt.Fprintln(tw, "Code\tAccount\tDebit\tCredit\t")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.AccountCode, row.AccountName, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
	}
	fmt.Fprintf(tw, "\tTotal\t%s\t%s\t\n", report.TotalDebit.StringFixed(2), report.TotalCredit.StringFixed(2))
	return tw.Flush()
}

func printAmounts(tw *tabwriter.Writer, title string, rows []domain.AccountAmount) {
	fmt.Fprintf(tw, "%s\t\t\t\n", title)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", row.AccountCode, row.Name, row.NetAmount.StringFixed(2))
	}
}

func printIncomeStatement(ctx context.Context, svc portssvc.ReportingService, o *reportOptions, _ []string, w io.Writer) error {
	filter, err := o.period()
	if err != nil {
		return err
	}
	report, err := svc.IncomeStatement(ctx, filter)
	if err != nil {
		return err
	}
	if o.asJSON {
		return writeJSON(w, report)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	printAmounts(tw, "Revenue", report.Revenue)
	fmt.Fprintf(tw, "\tTotal revenue\t%s\t\n", report.RevenueTotal.StringFixed(2))
	printAmounts(tw, "Expenses", report.Expenses)
	fmt.Fprintf(tw, "\tTotal expenses\t%s\t\n", report.ExpenseTotal.StringFixed(2))
	fmt.Fprintf(tw, "\tNet income\t%s\t\n", report.NetIncome.StringFixed(2))
	return tw.Flush()
}

func printBalanceSheet(ctx context.Context, svc portssvc.ReportingService, o *reportOptions, _ []string, w io.Writer) error {
	asOf, err := o.asOfDate()
	if err != nil {
		return err
	}
	report, err := svc.BalanceSheet(ctx, asOf)
	if err != nil {
		return err
	}
	if o.asJSON {
		return writeJSON(w, report)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	printAmounts(tw, "Assets", report.Assets)
	fmt.Fprintf(tw, "\tTotal assets\t%s\t\n", report.TotalAssets.StringFixed(2))
	printAmounts(tw, "Liabilities", report.Liabilities)
	fmt.Fprintf(tw, "\tTotal liabilities\t%s\t\n", report.TotalLiabilities.StringFixed(2))
	printAmounts(tw, "Equity", report.Equity)
	fmt.Fprintf(tw, "\tCurrent earnings\t%s\t\n", report.NetIncome.StringFixed(2))
	fmt.Fprintf(tw, "\tTotal liabilities and equity\t%s\t\n", report.TotalLiabilitiesAndEquity.StringFixed(2))
	if !report.Balanced {
		fmt.Fprintln(tw, "WARNING: balance sheet does not balance\t\t\t")
	}
	return tw.Flush()
}

func printLedger(ctx context.Context, svc portssvc.ReportingService, o *reportOptions, args []string, w io.Writer) error {
	filter, err := o.period()
	if err != nil {
		return err
	}
	ledger, err := svc.GeneralLedger(ctx, args[0], filter)
	if err != nil {
		return err
	}
	if o.asJSON {
		return writeJSON(w, ledger)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s %s\t\t\t\t\t\n", ledger.Account.Code, ledger.Account.Name)
	fmt.Fprintf(tw, "\tOpening balance\t\t\t%s\t\n", ledger.OpeningBalance.StringFixed(2))
	fmt.Fprintln(tw, "Date\tReference\tDebit\tCredit\tBalance\t")
	for _, row := range ledger.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", row.Date.Format(domain.DateLayout), row.Reference,
			row.Debit.StringFixed(2), row.Credit.StringFixed(2), row.RunningBalance.StringFixed(2))
	}
	fmt.Fprintf(tw, "\tClosing balance\t%s\t%s\t%s\t\n",
		ledger.TotalDebit.StringFixed(2), ledger.TotalCredit.StringFixed(2), ledger.ClosingBalance.StringFixed(2))
	return tw.Flush()
}

func printDashboard(ctx context.Context, svc portssvc.ReportingService, o *reportOptions, _ []string, w io.Writer) error {
	filter, err := o.period()
	if err != nil {
		return err
	}
	summary, err := svc.DashboardSummary(ctx, filter)
	if err != nil {
		return err
	}
	if o.asJSON {
		return writeJSON(w, summary)
	}

	fmt.Fprintln(w, "=== Dashboard ===")
	fmt.Fprintf(w, "Sales:          %d\n", summary.SalesCount)
	fmt.Fprintf(w, "Sales revenue:  %s\n", summary.SalesRevenue.StringFixed(2))
	fmt.Fprintf(w, "Net income:     %s\n", summary.NetIncome.StringFixed(2))
	fmt.Fprintf(w, "Cash position:  %s\n", summary.CashPosition.StringFixed(2))
	fmt.Fprintf(w, "Low stock:      %d\n", summary.LowStockProducts)
	fmt.Fprintf(w, "Out of stock:   %d\n", summary.OutOfStockProducts)
	return nil
}
