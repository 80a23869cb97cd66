package main

import (
	"strconv"

	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	overviewOptions ledger.OverviewOptions

	overviewCmd = &cobra.Command{
		Use:   "overview",
		Short: "Show totals, category breakdown and top donors",
		RunE:  withEnvironment(overviewCmdF),
	}
)

func init() {
	overviewCmd.Flags().Uint64Var(&overviewOptions.RecentLimit, "recent", 10, "recent donations to list")
	overviewCmd.Flags().Uint64Var(&overviewOptions.TopDonorsLimit, "top", 5, "top donors to list")
	rootCmd.AddCommand(overviewCmd)
}

func overviewCmdF(cmd *cobra.Command, _ []string, env *environment) error {
	ctx := cmd.Context()
	overview, err := env.service.Overview(ctx, overviewOptions)
	if err != nil {
		return err
	}
	stats, err := env.service.ChainStats(ctx)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Ledger")
	if err := pterm.DefaultTable.WithData(pterm.TableData{
		{"blocks", strconv.FormatUint(stats.TotalBlocks, 10)},
		{"verified", strconv.FormatUint(stats.VerifiedBlocks, 10)},
		{"unverified", strconv.FormatUint(stats.UnverifiedBlocks, 10)},
		{"completed donations", strconv.FormatUint(overview.TotalDonations, 10)},
		{"raised", formatAmount(overview.TotalAmount, model.DefaultCurrency)},
		{"utilized", formatAmount(overview.TotalUsed, model.DefaultCurrency)},
	}).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("By category")
	categories := pterm.TableData{{"category", "donations", "amount"}}
	for _, c := range overview.ByCategory {
		categories = append(categories, []string{string(c.Category), strconv.FormatUint(c.Count, 10), formatAmount(c.Amount, model.DefaultCurrency)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(categories).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Top donors")
	donors := pterm.TableData{{"donor", "donations", "amount"}}
	for _, d := range overview.TopDonors {
		donors = append(donors, []string{d.DonorName, strconv.FormatUint(d.Count, 10), formatAmount(d.Amount, model.DefaultCurrency)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(donors).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Recent donations")
	recent := pterm.TableData{{"block", "donor", "recipient", "amount", "status"}}
	for _, b := range overview.Recent {
		recent = append(recent, []string{
			strconv.FormatUint(b.Number, 10),
			b.DonorName,
			b.RecipientName,
			formatAmount(b.Amount, b.Currency),
			string(b.Status),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(recent).Render()
}

func formatAmount(d decimal.Decimal, currency string) string {
	return d.StringFixed(2) + " " + currency
}
