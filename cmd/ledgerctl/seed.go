package main

import (
	"strconv"

	"github.com/goodnatureofminers/donationledger-backend/internal/seed"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	seedOptions seed.Options

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Fill the ledger with generated demo donations",
		RunE:  withEnvironment(seedCmdF),
	}
)

func init() {
	flags := seedCmd.Flags()
	flags.IntVar(&seedOptions.Donors, "donors", 50, "donors to generate")
	flags.IntVar(&seedOptions.Recipients, "recipients", 10, "recipients to generate")
	flags.IntVar(&seedOptions.Campaigns, "campaigns", 8, "campaigns to generate")
	flags.IntVar(&seedOptions.Donations, "donations", 200, "donations to append")
	flags.Float64Var(&seedOptions.SettledShare, "settled-share", 0.8, "share of donations moved out of pending")
	flags.IntVar(&seedOptions.BatchSize, "batch-size", 100, "directory import batch size")
	flags.IntVar(&seedOptions.Workers, "workers", 4, "concurrent settlements")
	flags.Int64Var(&seedOptions.Seed, "seed", 1, "random seed")
	rootCmd.AddCommand(seedCmd)
}

func seedCmdF(cmd *cobra.Command, _ []string, env *environment) error {
	seeder, err := seed.NewSeeder(env.store, env.service, env.logger.Named("seed"))
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Seeding the ledger ...")
	report, err := seeder.Run(cmd.Context(), seedOptions)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Ledger seeded")
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"donors", "recipients", "campaigns", "donations", "completed", "confirmed", "failed"},
		{
			strconv.Itoa(report.Donors),
			strconv.Itoa(report.Recipients),
			strconv.Itoa(report.Campaigns),
			strconv.Itoa(report.Donations),
			strconv.Itoa(report.Completed),
			strconv.Itoa(report.Confirmed),
			strconv.Itoa(report.Failed),
		},
	}).Render(); err != nil {
		return err
	}
	if report.CampaignCreditFailures > 0 {
		pterm.Warning.Printfln("%d campaign credits failed; campaign totals lag behind the ledger", report.CampaignCreditFailures)
	}
	return nil
}
