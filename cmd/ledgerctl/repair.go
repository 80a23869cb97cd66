package main

import (
	"errors"

	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	reanchor bool

	repairCmd = &cobra.Command{
		Use:   "repair",
		Short: "Relink and reseal every block that drifted",
		RunE:  withEnvironment(repairCmdF),
	}
)

func init() {
	repairCmd.Flags().BoolVar(&reanchor, "reanchor", false, "link the lowest surviving block to genesis when block 1 is gone")
	rootCmd.AddCommand(repairCmd)
}

func repairCmdF(cmd *cobra.Command, _ []string, env *environment) error {
	res, err := env.service.Repair(cmd.Context(), ledger.RepairOptions{Reanchor: reanchor})
	if errors.Is(err, ledger.ErrGenesisMissing) {
		pterm.Warning.Println("block 1 is missing; rerun with --reanchor to link the remaining chain to genesis")
	}
	if err != nil {
		if res.StoppedAt != 0 {
			pterm.Error.Printfln("repair stopped at block %d after updating %d blocks", res.StoppedAt, res.BlocksUpdated)
		}
		return err
	}
	if res.BlocksUpdated == 0 {
		pterm.Info.Printfln("no blocks to fix (%d checked)", res.TotalBlocks)
		return nil
	}
	pterm.Success.Printfln("chain repaired, updated %d of %d blocks", res.BlocksUpdated, res.TotalBlocks)
	return nil
}
