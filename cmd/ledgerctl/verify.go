package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var errChainBroken = errors.New("chain integrity check failed")

var verifyBlockCmd = &cobra.Command{
	Use:   "verify-block <transaction-hash>",
	Short: "Recompute one block's digest and check its link to the previous block",
	Args:  cobra.ExactArgs(1),
	RunE:  withEnvironment(verifyBlockCmdF),
}

var (
	rangeStart, rangeEnd uint64

	verifyRangeCmd = &cobra.Command{
		Use:   "verify-range",
		Short: "Check previous-hash linkage over a block range",
		RunE:  withEnvironment(verifyRangeCmdF),
	}
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Recompute every digest and check every link",
	RunE:  withEnvironment(auditCmdF),
}

func init() {
	verifyRangeCmd.Flags().Uint64Var(&rangeStart, "start", 1, "first block")
	verifyRangeCmd.Flags().Uint64Var(&rangeEnd, "end", 0, "last block, 0 for the tip")
	rootCmd.AddCommand(verifyBlockCmd, verifyRangeCmd, auditCmd)
}

func verifyBlockCmdF(cmd *cobra.Command, args []string, env *environment) error {
	res, err := env.service.VerifyBlock(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := pterm.DefaultTable.WithData(pterm.TableData{
		{"block", strconv.FormatUint(res.Block.Number, 10)},
		{"stored hash", res.Block.TransactionHash},
		{"computed hash", res.ComputedHash},
		{"previous hash", res.Block.PreviousHash},
		{"link", string(res.Link)},
		{"status", string(res.Status)},
		{"verified", strconv.FormatBool(res.Verified)},
	}).Render(); err != nil {
		return err
	}
	if !res.ChainIntegrity {
		pterm.Error.Printfln("block %d failed verification (hash valid: %t, link: %s)", res.Block.Number, res.HashValid, res.Link)
		return errChainBroken
	}
	pterm.Success.Printfln("block %d is intact", res.Block.Number)
	return nil
}

func verifyRangeCmdF(cmd *cobra.Command, _ []string, env *environment) error {
	res, err := env.service.VerifyRange(cmd.Context(), rangeStart, rangeEnd)
	if err != nil {
		return err
	}
	return reportRange(res)
}

func reportRange(res ledger.RangeVerification) error {
	if !res.Valid {
		pterm.Error.Printfln("chain broken at block %d (%s) after checking %d blocks", res.BrokenAt, res.Reason, res.BlocksChecked)
		return errChainBroken
	}
	pterm.Success.Printfln("chain integrity verified over %d blocks", res.BlocksChecked)
	return nil
}

func auditCmdF(cmd *cobra.Command, _ []string, env *environment) error {
	spinner, _ := pterm.DefaultSpinner.Start("Auditing the chain ...")
	report, err := env.service.Audit(cmd.Context())
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		return err
	}
	if spinner != nil {
		_ = spinner.Stop()
	}

	if report.Valid() {
		pterm.Success.Printfln("audited %d blocks, no findings", report.BlocksChecked)
		return nil
	}
	data := pterm.TableData{{"block", "stored hash", "computed hash", "hash valid", "link"}}
	for _, f := range report.Findings {
		data = append(data, []string{
			strconv.FormatUint(f.Number, 10),
			f.TransactionHash,
			f.ComputedHash,
			strconv.FormatBool(f.HashValid),
			string(f.Link),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Error.Printfln("audited %d blocks, %d findings", report.BlocksChecked, len(report.Findings))
	return fmt.Errorf("%w: %d findings", errChainBroken, len(report.Findings))
}
