package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	confirmTamper bool

	tamperCmd = &cobra.Command{
		Use:   "tamper",
		Short: "Damage the chain on purpose to exercise verification and repair",
	}

	deleteBlockCmd = &cobra.Command{
		Use:   "delete-block <number>",
		Short: "Remove one block from the store",
		Args:  cobra.ExactArgs(1),
		RunE:  withEnvironment(deleteBlockCmdF),
	}
)

func init() {
	deleteBlockCmd.Flags().BoolVar(&confirmTamper, "confirm-tamper", false, "acknowledge that the chain will be broken")
	tamperCmd.AddCommand(deleteBlockCmd)
	rootCmd.AddCommand(tamperCmd)
}

func deleteBlockCmdF(cmd *cobra.Command, args []string, env *environment) error {
	if !confirmTamper {
		return errors.New("refusing to delete a block without --confirm-tamper")
	}
	number, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || number == 0 {
		return fmt.Errorf("invalid block number %q", args[0])
	}
	if _, err := env.service.Block(cmd.Context(), number); err != nil {
		return err
	}
	if err := env.store.DeleteBlock(cmd.Context(), number); err != nil {
		return fmt.Errorf("delete block %d: %w", number, err)
	}
	pterm.Warning.Printfln("block %d deleted; block %d no longer links to the chain", number, number+1)
	return nil
}
