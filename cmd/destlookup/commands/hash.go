package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	lookupdest "github.com/go-i2p/i2cp-lookupdest"
)

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <b32-address>",
		Short: "Print the hex hash of a b32 address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := lookupdest.ParseBase32Address(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h.Hex())
			return nil
		},
	}
}
