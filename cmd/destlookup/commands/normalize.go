package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	lookupdest "github.com/go-i2p/i2cp-lookupdest"
)

func normalizeCmd() *cobra.Command {
	var (
		requestID int64
		sessionID uint16
	)
	cmd := &cobra.Command{
		Use:   "normalize <name>",
		Short: "Show how a hostname lookup would be resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid := lookupdest.SessionID(sessionID)
			req, err := lookupdest.NewLookupRequest(lookupdest.LookupParams{
				Name:      args[0],
				RequestID: requestID,
				SessionID: &sid,
				Timeout:   cfg.LookupTimeout(),
			}, cfg.BlindingDecoder())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind:    %s\n", req.Kind())
			if h := req.Hash(); h != nil {
				fmt.Fprintf(out, "hash:    %s\n", h.Hex())
				fmt.Fprintf(out, "address: %s\n", h.Base32Address())
			} else {
				fmt.Fprintf(out, "name:    %s\n", req.Name())
			}
			if bd := req.BlindData(); bd != nil {
				fmt.Fprintf(out, "date:    %s\n", bd.Date)
				fmt.Fprintf(out, "sigtype: %d -> %d\n", bd.SigType, bd.BlindedSigType)
				fmt.Fprintf(out, "secret:  %t\n", bd.SecretRequired)
				fmt.Fprintf(out, "auth:    %t\n", bd.PerClientAuth)
			}
			fmt.Fprintf(out, "timeout: %s\n", req.Timeout())
			return nil
		},
	}
	cmd.Flags().Int64Var(&requestID, "request-id", 0, "request id of the HostLookup")
	cmd.Flags().Uint16Var(&sessionID, "session-id", uint16(lookupdest.I2CP_SESSION_ID_NONE), "session id of the HostLookup")
	return cmd
}
