package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	lookupdest "github.com/go-i2p/i2cp-lookupdest"
)

func b33Cmd() *cobra.Command {
	var (
		destB64 string
		secret  bool
		auth    bool
	)
	cmd := &cobra.Command{
		Use:   "b33",
		Short: "Print the blinded address of a destination",
		Long: "Print the blinded (encrypted LeaseSet) address of a base64 destination.\n" +
			"A fresh destination is generated when --dest is not given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				dest *lookupdest.Destination
				err  error
			)
			if destB64 != "" {
				dest, err = lookupdest.NewDestinationFromBase64(destB64)
			} else {
				dest, err = lookupdest.NewDestination()
			}
			if err != nil {
				return err
			}

			var flags uint8
			if secret {
				flags |= lookupdest.BLINDED_FLAG_SECRET
			}
			if auth {
				flags |= lookupdest.BLINDED_FLAG_PER_CLIENT_AUTH
			}
			addr, err := lookupdest.EncodeBlindedAddress(dest.SigningPublicKey(), lookupdest.SIG_TYPE_ED25519, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if destB64 == "" {
				fmt.Fprintf(out, "destination: %s\n", dest.Base64())
			}
			fmt.Fprintf(out, "b32: %s\n", dest.Base32())
			fmt.Fprintf(out, "b33: %s\n", addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&destB64, "dest", "", "base64 destination")
	cmd.Flags().BoolVar(&secret, "secret", false, "address requires a lookup secret")
	cmd.Flags().BoolVar(&auth, "auth", false, "address requires per-client authentication")
	return cmd
}
