package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/status"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(rawStatusCmd)
}

type rawStatusResult struct {
	Id     string            `json:"id"`
	Status status.Code       `json:"status"`
	Raw    *arweave.TxStatus `json:"raw,omitempty"`
}

var rawStatusCmd = &cobra.Command{
	Use:   "raw-status <id>",
	Short: "Confirmation status of a transaction straight from the network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		client := arweave.NewClient(conf)

		result := &rawStatusResult{Id: args[0]}
		raw, err := client.GetTransactionStatus(applicationCtx, args[0])
		switch {
		case err == nil:
			result.Status = status.Confirmed
			result.Raw = raw
		case errors.Is(err, arweave.ErrPending):
			result.Status = status.Pending
		case errors.Is(err, arweave.ErrNotFound):
			result.Status = status.NotFound
		default:
			return
		}
		err = nil

		return printResult(result,
			func() string {
				return string(result.Status)
			},
			func() string {
				var sb strings.Builder
				fmt.Fprintf(&sb, "Status: %s\n", result.Status)
				if result.Raw != nil {
					fmt.Fprintf(&sb, "Block: %d (%s)\n", result.Raw.BlockHeight, result.Raw.BlockIndepHash.Base64())
					fmt.Fprintf(&sb, "Confirmations: %d\n", result.Raw.NumberOfConfirmations)
				}
				return sb.String()
			})
	},
}
