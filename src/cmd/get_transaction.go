package cmd

import (
	"encoding/json"

	"github.com/warp-contracts/loader/src/utils/arweave"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(getTransactionCmd)
}

var getTransactionCmd = &cobra.Command{
	Use:   "get-transaction <id>",
	Short: "Fetch a transaction from the gateway",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		client := arweave.NewClient(conf)
		tx, err := client.GetTransactionById(applicationCtx, args[0])
		if err != nil {
			return
		}

		return printResult(tx,
			func() string {
				return tx.ID.Base64()
			},
			func() string {
				data, jsonErr := json.MarshalIndent(tx, "", "  ")
				if jsonErr != nil {
					return tx.ID.Base64() + "\n"
				}
				return string(data) + "\n"
			})
	},
}
