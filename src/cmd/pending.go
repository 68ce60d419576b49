package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/warp-contracts/loader/src/utils/arweave"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(pendingCmd)
}

const (
	pendingSamples  = 60
	pendingInterval = time.Second
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Mempool size sampled every second for a minute",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		client := arweave.NewClient(conf)

		ticker := time.NewTicker(pendingInterval)
		defer ticker.Stop()

		counts := make([]int, 0, pendingSamples)
	loop:
		for i := 0; i < pendingSamples; i++ {
			var ids []string
			ids, err = client.GetPendingTransactions(applicationCtx)
			if err != nil {
				return
			}

			counts = append(counts, len(ids))
			streamLine(strconv.Itoa(len(ids)), fmt.Sprintf("%d pending transactions", len(ids)))

			if i == pendingSamples-1 {
				break
			}
			select {
			case <-applicationCtx.Done():
				break loop
			case <-ticker.C:
			}
		}

		return printResult(counts,
			func() string { return "" },
			func() string { return "" })
	},
}
