package cmd

import (
	"strconv"

	"github.com/warp-contracts/loader/src/utils/status"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(statusReportCmd)
	statusReportCmd.Flags().StringVar(&reportLogDir, "log-dir", "", "directory where upload statuses are journaled")
}

var reportLogDir string

var statusReportCmd = &cobra.Command{
	Use:   "status-report [glob]...",
	Short: "Counts of journaled statuses per code",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("log-dir") {
			conf.Uploader.LogDir = reportLogDir
		}

		store, err := openStore()
		if err != nil {
			return
		}

		statuses, err := loadStatuses(store, args)
		if err != nil {
			return
		}

		summary := status.Summarize(statuses)

		return printResult(summary,
			func() string {
				return strconv.Itoa(summary.Total)
			},
			func() string {
				return summary.String()
			})
	},
}
