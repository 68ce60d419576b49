package cmd

import (
	"github.com/warp-contracts/loader/src/utils/status"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(uploadFilterCmd)
	addUploadFlags(uploadFilterCmd)
	uploadFilterCmd.Flags().StringSliceVar(&filterStatuses, "statuses", nil, "keep only these codes: Submitted, Pending, NotFound, Confirmed")
	uploadFilterCmd.Flags().Int64Var(&filterMinConfirms, "min-confirms", 0, "keep only statuses with at most this many confirmations")
}

var (
	filterStatuses    []string
	filterMinConfirms int64
)

var uploadFilterCmd = &cobra.Command{
	Use:   "upload-filter <glob>...",
	Short: "Re-upload journaled files matching the filter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		applyUploadFlags(cmd)

		store, err := openStore()
		if err != nil {
			return
		}

		paths, err := expandGlobs(args)
		if err != nil {
			return
		}

		statuses, err := store.LoadForPaths(paths)
		if err != nil {
			return
		}

		codes, err := parseStatuses(filterStatuses)
		if err != nil {
			return
		}

		var maxConfirms *int64
		if cmd.Flags().Changed("min-confirms") {
			maxConfirms = &filterMinConfirms
		}

		filtered := status.Filter(statuses, codes, maxConfirms)
		if len(filtered) == 0 {
			return printResult(filtered,
				func() string { return "" },
				func() string { return "Nothing to re-upload\n" })
		}

		retry := make([]string, 0, len(filtered))
		for _, st := range filtered {
			retry = append(retry, st.FilePath)
		}

		// Re-uploads go file by file so the journal entries they
		// refresh stay keyed by path
		uploadNoBundle = true

		return runUpload(cmd, retry)
	},
}
