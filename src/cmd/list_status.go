package cmd

import (
	"fmt"
	"strings"

	"github.com/warp-contracts/loader/src/utils/status"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(listStatusCmd)
	listStatusCmd.Flags().StringVar(&listLogDir, "log-dir", "", "directory where upload statuses are journaled")
	listStatusCmd.Flags().StringSliceVar(&listStatuses, "statuses", nil, "keep only these codes: Submitted, Pending, NotFound, Confirmed")
	listStatusCmd.Flags().Int64Var(&listMinConfirms, "min-confirms", 0, "keep only statuses with at most this many confirmations")
}

var (
	listLogDir      string
	listStatuses    []string
	listMinConfirms int64
)

var listStatusCmd = &cobra.Command{
	Use:   "list-status [glob]...",
	Short: "Print journaled statuses, filtered",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("log-dir") {
			conf.Uploader.LogDir = listLogDir
		}

		store, err := openStore()
		if err != nil {
			return
		}

		statuses, err := loadStatuses(store, args)
		if err != nil {
			return
		}

		codes, err := parseStatuses(listStatuses)
		if err != nil {
			return
		}

		var maxConfirms *int64
		if cmd.Flags().Changed("min-confirms") {
			maxConfirms = &listMinConfirms
		}

		filtered := status.Filter(statuses, codes, maxConfirms)

		return printResult(filtered,
			func() string {
				var sb strings.Builder
				for _, st := range filtered {
					sb.WriteString(st.FilePath)
					sb.WriteString("\n")
				}
				return strings.TrimSuffix(sb.String(), "\n")
			},
			func() string {
				var sb strings.Builder
				for _, st := range filtered {
					fmt.Fprintf(&sb, "%s %s %s %d\n", st.FilePath, st.Id.Base64(), st.Status, st.Confirmations())
				}
				fmt.Fprintf(&sb, "Total: %d\n", len(filtered))
				return sb.String()
			})
	},
}

// loadStatuses reads the journal, narrowed to the given globs when present
func loadStatuses(store *status.Store, args []string) (out []*status.Status, err error) {
	if len(args) == 0 {
		return store.LoadAll()
	}
	paths, err := expandGlobs(args)
	if err != nil {
		return
	}
	return store.LoadForPaths(paths)
}
