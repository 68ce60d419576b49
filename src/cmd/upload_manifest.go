package cmd

import (
	"fmt"
	"strings"

	"github.com/warp-contracts/loader/src/upload"
	"github.com/warp-contracts/loader/src/utils/manifest"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(uploadManifestCmd)
	uploadManifestCmd.Flags().StringVar(&manifestLogDir, "log-dir", "", "directory where upload statuses are journaled")
	uploadManifestCmd.Flags().Float64Var(&manifestRewardMultiplier, "reward-multiplier", 0, "factor applied to the network price quote")
	uploadManifestCmd.Flags().StringVar(&manifestBaseDir, "base-dir", "", "prefix stripped from journaled paths, must end with a slash")
}

var (
	manifestLogDir           string
	manifestRewardMultiplier float64
	manifestBaseDir          string
)

type manifestResult struct {
	*upload.ManifestUpload
	Record *manifest.Record `json:"record"`
}

var uploadManifestCmd = &cobra.Command{
	Use:   "upload-manifest",
	Short: "Build and upload a path manifest for journaled bundles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("log-dir") {
			conf.Uploader.LogDir = manifestLogDir
		}
		if cmd.Flags().Changed("reward-multiplier") {
			conf.Uploader.RewardMultiplier = manifestRewardMultiplier
		}

		store, err := openStore()
		if err != nil {
			return
		}

		bundles, err := store.ListBundleStatuses()
		if err != nil {
			return
		}

		man, err := manifest.FromBundleStatuses(bundles, manifestBaseDir)
		if err != nil {
			return
		}

		res, err := upload.PublishManifest(applicationCtx, conf, man)
		if err != nil {
			return
		}

		record := manifest.NewRecord(conf.Arweave.NodeUrl, res.ManifestId, man)
		err = manifest.SaveRecord(store, res.ManifestId, record)
		if err != nil {
			return
		}

		result := &manifestResult{res, record}

		return printResult(result,
			func() string {
				return res.ManifestId.Base64()
			},
			func() string {
				var sb strings.Builder
				fmt.Fprintf(&sb, "Manifest: %s\n", res.ManifestId.Base64())
				fmt.Fprintf(&sb, "Bundle transaction: %s\n", res.BundleTxId.Base64())
				fmt.Fprintf(&sb, "Reward: %d winstons\n", res.Reward)
				for _, url := range record.RelativePaths {
					sb.WriteString(url)
					sb.WriteString("\n")
				}
				return sb.String()
			})
	},
}
