package cmd

import (
	"fmt"
	"strings"

	"github.com/warp-contracts/loader/src/upload"
	"github.com/warp-contracts/loader/src/utils/status"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(uploadCmd)
	addUploadFlags(uploadCmd)
}

var (
	uploadLogDir           string
	uploadTags             []string
	uploadRewardMultiplier float64
	uploadWithSol          bool
	uploadSolKeypairPath   string
	uploadNoBundle         bool
	uploadBuffer           int
	uploadBundleSize       int64
)

// addUploadFlags registers the flags shared by upload and upload-filter
func addUploadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&uploadLogDir, "log-dir", "", "directory where upload statuses are journaled")
	cmd.Flags().StringArrayVar(&uploadTags, "tags", nil, "extra tag in name:value form, repeat for more")
	cmd.Flags().Float64Var(&uploadRewardMultiplier, "reward-multiplier", 0, "factor applied to the network price quote")
	cmd.Flags().BoolVar(&uploadWithSol, "with-sol", false, "pay for the upload in SOL")
	cmd.Flags().StringVar(&uploadSolKeypairPath, "sol-keypair-path", "", "path to the Solana keypair file")
	cmd.Flags().BoolVar(&uploadNoBundle, "no-bundle", false, "upload every file in its own transaction")
	cmd.Flags().IntVar(&uploadBuffer, "buffer", 0, "number of concurrent uploads")
	cmd.Flags().Int64Var(&uploadBundleSize, "bundle-size", 0, "max combined file size of one bundle, in bytes")
}

func applyUploadFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("log-dir") {
		conf.Uploader.LogDir = uploadLogDir
	}
	if cmd.Flags().Changed("reward-multiplier") {
		conf.Uploader.RewardMultiplier = uploadRewardMultiplier
	}
	if cmd.Flags().Changed("sol-keypair-path") {
		conf.Solana.KeyPairPath = uploadSolKeypairPath
	}
	if cmd.Flags().Changed("buffer") {
		conf.Uploader.NumWorkers = uploadBuffer
	}
	if cmd.Flags().Changed("bundle-size") {
		conf.Bundle.MaxSizeBytes = uploadBundleSize
	}
}

type uploadFailure struct {
	Paths []string `json:"paths"`
	Error string   `json:"error"`
}

type uploadReport struct {
	Files    []*status.Status       `json:"files,omitempty"`
	Bundles  []*status.BundleStatus `json:"bundles,omitempty"`
	Failures []uploadFailure        `json:"failures,omitempty"`
}

var uploadCmd = &cobra.Command{
	Use:   "upload <glob>...",
	Short: "Upload the matched files to Arweave",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		paths, err := expandGlobs(args)
		if err != nil {
			return
		}
		return runUpload(cmd, paths)
	},
}

// runUpload drives the upload pipeline over the given paths and
// prints every finished unit as it arrives
func runUpload(cmd *cobra.Command, paths []string) (err error) {
	applyUploadFlags(cmd)

	tags, err := parseTags(uploadTags)
	if err != nil {
		return
	}

	controller, err := upload.NewController(conf, &upload.Options{
		Paths:   paths,
		Bundle:  !uploadNoBundle,
		Tags:    tags,
		WithSol: uploadWithSol,
	})
	if err != nil {
		return
	}

	err = controller.Start()
	if err != nil {
		return
	}

	// SIGINT stops feeding new work, uploads already running still finish
	go func() {
		select {
		case <-applicationCtx.Done():
			controller.Stop()
		case <-controller.CtxRunning.Done():
		}
	}()

	report := new(uploadReport)
	for item := range controller.Output {
		switch {
		case item.Failed():
			report.Failures = append(report.Failures, uploadFailure{Paths: item.Paths, Error: item.Err.Error()})
			streamLine("", fmt.Sprintf("failed %s: %s", strings.Join(item.Paths, " "), item.Err))
		case item.Bundle != nil:
			report.Bundles = append(report.Bundles, item.Bundle)
			streamLine(item.Bundle.Id.Base64(),
				fmt.Sprintf("bundle %s: %d files, %d bytes, %d winstons",
					item.Bundle.Id.Base64(), item.Bundle.NumberOfFiles, item.Bundle.DataSize, item.Bundle.Reward))
		case item.File != nil:
			report.Files = append(report.Files, item.File)
			streamLine(item.File.Id.Base64(),
				fmt.Sprintf("%s %s, %d winstons", item.File.FilePath, item.File.Id.Base64(), item.File.Reward))
		}
	}
	controller.StopWait()

	err = printResult(report,
		func() string { return "" },
		func() string {
			return fmt.Sprintf("Done: %d file(s), %d bundle(s), %d failure(s)\n",
				len(report.Files), len(report.Bundles), len(report.Failures))
		})
	if err != nil {
		return
	}

	if len(report.Failures) > 0 {
		err = fmt.Errorf("%w: %d", ErrUploadsFailed, len(report.Failures))
	}
	return
}
