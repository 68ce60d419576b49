package cmd

import (
	"fmt"

	"github.com/warp-contracts/loader/src/check"
	"github.com/warp-contracts/loader/src/utils/status"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(updateStatusCmd)
	updateStatusCmd.Flags().StringVar(&updateLogDir, "log-dir", "", "directory where upload statuses are journaled")
	updateStatusCmd.Flags().IntVar(&updateBuffer, "buffer", 0, "number of concurrent status queries")
}

var (
	updateLogDir string
	updateBuffer int
)

type checkFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type updateReport struct {
	Statuses []*status.Status `json:"statuses"`
	Summary  status.Summary   `json:"summary"`
	Failures []checkFailure   `json:"failures,omitempty"`
}

var updateStatusCmd = &cobra.Command{
	Use:   "update-status [glob]...",
	Short: "Poll the network and refresh journaled statuses",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("log-dir") {
			conf.Uploader.LogDir = updateLogDir
		}
		if cmd.Flags().Changed("buffer") {
			conf.Checker.WorkerPoolSize = updateBuffer
		}

		var paths []string
		if len(args) > 0 {
			paths, err = expandGlobs(args)
			if err != nil {
				return
			}
		}

		controller, err := check.NewController(conf, &check.Options{Paths: paths})
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		go func() {
			select {
			case <-applicationCtx.Done():
				controller.Stop()
			case <-controller.CtxRunning.Done():
			}
		}()

		report := new(updateReport)
		for item := range controller.Output {
			if item.Failed() {
				report.Failures = append(report.Failures, checkFailure{Path: item.Status.FilePath, Error: item.Err.Error()})
				streamLine("", fmt.Sprintf("failed %s: %s", item.Status.FilePath, item.Err))
				continue
			}
			report.Statuses = append(report.Statuses, item.Status)
			streamLine(fmt.Sprintf("%s %s", item.Status.FilePath, item.Status.Status),
				fmt.Sprintf("%s %s %s %d", item.Status.FilePath, item.Status.Id.Base64(), item.Status.Status, item.Status.Confirmations()))
		}
		controller.StopWait()

		report.Summary = status.Summarize(report.Statuses)

		err = printResult(report,
			func() string { return "" },
			func() string { return report.Summary.String() })
		if err != nil {
			return
		}

		if len(report.Failures) > 0 {
			err = fmt.Errorf("%w: %d", ErrChecksFailed, len(report.Failures))
		}
		return
	},
}
