package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/price"
	"github.com/warp-contracts/loader/src/utils/solana"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().Float64Var(&estimateRewardMultiplier, "reward-multiplier", 0, "factor applied to the network price quote")
	estimateCmd.Flags().BoolVar(&estimateWithSol, "with-sol", false, "price the SOL payment too")
	estimateCmd.Flags().BoolVar(&estimateNoBundle, "no-bundle", false, "price one transaction per file")
}

var (
	estimateRewardMultiplier float64
	estimateWithSol          bool
	estimateNoBundle         bool
)

type estimateResult struct {
	Files    int     `json:"files"`
	Bytes    uint64  `json:"bytes"`
	Winstons uint64  `json:"winstons"`
	Ar       float64 `json:"ar"`
	Usd      float64 `json:"usd,omitempty"`
	Lamports uint64  `json:"lamports,omitempty"`
	UsdSol   float64 `json:"usd_sol,omitempty"`
}

var estimateCmd = &cobra.Command{
	Use:   "estimate <glob>...",
	Short: "Price of uploading the matched files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("reward-multiplier") {
			conf.Uploader.RewardMultiplier = estimateRewardMultiplier
		}

		paths, err := expandGlobs(args)
		if err != nil {
			return
		}

		var sizes []uint64
		var total uint64
		for _, path := range paths {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return statErr
			}
			if info.IsDir() {
				continue
			}
			sizes = append(sizes, uint64(info.Size()))
			total += uint64(info.Size())
		}
		if len(sizes) == 0 {
			return ErrNoFilesMatched
		}

		client := arweave.NewClient(conf)
		terms, err := price.GetTerms(applicationCtx, client, conf.Uploader.RewardMultiplier)
		if err != nil {
			return
		}

		result := &estimateResult{Files: len(sizes), Bytes: total}
		if estimateNoBundle {
			result.Winstons = terms.PricePerFile(sizes)
		} else {
			result.Winstons = terms.PriceBundled(sizes)
		}
		result.Ar = float64(result.Winstons) / price.WINSTONS_PER_AR

		// A missing quote is not fatal, prices still print in winstons
		oracle := price.NewOracle(conf)
		usdPerAr, oracleErr := oracle.GetUsdPrice(applicationCtx, price.TokenArweave)
		if oracleErr == nil {
			result.Usd = price.UsdForWinstons(result.Winstons, usdPerAr)
		}

		if estimateWithSol {
			result.Lamports = solana.LamportsForWinstons(result.Winstons)
			usdPerSol, solErr := oracle.GetUsdPrice(applicationCtx, price.TokenSolana)
			if solErr == nil {
				result.UsdSol = float64(result.Lamports) / solana.LAMPORTS_PER_SOL * usdPerSol
			}
		}

		return printResult(result,
			func() string {
				return strconv.FormatUint(result.Winstons, 10)
			},
			func() string {
				var sb strings.Builder
				fmt.Fprintf(&sb, "Files: %d, %d bytes\n", result.Files, result.Bytes)
				fmt.Fprintf(&sb, "Price: %d winstons (%.12f AR)\n", result.Winstons, result.Ar)
				if result.Usd > 0 {
					fmt.Fprintf(&sb, "Price: $%.4f\n", result.Usd)
				}
				if result.Lamports > 0 {
					fmt.Fprintf(&sb, "Price: %d lamports", result.Lamports)
					if result.UsdSol > 0 {
						fmt.Fprintf(&sb, " ($%.4f)", result.UsdSol)
					}
					sb.WriteString("\n")
				}
				return sb.String()
			})
	},
}
