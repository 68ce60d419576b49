package cmd

import (
	"fmt"
	"strings"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/price"
	"github.com/warp-contracts/loader/src/utils/wallet"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(walletBalanceCmd)
}

type walletBalanceResult struct {
	Address       string  `json:"address"`
	Winstons      uint64  `json:"winstons"`
	Ar            float64 `json:"ar"`
	Usd           float64 `json:"usd,omitempty"`
	WinstonsPerMb uint64  `json:"winstons_per_mb"`
	UploadableMb  uint64  `json:"uploadable_mb"`
}

var walletBalanceCmd = &cobra.Command{
	Use:   "wallet-balance [address]",
	Short: "Balance of an address, the configured wallet when omitted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var address string
		if len(args) > 0 {
			address = args[0]
		} else {
			var signer *wallet.Wallet
			signer, err = wallet.FromPath(conf.Uploader.KeyPairPath)
			if err != nil {
				return
			}
			address = signer.Address()
		}

		client := arweave.NewClient(conf)
		balance, err := client.GetWalletBalance(applicationCtx, address)
		if err != nil {
			return
		}

		pricePerMb, err := client.GetPrice(applicationCtx, 1024*1024)
		if err != nil {
			return
		}

		result := &walletBalanceResult{
			Address:       address,
			Winstons:      balance.Uint64(),
			WinstonsPerMb: pricePerMb.Uint64(),
		}
		result.Ar = float64(result.Winstons) / price.WINSTONS_PER_AR
		if result.WinstonsPerMb > 0 {
			result.UploadableMb = result.Winstons / result.WinstonsPerMb
		}

		oracle := price.NewOracle(conf)
		usdPerAr, oracleErr := oracle.GetUsdPrice(applicationCtx, price.TokenArweave)
		if oracleErr == nil {
			result.Usd = price.UsdForWinstons(result.Winstons, usdPerAr)
		}

		return printResult(result,
			func() string {
				return balance.String()
			},
			func() string {
				var sb strings.Builder
				fmt.Fprintf(&sb, "Address: %s\n", result.Address)
				fmt.Fprintf(&sb, "Balance: %d winstons (%.12f AR)\n", result.Winstons, result.Ar)
				if result.Usd > 0 {
					fmt.Fprintf(&sb, "Balance: $%.4f\n", result.Usd)
				}
				fmt.Fprintf(&sb, "Price: %d winstons per MB, enough for %d MB\n",
					result.WinstonsPerMb, result.UploadableMb)
				return sb.String()
			})
	},
}
