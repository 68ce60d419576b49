package upload

import (
	"context"
	"crypto/rand"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/bundlr"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/manifest"
	monitor_uploader "github.com/warp-contracts/loader/src/utils/monitoring/uploader"
	"github.com/warp-contracts/loader/src/utils/price"
	"github.com/warp-contracts/loader/src/utils/wallet"
)

type ManifestUpload struct {
	// Id gateways resolve to the manifest content
	ManifestId arweave.Base64String `json:"manifest_id"`

	// Transaction carrying the bundle the manifest rides in
	BundleTxId arweave.Base64String `json:"bundle_tx_id"`

	Reward uint64 `json:"reward"`
}

// PublishManifest wraps the manifest in a signed data item and submits
// it in a bundle of its own
func PublishManifest(ctx context.Context, config *config.Config, man *manifest.Manifest) (out *ManifestUpload, err error) {
	data, err := man.Serialize()
	if err != nil {
		return
	}

	client := arweave.NewClient(config)
	signer, err := wallet.FromPath(config.Uploader.KeyPairPath)
	if err != nil {
		return
	}

	terms, err := price.GetTerms(ctx, client, config.Uploader.RewardMultiplier)
	if err != nil {
		return
	}

	anchor := make([]byte, 32)
	_, err = rand.Read(anchor)
	if err != nil {
		return
	}

	item := bundlr.BundleItem{
		Data:   data,
		Anchor: anchor,
		Tags: bundlr.Tags{
			{Name: "Content-Type", Value: manifest.ContentType},
		},
	}
	err = item.Sign(bundlr.NewSigner(signer))
	if err != nil {
		return
	}

	bundle := bundlr.Bundle{Items: []bundlr.BundleItem{item}}
	bundleData, err := bundle.Marshal()
	if err != nil {
		return
	}

	tx := arweave.NewTransaction(bundleData, nil, nil, nil).
		AddTag("Bundle-Format", "binary").
		AddTag("Bundle-Version", "2.0.0")

	poster := &poster{
		client:  client,
		signer:  signer,
		terms:   terms,
		monitor: monitor_uploader.NewMonitor(),
	}
	reward, err := poster.send(ctx, tx, bundleData)
	if err != nil {
		return
	}

	out = &ManifestUpload{
		ManifestId: item.Id,
		BundleTxId: tx.ID,
		Reward:     reward,
	}
	return
}
