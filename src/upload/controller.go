package upload

import (
	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/bundlr"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	monitor_uploader "github.com/warp-contracts/loader/src/utils/monitoring/uploader"
	"github.com/warp-contracts/loader/src/utils/price"
	"github.com/warp-contracts/loader/src/utils/solana"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
	"github.com/warp-contracts/loader/src/utils/wallet"
)

// Options select the pipeline shape for one run
type Options struct {
	// Files to upload, iteration order kept
	Paths []string

	// Pack files into bundles instead of one transaction per file
	Bundle bool

	// Extra tags stamped on every transaction or data item
	Tags []bundlr.Tag

	// Pay in SOL through the co-signing service
	WithSol bool
}

type Controller struct {
	*task.Task

	// Finished uploads, closed when the last one is through
	Output chan *Upload
}

// +-----------+        +----------------------+        +----------+
// |           | groups |  Uploader / Bundler  | status | fan out  +--> Output
// | Collector +------->|                      +------->|          |
// |           |        |  (worker pool)       |        |          +--+
// +-----------+        +----------------------+        +----------+  |
//                                                                    |
//                                         +--------+                 |
//                                         | Storer |<----------------+
//                                         +--------+  when log dir is set
//
// Orchestrates one upload run from path collection to journaling
func NewController(config *config.Config, options *Options) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "upload-controller")
	self.Output = make(chan *Upload, 100)

	// Arweave client and the signing wallet
	client := arweave.NewClient(config)
	signer, err := wallet.FromPath(config.Uploader.KeyPairPath)
	if err != nil {
		return
	}

	// Fee schedule, quoted once per run
	terms, err := price.GetTerms(self.Ctx, client, config.Uploader.RewardMultiplier)
	if err != nil {
		return
	}

	// Monitoring
	monitor := monitor_uploader.NewMonitor()
	server := monitoring.NewServer(config).
		WithMonitor(monitor)

	poster := &poster{
		client:  client,
		signer:  signer,
		terms:   terms,
		monitor: monitor,
	}
	if options.WithSol {
		poster.coSigner = solana.NewCoSigner(config)
		poster.payer, err = solana.KeypairFromPath(config.Solana.KeyPairPath)
		if err != nil {
			return
		}
	}

	// Stats the files and groups them
	collector := NewCollector(config).
		WithPaths(options.Paths).
		WithMonitor(monitor)
	if options.Bundle {
		collector.WithGroupLimit(config.Bundle.MaxSizeBytes, config.Bundle.MaxItems)
	}

	// Upload stage, one of the two shapes
	var (
		uploaded chan *Upload
		stage    *task.Task
	)
	if options.Bundle {
		bundler := NewBundler(config).
			WithPoster(poster).
			WithSigner(bundlr.NewSigner(signer)).
			WithTags(options.Tags).
			WithInputChannel(collector.Output).
			WithMonitor(monitor)
		uploaded = bundler.Output
		stage = bundler.Task
	} else {
		uploader := NewUploader(config).
			WithPoster(poster).
			WithTags(options.Tags).
			WithInputChannel(collector.Output).
			WithMonitor(monitor)
		uploaded = uploader.Output
		stage = uploader.Task
	}

	// Journaling is on only when a log dir is set
	journal := config.Uploader.LogDir != ""
	var storer *Storer
	var storerInput chan *Upload
	if journal {
		var store *status.Store
		store, err = status.NewStore(config.Uploader.LogDir)
		if err != nil {
			return
		}
		storerInput = make(chan *Upload, 100)
		storer = NewStorer(config).
			WithStore(store).
			WithInputChannel(storerInput).
			WithMonitor(monitor)
	}

	// Every finished upload goes to the consumer, and to the journal
	// when it's enabled
	fanOut := func() error {
		for upload := range uploaded {
			if storerInput != nil {
				storerInput <- upload
			}
			self.Output <- upload
		}
		if storerInput != nil {
			close(storerInput)
		}
		close(self.Output)
		return nil
	}

	// Setup everything, will start upon calling Controller.Start()
	self.Task.
		WithSubtaskFunc(fanOut).
		WithSubtask(stage).
		WithSubtask(monitor.Task).
		WithConditionalSubtask(config.RESTListenAddress != "", server.Task).
		WithSubtask(collector.Task)
	if journal {
		self.Task.WithSubtask(storer.Task)
	}
	return
}
