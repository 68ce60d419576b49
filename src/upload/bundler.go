package upload

import (
	"crypto/rand"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/build_info"
	"github.com/warp-contracts/loader/src/utils/bundlr"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
)

// Packs each group of files into one bundle transaction, one data item
// per file. Workers bound how many bundles are in flight at once.
type Bundler struct {
	*task.Task

	poster  *poster
	signer  *bundlr.Signer
	tags    []bundlr.Tag
	input   chan *Upload
	monitor monitoring.Monitor

	// Finished uploads with bundle statuses or errors filled in
	Output chan *Upload
}

func NewBundler(config *config.Config) (self *Bundler) {
	self = new(Bundler)

	self.Output = make(chan *Upload)

	self.Task = task.NewTask(config, "bundler").
		WithWorkerPool(config.Uploader.NumWorkers).
		WithSubtaskFunc(self.run).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Bundler) WithPoster(poster *poster) *Bundler {
	self.poster = poster
	return self
}

func (self *Bundler) WithSigner(signer *bundlr.Signer) *Bundler {
	self.signer = signer
	return self
}

func (self *Bundler) WithTags(tags []bundlr.Tag) *Bundler {
	self.tags = tags
	return self
}

func (self *Bundler) WithInputChannel(input chan *Upload) *Bundler {
	self.input = input
	return self
}

func (self *Bundler) WithMonitor(monitor monitoring.Monitor) *Bundler {
	self.monitor = monitor
	return self
}

func (self *Bundler) run() (err error) {
	for upload := range self.input {
		upload := upload

		self.SubmitToWorker(func() {
			if self.IsStopping.Load() {
				return
			}

			if !upload.Failed() {
				upload.Bundle, upload.Err = self.uploadBundle(upload)
			}

			self.Output <- upload
		})
	}

	return nil
}

// itemFor wraps one file in a signed data item. A random anchor keeps
// ids unique when the same bytes are uploaded twice.
func (self *Bundler) itemFor(path string, data []byte) (out bundlr.BundleItem, err error) {
	anchor := make([]byte, 32)
	_, err = rand.Read(anchor)
	if err != nil {
		return
	}

	tags := bundlr.Tags(self.tags)
	if self.Config.Bundle.SniffContentType {
		tags = tags.Append([]bundlr.Tag{{Name: "Content-Type", Value: mimetype.Detect(data).String()}})
	}
	tags = tags.Append([]bundlr.Tag{{Name: "User-Agent", Value: "loader/" + build_info.Version}})

	out = bundlr.BundleItem{
		Data:   data,
		Anchor: anchor,
		Tags:   tags,
	}

	err = out.Sign(self.signer)
	return
}

func (self *Bundler) uploadBundle(upload *Upload) (out *status.BundleStatus, err error) {
	bundle := bundlr.Bundle{
		Items: make([]bundlr.BundleItem, 0, len(upload.Paths)),
	}
	filePaths := make(map[string]status.PathId, len(upload.Paths))

	var dataSize uint64
	for _, path := range upload.Paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			self.monitor.GetReport().Uploader.Errors.FileReadError.Inc()
			self.Log.WithError(readErr).WithField("path", path).Error("Failed to read file")
			err = readErr
			return
		}

		item, itemErr := self.itemFor(path, data)
		if itemErr != nil {
			self.monitor.GetReport().Uploader.Errors.BundlingError.Inc()
			self.Log.WithError(itemErr).WithField("path", path).Error("Failed to build data item")
			err = itemErr
			return
		}

		bundle.Items = append(bundle.Items, item)
		filePaths[path] = status.PathId{Id: item.Id}
		dataSize += uint64(len(data))
	}

	bundleData, err := bundle.Marshal()
	if err != nil {
		self.monitor.GetReport().Uploader.Errors.BundlingError.Inc()
		self.Log.WithError(err).Error("Failed to marshal bundle")
		return
	}

	tx := arweave.NewTransaction(bundleData, nil, nil, nil).
		AddTag("Bundle-Format", "binary").
		AddTag("Bundle-Version", "2.0.0")

	reward, err := self.poster.send(self.Ctx, tx, bundleData)
	if err != nil {
		self.Log.WithError(err).Error("Failed to upload bundle")
		return
	}

	self.monitor.GetReport().Uploader.State.BundlesSubmitted.Inc()
	self.monitor.GetReport().Uploader.State.ItemsBundled.Add(uint64(len(bundle.Items)))

	now := time.Now().UTC()
	out = &status.BundleStatus{
		Status: status.Status{
			Id:           tx.ID,
			Status:       status.Submitted,
			CreatedAt:    now,
			LastModified: now,
			Reward:       reward,
		},
		NumberOfFiles: uint64(len(upload.Paths)),
		DataSize:      dataSize,
		FilePaths:     filePaths,
	}
	return
}
