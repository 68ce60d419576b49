package upload

import (
	"os"
	"time"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/bundlr"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
)

// Uploads every file in its own transaction. Workers bound how many
// files are in flight at once.
type Uploader struct {
	*task.Task

	poster  *poster
	tags    []bundlr.Tag
	input   chan *Upload
	monitor monitoring.Monitor

	// Finished uploads, with statuses or errors filled in
	Output chan *Upload
}

func NewUploader(config *config.Config) (self *Uploader) {
	self = new(Uploader)

	self.Output = make(chan *Upload)

	self.Task = task.NewTask(config, "uploader").
		// Workers bound the number of files uploaded in parallel
		WithWorkerPool(config.Uploader.NumWorkers).
		WithSubtaskFunc(self.run).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Uploader) WithPoster(poster *poster) *Uploader {
	self.poster = poster
	return self
}

func (self *Uploader) WithTags(tags []bundlr.Tag) *Uploader {
	self.tags = tags
	return self
}

func (self *Uploader) WithInputChannel(input chan *Upload) *Uploader {
	self.input = input
	return self
}

func (self *Uploader) WithMonitor(monitor monitoring.Monitor) *Uploader {
	self.monitor = monitor
	return self
}

func (self *Uploader) run() (err error) {
	// Waits for collected paths
	// Finishes when the collector closes its output
	for upload := range self.input {
		upload := upload

		self.SubmitToWorker(func() {
			if self.IsStopping.Load() {
				// Don't start new uploads if we're stopping
				return
			}

			if !upload.Failed() {
				upload.File, upload.Err = self.uploadFile(upload.Paths[0])
			}

			self.Output <- upload
		})
	}

	return nil
}

func (self *Uploader) uploadFile(path string) (out *status.Status, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		self.monitor.GetReport().Uploader.Errors.FileReadError.Inc()
		self.Log.WithError(err).WithField("path", path).Error("Failed to read file")
		return
	}

	tags := make([]arweave.Tag, 0, len(self.tags))
	for _, tag := range self.tags {
		tags = append(tags, arweave.NewTag(tag.Name, tag.Value))
	}

	tx := arweave.NewTransaction(data, tags, nil, nil)

	reward, err := self.poster.send(self.Ctx, tx, data)
	if err != nil {
		self.Log.WithError(err).WithField("path", path).Error("Failed to upload file")
		return
	}

	self.monitor.GetReport().Uploader.State.TransactionsSubmitted.Inc()

	now := time.Now().UTC()
	out = &status.Status{
		Id:           tx.ID,
		Status:       status.Submitted,
		FilePath:     path,
		CreatedAt:    now,
		LastModified: now,
		Reward:       reward,
	}
	return
}
