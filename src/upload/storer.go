package upload

import (
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
)

// Journals finished uploads to the status directory.
// SinkTask handles caching data and periodically calling flush
type Storer struct {
	*task.SinkTask[*Upload]

	store   *status.Store
	monitor monitoring.Monitor
}

func NewStorer(config *config.Config) (self *Storer) {
	self = new(Storer)

	self.SinkTask = task.NewSinkTask[*Upload](config, "storer").
		WithBatchSize(config.Uploader.StatusBatchSize).
		WithOnFlush(config.Uploader.StatusFlushInterval, self.flush)

	return
}

func (self *Storer) WithStore(store *status.Store) *Storer {
	self.store = store
	return self
}

func (self *Storer) WithInputChannel(input chan *Upload) *Storer {
	self.SinkTask.WithInputChannel(input)
	return self
}

func (self *Storer) WithMonitor(monitor monitoring.Monitor) *Storer {
	self.monitor = monitor
	return self
}

func (self *Storer) flush(uploads []*Upload) (err error) {
	for _, upload := range uploads {
		if upload.Failed() {
			// Nothing to journal, the error was already reported downstream
			continue
		}

		upload := upload
		err = task.NewRetry().
			WithContext(self.Ctx).
			WithMaxElapsedTime(self.Config.Uploader.RetryMaxElapsedTime).
			WithMaxInterval(self.Config.Uploader.RetryMaxInterval).
			WithOnError(func(err error) {
				self.monitor.GetReport().Uploader.Errors.StatusSaveError.Inc()
				self.Log.WithError(err).Error("Failed to save status, retrying")
			}).
			Run(func() error { return self.save(upload) })
		if err != nil {
			return
		}

		self.monitor.GetReport().Uploader.State.StatusesSaved.Inc()
	}
	return nil
}

func (self *Storer) save(upload *Upload) error {
	switch {
	case upload.File != nil:
		return self.store.SaveFileStatus(upload.File)
	case upload.Bundle != nil:
		return self.store.SaveBundleStatus(upload.Bundle)
	default:
		return nil
	}
}
