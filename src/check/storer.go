package check

import (
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
)

// Journals checked statuses back to the status directory.
// SinkTask handles caching data and periodically calling flush
type Storer struct {
	*task.SinkTask[*Payload]

	store   *status.Store
	monitor monitoring.Monitor
}

func NewStorer(config *config.Config) (self *Storer) {
	self = new(Storer)

	self.SinkTask = task.NewSinkTask[*Payload](config, "storer").
		WithBatchSize(config.Checker.StatusBatchSize).
		WithOnFlush(config.Checker.StatusFlushInterval, self.flush)

	return
}

func (self *Storer) WithStore(store *status.Store) *Storer {
	self.store = store
	return self
}

func (self *Storer) WithInputChannel(input chan *Payload) *Storer {
	self.SinkTask.WithInputChannel(input)
	return self
}

func (self *Storer) WithMonitor(monitor monitoring.Monitor) *Storer {
	self.monitor = monitor
	return self
}

func (self *Storer) flush(payloads []*Payload) (err error) {
	for _, payload := range payloads {
		if payload.Failed() {
			// The journal keeps the last state that could be confirmed
			continue
		}

		payload := payload
		err = task.NewRetry().
			WithContext(self.Ctx).
			WithMaxElapsedTime(self.Config.Uploader.RetryMaxElapsedTime).
			WithMaxInterval(self.Config.Uploader.RetryMaxInterval).
			WithOnError(func(err error) {
				self.monitor.GetReport().Checker.Errors.StatusSaveError.Inc()
				self.Log.WithError(err).Error("Failed to save status, retrying")
			}).
			Run(func() error { return self.store.SaveFileStatus(payload.Status) })
		if err != nil {
			return
		}

		self.monitor.GetReport().Checker.State.StatusesSaved.Inc()
	}
	return nil
}
