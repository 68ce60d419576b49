package check

import (
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
)

// Reads journaled file statuses and emits them for checking
type Loader struct {
	*task.Task

	store   *status.Store
	paths   []string
	monitor monitoring.Monitor

	// Statuses that should get re-checked
	Output chan *Payload
}

func NewLoader(config *config.Config) (self *Loader) {
	self = new(Loader)

	self.Output = make(chan *Payload, 100)

	self.Task = task.NewTask(config, "loader").
		WithSubtaskFunc(self.run).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Loader) WithStore(store *status.Store) *Loader {
	self.store = store
	return self
}

// WithPaths limits checking to the given files.
// Empty means every journaled status
func (self *Loader) WithPaths(paths []string) *Loader {
	self.paths = paths
	return self
}

func (self *Loader) WithMonitor(monitor monitoring.Monitor) *Loader {
	self.monitor = monitor
	return self
}

func (self *Loader) run() (err error) {
	var statuses []*status.Status
	if len(self.paths) > 0 {
		statuses, err = self.store.LoadForPaths(self.paths)
	} else {
		statuses, err = self.store.LoadAll()
	}
	if err != nil {
		self.Log.WithError(err).Error("Failed to load journaled statuses")
		return
	}

	for _, s := range statuses {
		self.monitor.GetReport().Checker.State.StatusesLoaded.Inc()

		select {
		case <-self.Ctx.Done():
			return nil
		case self.Output <- &Payload{Status: s}:
		}
	}

	return nil
}
