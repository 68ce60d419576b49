package upload

import (
	"os"

	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/task"
)

// Stats the input paths and folds them into groups, each below the
// bundle size limit. Greedy first fit in iteration order: a path that
// doesn't fit flushes the accumulator and starts the next group.
type Collector struct {
	*task.Task

	paths      []string
	groupLimit int64
	itemLimit  int
	monitor    monitoring.Monitor

	// Groups of paths to be uploaded
	Output chan *Upload
}

func NewCollector(config *config.Config) (self *Collector) {
	self = new(Collector)

	self.Output = make(chan *Upload, 100)

	self.Task = task.NewTask(config, "collector").
		WithSubtaskFunc(self.run).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Collector) WithPaths(paths []string) *Collector {
	self.paths = paths
	return self
}

// WithGroupLimit caps the combined file size of one group.
// Zero or negative puts every path in its own group.
func (self *Collector) WithGroupLimit(groupLimit int64, itemLimit int) *Collector {
	self.groupLimit = groupLimit
	self.itemLimit = itemLimit
	return self
}

func (self *Collector) WithMonitor(monitor monitoring.Monitor) *Collector {
	self.monitor = monitor
	return self
}

func (self *Collector) run() (err error) {
	var group *Upload

	flush := func() {
		if group == nil || len(group.Paths) == 0 {
			return
		}
		self.monitor.GetReport().Uploader.State.GroupsCollected.Inc()
		self.Output <- group
		group = nil
	}

	for _, path := range self.paths {
		if self.IsStopping.Load() {
			return nil
		}

		info, statErr := os.Stat(path)
		if statErr != nil {
			// Report the failure downstream, keep collecting
			self.monitor.GetReport().Uploader.Errors.FileReadError.Inc()
			self.Log.WithError(statErr).WithField("path", path).Error("Failed to stat file")
			self.Output <- &Upload{Paths: []string{path}, Err: statErr}
			continue
		}
		if info.IsDir() {
			continue
		}

		size := info.Size()
		self.monitor.GetReport().Uploader.State.FilesCollected.Inc()
		self.monitor.GetReport().Uploader.State.BytesCollected.Add(uint64(size))

		if self.groupLimit <= 0 {
			self.Output <- &Upload{Paths: []string{path}, TotalBytes: size}
			continue
		}

		if group != nil &&
			(group.TotalBytes+size > self.groupLimit || len(group.Paths) >= self.itemLimit) {
			flush()
		}
		if group == nil {
			group = new(Upload)
		}
		group.Paths = append(group.Paths, path)
		group.TotalBytes += size
	}

	flush()
	return nil
}
