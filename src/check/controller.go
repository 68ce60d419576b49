package check

import (
	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	monitor_checker "github.com/warp-contracts/loader/src/utils/monitoring/checker"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
)

type Options struct {
	// Check only these files, empty checks the whole journal
	Paths []string
}

type Controller struct {
	*task.Task

	// Checked statuses, closed when the last one is through
	Output chan *Payload
}

// Orchestrates one check run: journaled statuses get re-queried on the
// network, updated in place and written back
func NewController(config *config.Config, options *Options) (self *Controller, err error) {
	if config.Uploader.LogDir == "" {
		err = ErrMissingStatusDir
		return
	}

	self = new(Controller)
	self.Task = task.NewTask(config, "check-controller")
	self.Output = make(chan *Payload, 100)

	store, err := status.NewStore(config.Uploader.LogDir)
	if err != nil {
		return
	}

	client := arweave.NewClient(config)

	// Monitoring
	monitor := monitor_checker.NewMonitor()
	server := monitoring.NewServer(config).
		WithMonitor(monitor)

	loader := NewLoader(config).
		WithStore(store).
		WithPaths(options.Paths).
		WithMonitor(monitor)

	checker := NewChecker(config).
		WithClient(client).
		WithInputChannel(loader.Output).
		WithMonitor(monitor)

	storerInput := make(chan *Payload, 100)
	storer := NewStorer(config).
		WithStore(store).
		WithInputChannel(storerInput).
		WithMonitor(monitor)

	// Every checked status goes back to the journal and to the consumer
	fanOut := func() error {
		for payload := range checker.Output {
			storerInput <- payload
			self.Output <- payload
		}
		close(storerInput)
		close(self.Output)
		return nil
	}

	// Setup everything, will start upon calling Controller.Start()
	self.Task.
		WithSubtaskFunc(fanOut).
		WithSubtask(checker.Task).
		WithSubtask(monitor.Task).
		WithConditionalSubtask(config.RESTListenAddress != "", server.Task).
		WithSubtask(loader.Task).
		WithSubtask(storer.Task)
	return
}
