package check

import (
	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/status"
	"github.com/warp-contracts/loader/src/utils/task"
)

// Queries the network for the confirmation state of every status.
// Workers bound how many queries are in flight at once.
type Checker struct {
	*task.Task

	client  *arweave.Client
	monitor monitoring.Monitor

	// Statuses that can be checked
	input chan *Payload

	// Statuses with the network's answer applied
	Output chan *Payload
}

func NewChecker(config *config.Config) (self *Checker) {
	self = new(Checker)

	self.Output = make(chan *Payload)

	self.Task = task.NewTask(config, "checker").
		WithWorkerPool(config.Checker.WorkerPoolSize).
		WithSubtaskFunc(self.run).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Checker) WithClient(client *arweave.Client) *Checker {
	self.client = client
	return self
}

func (self *Checker) WithInputChannel(input chan *Payload) *Checker {
	self.input = input
	return self
}

func (self *Checker) WithMonitor(monitor monitoring.Monitor) *Checker {
	self.monitor = monitor
	return self
}

func (self *Checker) run() error {
	// Blocks waiting for the next status
	// Quits when the channel is closed
	for payload := range self.input {
		payload := payload

		self.SubmitToWorker(func() {
			if self.IsStopping.Load() {
				return
			}

			self.check(payload)

			select {
			case <-self.Ctx.Done():
				return
			case self.Output <- payload:
			}
		})
	}

	return nil
}

// check applies the network's answer to the status. Pending and
// missing transactions are states, not failures.
func (self *Checker) check(payload *Payload) {
	raw, err := self.client.GetTransactionStatus(self.Ctx, payload.Status.Id.Base64())

	err = payload.Status.Apply(raw, err)
	if err != nil {
		self.monitor.GetReport().Checker.Errors.StatusQueryError.Inc()
		self.Log.WithError(err).WithField("path", payload.Status.FilePath).Error("Failed to query transaction status")
		payload.Err = err
		return
	}

	self.monitor.GetReport().Checker.State.StatusesChecked.Inc()
	switch payload.Status.Status {
	case status.Confirmed:
		self.monitor.GetReport().Checker.State.Confirmed.Inc()
	case status.Pending:
		self.monitor.GetReport().Checker.State.Pending.Inc()
	case status.NotFound:
		self.monitor.GetReport().Checker.State.NotFound.Inc()
	}
}
