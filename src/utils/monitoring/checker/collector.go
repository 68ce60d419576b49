package monitor_checker

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	StatusesLoaded   *prometheus.Desc `json:"statuses_loaded"`
	StatusesChecked  *prometheus.Desc `json:"statuses_checked"`
	Confirmed        *prometheus.Desc `json:"confirmed"`
	Pending          *prometheus.Desc `json:"pending"`
	NotFound         *prometheus.Desc `json:"not_found"`
	StatusesSaved    *prometheus.Desc `json:"statuses_saved"`
	StatusQueryError *prometheus.Desc `json:"status_query_error"`
	StatusSaveError  *prometheus.Desc `json:"status_save_error"`
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "checker",
	}

	return &Collector{
		StatusesLoaded:   prometheus.NewDesc("statuses_loaded", "", nil, labels),
		StatusesChecked:  prometheus.NewDesc("statuses_checked", "", nil, labels),
		Confirmed:        prometheus.NewDesc("confirmed", "", nil, labels),
		Pending:          prometheus.NewDesc("pending", "", nil, labels),
		NotFound:         prometheus.NewDesc("not_found", "", nil, labels),
		StatusesSaved:    prometheus.NewDesc("statuses_saved", "", nil, labels),
		StatusQueryError: prometheus.NewDesc("status_query_error", "", nil, labels),
		StatusSaveError:  prometheus.NewDesc("status_save_error", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.StatusesLoaded
	ch <- self.StatusesChecked
	ch <- self.Confirmed
	ch <- self.Pending
	ch <- self.NotFound
	ch <- self.StatusesSaved
	ch <- self.StatusQueryError
	ch <- self.StatusSaveError
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(self.StatusesLoaded, prometheus.CounterValue, float64(self.monitor.Report.Checker.State.StatusesLoaded.Load()))
	ch <- prometheus.MustNewConstMetric(self.StatusesChecked, prometheus.CounterValue, float64(self.monitor.Report.Checker.State.StatusesChecked.Load()))
	ch <- prometheus.MustNewConstMetric(self.Confirmed, prometheus.CounterValue, float64(self.monitor.Report.Checker.State.Confirmed.Load()))
	ch <- prometheus.MustNewConstMetric(self.Pending, prometheus.CounterValue, float64(self.monitor.Report.Checker.State.Pending.Load()))
	ch <- prometheus.MustNewConstMetric(self.NotFound, prometheus.CounterValue, float64(self.monitor.Report.Checker.State.NotFound.Load()))
	ch <- prometheus.MustNewConstMetric(self.StatusesSaved, prometheus.CounterValue, float64(self.monitor.Report.Checker.State.StatusesSaved.Load()))
	ch <- prometheus.MustNewConstMetric(self.StatusQueryError, prometheus.CounterValue, float64(self.monitor.Report.Checker.Errors.StatusQueryError.Load()))
	ch <- prometheus.MustNewConstMetric(self.StatusSaveError, prometheus.CounterValue, float64(self.monitor.Report.Checker.Errors.StatusSaveError.Load()))
}
