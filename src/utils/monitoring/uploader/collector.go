package monitor_uploader

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	FilesCollected        *prometheus.Desc
	GroupsCollected       *prometheus.Desc
	BytesCollected        *prometheus.Desc
	TransactionsSubmitted *prometheus.Desc
	BundlesSubmitted      *prometheus.Desc
	ItemsBundled          *prometheus.Desc
	ChunksUploaded        *prometheus.Desc
	StatusesSaved         *prometheus.Desc

	FileReadError    *prometheus.Desc
	AnchorError      *prometheus.Desc
	SigningError     *prometheus.Desc
	SubmitError      *prometheus.Desc
	ChunkUploadError *prometheus.Desc
	BundlingError    *prometheus.Desc
	StatusSaveError  *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "uploader",
	}

	return &Collector{
		FilesCollected:        prometheus.NewDesc("files_collected", "", nil, labels),
		GroupsCollected:       prometheus.NewDesc("groups_collected", "", nil, labels),
		BytesCollected:        prometheus.NewDesc("bytes_collected", "", nil, labels),
		TransactionsSubmitted: prometheus.NewDesc("transactions_submitted", "", nil, labels),
		BundlesSubmitted:      prometheus.NewDesc("bundles_submitted", "", nil, labels),
		ItemsBundled:          prometheus.NewDesc("items_bundled", "", nil, labels),
		ChunksUploaded:        prometheus.NewDesc("chunks_uploaded", "", nil, labels),
		StatusesSaved:         prometheus.NewDesc("statuses_saved", "", nil, labels),
		FileReadError:         prometheus.NewDesc("file_read_error", "", nil, labels),
		AnchorError:           prometheus.NewDesc("anchor_error", "", nil, labels),
		SigningError:          prometheus.NewDesc("signing_error", "", nil, labels),
		SubmitError:           prometheus.NewDesc("submit_error", "", nil, labels),
		ChunkUploadError:      prometheus.NewDesc("chunk_upload_error", "", nil, labels),
		BundlingError:         prometheus.NewDesc("bundling_error", "", nil, labels),
		StatusSaveError:       prometheus.NewDesc("status_save_error", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.FilesCollected
	ch <- self.GroupsCollected
	ch <- self.BytesCollected
	ch <- self.TransactionsSubmitted
	ch <- self.BundlesSubmitted
	ch <- self.ItemsBundled
	ch <- self.ChunksUploaded
	ch <- self.StatusesSaved

	// Errors
	ch <- self.FileReadError
	ch <- self.AnchorError
	ch <- self.SigningError
	ch <- self.SubmitError
	ch <- self.ChunkUploadError
	ch <- self.BundlingError
	ch <- self.StatusSaveError
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	state := &self.monitor.Report.Uploader.State
	errors := &self.monitor.Report.Uploader.Errors

	ch <- prometheus.MustNewConstMetric(self.FilesCollected, prometheus.CounterValue, float64(state.FilesCollected.Load()))
	ch <- prometheus.MustNewConstMetric(self.GroupsCollected, prometheus.CounterValue, float64(state.GroupsCollected.Load()))
	ch <- prometheus.MustNewConstMetric(self.BytesCollected, prometheus.CounterValue, float64(state.BytesCollected.Load()))
	ch <- prometheus.MustNewConstMetric(self.TransactionsSubmitted, prometheus.CounterValue, float64(state.TransactionsSubmitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.BundlesSubmitted, prometheus.CounterValue, float64(state.BundlesSubmitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.ItemsBundled, prometheus.CounterValue, float64(state.ItemsBundled.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChunksUploaded, prometheus.CounterValue, float64(state.ChunksUploaded.Load()))
	ch <- prometheus.MustNewConstMetric(self.StatusesSaved, prometheus.CounterValue, float64(state.StatusesSaved.Load()))
	ch <- prometheus.MustNewConstMetric(self.FileReadError, prometheus.CounterValue, float64(errors.FileReadError.Load()))
	ch <- prometheus.MustNewConstMetric(self.AnchorError, prometheus.CounterValue, float64(errors.AnchorError.Load()))
	ch <- prometheus.MustNewConstMetric(self.SigningError, prometheus.CounterValue, float64(errors.SigningError.Load()))
	ch <- prometheus.MustNewConstMetric(self.SubmitError, prometheus.CounterValue, float64(errors.SubmitError.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChunkUploadError, prometheus.CounterValue, float64(errors.ChunkUploadError.Load()))
	ch <- prometheus.MustNewConstMetric(self.BundlingError, prometheus.CounterValue, float64(errors.BundlingError.Load()))
	ch <- prometheus.MustNewConstMetric(self.StatusSaveError, prometheus.CounterValue, float64(errors.StatusSaveError.Load()))
}
