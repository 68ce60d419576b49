package report

import (
	"go.uber.org/atomic"
)

type CheckerErrors struct {
	StatusQueryError atomic.Uint64 `json:"status_query_error"`
	StatusSaveError  atomic.Uint64 `json:"status_save_error"`
}

type CheckerState struct {
	StatusesLoaded  atomic.Uint64 `json:"statuses_loaded"`
	StatusesChecked atomic.Uint64 `json:"statuses_checked"`
	Confirmed       atomic.Uint64 `json:"confirmed"`
	Pending         atomic.Uint64 `json:"pending"`
	NotFound        atomic.Uint64 `json:"not_found"`
	StatusesSaved   atomic.Uint64 `json:"statuses_saved"`
}

type CheckerReport struct {
	State  CheckerState  `json:"state"`
	Errors CheckerErrors `json:"errors"`
}
