package status

import (
	"fmt"
	"strings"
)

// Summary counts statuses per code
type Summary struct {
	Submitted int `json:"submitted"`
	Pending   int `json:"pending"`
	NotFound  int `json:"not_found"`
	Confirmed int `json:"confirmed"`
	Total     int `json:"total"`
}

func Summarize(statuses []*Status) (out Summary) {
	for _, status := range statuses {
		switch status.Status {
		case Submitted:
			out.Submitted++
		case Pending:
			out.Pending++
		case NotFound:
			out.NotFound++
		case Confirmed:
			out.Confirmed++
		}
		out.Total++
	}
	return
}

func (self Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Submitted: %d\n", self.Submitted)
	fmt.Fprintf(&sb, "Pending: %d\n", self.Pending)
	fmt.Fprintf(&sb, "NotFound: %d\n", self.NotFound)
	fmt.Fprintf(&sb, "Confirmed: %d\n", self.Confirmed)
	fmt.Fprintf(&sb, "Total: %d\n", self.Total)
	return sb.String()
}
