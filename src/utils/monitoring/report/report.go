package report

type Report struct {
	Run      *RunReport      `json:"run,omitempty"`
	Uploader *UploaderReport `json:"uploader,omitempty"`
	Checker  *CheckerReport  `json:"checker,omitempty"`
}
