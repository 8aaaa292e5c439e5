package types

import "time"

const (
	BillActionInserted  = "inserted"
	BillActionSkipped   = "skipped"
	BillActionUpdated   = "updated"
	BillActionUnchanged = "unchanged"
	BillActionFailed    = "failed"
)

// BillResult is the outcome of processing a single bill within a batch run.
type BillResult struct {
	BillID string `json:"bill_id"`
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
}

// BatchReport collects per-bill outcomes for one job run so batch results are
// inspectable by callers instead of living only in logs.
type BatchReport struct {
	RunID      string       `json:"run_id"`
	Job        string       `json:"job"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Results    []BillResult `json:"results"`
}

func (r *BatchReport) Record(billID, action string, err error) {
	res := BillResult{BillID: billID, Action: action}
	if err != nil {
		res.Error = err.Error()
	}
	r.Results = append(r.Results, res)
}

// Count returns how many results carry the given action.
func (r *BatchReport) Count(action string) int {
	n := 0
	for _, res := range r.Results {
		if res.Action == action {
			n++
		}
	}
	return n
}
