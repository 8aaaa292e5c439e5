package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// CronResponse is returned by the scheduled trigger endpoints.
type CronResponse struct {
	Message   string       `json:"message"`
	Timestamp string       `json:"timestamp"`
	Results   *BatchReport `json:"results,omitempty"`
}

type BillListResponse struct {
	Bills []*BillRecord `json:"bills"`
	Total int64         `json:"total"`
	Page  int64         `json:"page"`
	Limit int64         `json:"limit"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}
