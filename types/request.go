package types

type PaginateBillsRequest struct {
	Page  int64 `form:"page"`
	Limit int64 `form:"limit"`
}
