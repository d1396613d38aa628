package response

// Pagination describes the slice of a listing returned in the response
// envelope. Match listings are single-page top-N slices, so Page is 1
// and HasMore signals that the limit cut the result off.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

func NewPagination(pageSize, returned int) *Pagination {
	p := &Pagination{
		Page:       1,
		PageSize:   pageSize,
		TotalItems: int64(returned),
		HasMore:    returned >= pageSize,
	}
	if returned > 0 {
		p.From = 1
		p.To = returned
	}
	return p
}
