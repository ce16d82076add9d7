package apiresponse

import "encoding/json"

// Pagination describes the page of a paginated listing.
type Pagination struct {
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
}

// PaginatedEnvelope is the paginated listing specialization: the page's
// items in data plus a sibling pagination object. It carries no meta field.
type PaginatedEnvelope struct {
	Type       Type       `json:"type"`
	Message    string     `json:"message"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginated builds a success envelope for one page of a listing.
func Paginated(message string, items any, pagination Pagination) PaginatedEnvelope {
	return PaginatedEnvelope{
		Type:       TypeSuccess,
		Message:    message,
		Data:       items,
		Pagination: pagination,
	}
}

// NewPagination derives page math from totals. perPage at or below zero is
// treated as one item per page.
func NewPagination(total, perPage, currentPage int) Pagination {
	if perPage <= 0 {
		perPage = 1
	}
	lastPage := total / perPage
	if total%perPage != 0 || lastPage == 0 {
		lastPage++
	}

	return Pagination{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    lastPage,
	}
}

// Encode implements the web Encoder interface.
func (p PaginatedEnvelope) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json; charset=utf-8", err
}
