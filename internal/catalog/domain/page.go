package domain

// PageMeta describes the position of a page within the full result set.
// LastPage is ceil(Total / limit) for the limit the page was requested with.
type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int32 `json:"page"`
	LastPage int32 `json:"lastPage"`
}

// Page is one slice of the available products plus its metadata. It is a value,
// not an entity.
type Page struct {
	Data []Product `json:"data"`
	Meta PageMeta  `json:"meta"`
}

// NewPageMeta computes pagination metadata for a total row count and a page
// request. An empty result set yields lastPage 0.
func NewPageMeta(total int64, page, limit int32) PageMeta {
	lastPage := int32((total + int64(limit) - 1) / int64(limit))
	return PageMeta{
		Total:    total,
		Page:     page,
		LastPage: lastPage,
	}
}
