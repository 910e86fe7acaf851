package models

// BookFilters is the raw, untrusted list request as it arrives from the query string.
// Every field is optional; normalization happens in the query builder.
type BookFilters struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      string
	Limit     string
}

// Pagination describes a single page of a list result.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalBooks   int `json:"totalBooks"`
	BooksPerPage int `json:"booksPerPage"`
}

// BookPage is one page of a user's books plus its pagination metadata.
type BookPage struct {
	Books      []BookDB   `json:"books"`
	Pagination Pagination `json:"pagination"`
}
