package repos

// ListFilter carries the optional equality filters and pagination window
// shared by the entity list endpoints.
type ListFilter struct {
	Category   string
	Status     string
	Featured   *bool
	ActiveOnly bool
	Skip       int
	Limit      int
}

// CategoryCount pairs a distinct category value with a live count of
// active rows in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
