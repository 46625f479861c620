// FilePath: internal/models/api.models.filters.go
package models

import "time"

// PageQuery carries pagination parameters decoded from the query string.
type PageQuery struct {
	Page  int `schema:"page"`
	Limit int `schema:"limit"`
}

// RangeQuery carries the inclusive date range for history queries. Both
// fields are required by the endpoint.
type RangeQuery struct {
	Start string `schema:"start"`
	End   string `schema:"end"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// EventPage is one page of sensor events, newest first.
type EventPage struct {
	Rows       []*SensorEvent `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ParseRangeTime accepts both RFC3339 timestamps and bare dates, matching
// what the dashboard date pickers send.
func ParseRangeTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
