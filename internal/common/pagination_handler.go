//nolint:revive
package common

// PagedResult represents a paginated response. Result carries the page
// content; Total is the number of items matching the filter before
// pagination, so clients can page deterministically under a fixed search.
type PagedResult struct {
	Result any `json:"result"`
	Total  int `json:"total"`
}
