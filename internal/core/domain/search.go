package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// SortBy determines result ordering
type SortBy string

const (
	SortByRelevance  SortBy = "relevance"  // Descending relevance score (default)
	SortByDate       SortBy = "date"       // Most recent first
	SortByPopularity SortBy = "popularity" // Type weight scaled by recency
)

// DateRange is an inclusive publication date window
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// SearchFilters restricts the candidate set before scoring. Values within
// one field are OR'd, fields are AND'd together. A nil or empty field means
// no restriction on that dimension.
type SearchFilters struct {
	Types     []ContentType `json:"types,omitempty"`
	Themes    []string      `json:"themes,omitempty"`
	Locations []string      `json:"locations,omitempty"`
	Authors   []string      `json:"authors,omitempty"`
	DateRange *DateRange    `json:"date_range,omitempty"`
}

// SearchOptions configures a search request
type SearchOptions struct {
	Filters SearchFilters `json:"filters,omitempty"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	SortBy  SortBy        `json:"sort_by"`
}

// DefaultSearchOptions returns sensible defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:  20,
		Offset: 0,
		SortBy: SortByRelevance,
	}
}

// SearchFacets breaks the full (pre-pagination) result set down by
// dimension. Absent optional fields contribute no count.
type SearchFacets struct {
	Types     map[string]int `json:"types"`
	Themes    map[string]int `json:"themes"`
	Locations map[string]int `json:"locations"`
	Authors   map[string]int `json:"authors"`
}

// SearchResponse is the full result of one search call
type SearchResponse struct {
	Query       string          `json:"query"`
	Results     []*SearchRecord `json:"results"`
	Total       int             `json:"total"` // size of the full filtered+scored set
	Suggestions []string        `json:"suggestions"`
	Facets      SearchFacets    `json:"facets"`
	// ExecutionTime is wall-clock milliseconds spent inside the search
	// call, indexing excluded
	ExecutionTime float64 `json:"execution_time"`
}

// SearchState is the observable state of a search session
type SearchState struct {
	IsIndexed    bool            `json:"is_indexed"`
	IsLoading    bool            `json:"is_loading"`
	LastError    string          `json:"last_error,omitempty"`
	LastResponse *SearchResponse `json:"last_response,omitempty"`
}

// PopularEntry pairs a recorded query with its occurrence count. The wire
// format is a two-element [query, count] array so the persisted popularity
// list keeps its insertion order.
type PopularEntry struct {
	Query string
	Count int
}

func (e PopularEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Query, e.Count})
}

func (e *PopularEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("popular entry: expected [query, count] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Query); err != nil {
		return fmt.Errorf("popular entry query: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Count); err != nil {
		return fmt.Errorf("popular entry count: %w", err)
	}
	return nil
}
