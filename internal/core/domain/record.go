package domain

import "time"

// SearchRecord is the normalized, type-tagged unit of searchable content.
// One record exists per (Type, ID) pair in the index. The canonical record
// held by the index keeps RelevanceScore at 0 and Highlights nil; the query
// engine attaches per-query values to a copy, never to the stored original.
type SearchRecord struct {
	ID          string      `json:"id"`
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	// Content is an extended text blob used for scoring only, never displayed
	Content  string    `json:"-"`
	Date     time.Time `json:"date"`
	Theme    string    `json:"theme,omitempty"`
	Location string    `json:"location,omitempty"`
	Author   string    `json:"author,omitempty"`
	Image    string    `json:"image,omitempty"`
	URL      string    `json:"url"`

	// Per-query fields, populated on result copies only
	RelevanceScore float64  `json:"relevance_score"`
	Highlights     []string `json:"highlights,omitempty"`
}

// Key returns the composite index key for the record
func (r *SearchRecord) Key() string {
	return string(r.Type) + ":" + r.ID
}
