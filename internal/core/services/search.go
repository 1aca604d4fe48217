package services

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

const (
	defaultLimit = 20
	maxLimit     = 100

	// Tokens must be longer than minTokenRunes to participate in scoring
	minTokenRunes = 2

	titleWeight       = 3
	descriptionWeight = 2
	contentWeight     = 1
	phraseBonus       = 5

	highlightWindow = 50 // runes kept on each side of a match
	maxHighlights   = 3

	highlightOpen  = "<mark>"
	highlightClose = "</mark>"
)

// popularityTypeWeights drive the popularity sort: editorially heavier
// formats rank above threads at equal recency
var popularityTypeWeights = map[domain.ContentType]int{
	domain.ContentTypeThread:      1,
	domain.ContentTypeInterview:   3,
	domain.ContentTypeReportage:   2,
	domain.ContentTypeVideo:       4,
	domain.ContentTypeTestimonial: 2,
}

// searchService implements the SearchService interface: an in-memory
// index over the normalized records plus the query pipeline.
type searchService struct {
	mu      sync.RWMutex
	records map[string]*domain.SearchRecord
	indexed bool

	history driving.SearchHistoryService
	now     func() time.Time
}

// NewSearchService creates a new SearchService. Recorded queries flow into
// the given history service and feed suggestions back out of it.
func NewSearchService(history driving.SearchHistoryService) driving.SearchService {
	return &searchService{
		records: make(map[string]*domain.SearchRecord),
		history: history,
		now:     time.Now,
	}
}

// IndexContent fully rebuilds the index from the given collections. The
// new index is built aside and swapped in only when every item mapped
// cleanly, so a failed pass never leaves a partial index behind.
func (s *searchService) IndexContent(_ context.Context, set *domain.ContentSet) error {
	if set == nil {
		return fmt.Errorf("%w: nil content set", domain.ErrIndexing)
	}

	fresh := make(map[string]*domain.SearchRecord, set.Len())
	for _, item := range set.Items() {
		record, err := normalizeItem(item)
		if err != nil {
			return err
		}
		// Last write wins within a pass: at most one record per (type,id)
		fresh[record.Key()] = record
	}

	s.mu.Lock()
	s.records = fresh
	s.indexed = true
	s.mu.Unlock()
	return nil
}

// Indexed reports whether at least one indexing pass has succeeded
func (s *searchService) Indexed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexed
}

// Search runs the query pipeline: filter, score, sort, paginate. Facets
// and the total are computed over the full filtered+scored set before
// pagination. The raw query is recorded into history as a side effect.
func (s *searchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (response *domain.SearchResponse, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			response = nil
			err = fmt.Errorf("%w: %v", domain.ErrSearchExecution, r)
		}
	}()

	s.mu.RLock()
	if !s.indexed {
		s.mu.RUnlock()
		return nil, domain.ErrNotIndexed
	}
	candidates := make([]*domain.SearchRecord, 0, len(s.records))
	for _, record := range s.records {
		candidates = append(candidates, record)
	}
	s.mu.RUnlock()

	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.SortBy == "" {
		opts.SortBy = domain.SortByRelevance
	}

	tokens := tokenize(query)
	phrase := strings.Join(tokens, " ")

	matched := make([]*domain.SearchRecord, 0)
	for _, record := range candidates {
		if !matchesFilters(record, opts.Filters) {
			continue
		}
		score := relevanceScore(record, tokens, phrase)
		if score == 0 {
			continue
		}
		// Score and highlights go on a copy; the canonical record in
		// the index must stay untouched between queries
		result := *record
		result.RelevanceScore = float64(score)
		result.Highlights = buildHighlights(record.Description, tokens)
		matched = append(matched, &result)
	}

	sortResults(matched, opts.SortBy, s.now())

	total := len(matched)
	facets := buildFacets(matched)
	page := paginate(matched, opts.Offset, opts.Limit)

	s.history.RecordSearch(ctx, query)
	suggestions := s.suggest(query, maxSuggestions)

	return &domain.SearchResponse{
		Query:         query,
		Results:       page,
		Total:         total,
		Suggestions:   suggestions,
		Facets:        facets,
		ExecutionTime: float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}

// tokenize lowercases the query, splits on whitespace and drops tokens
// of 2 runes or fewer
func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) > minTokenRunes {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// matchesFilters applies the AND of all filter dimensions. A record
// missing an optional field is excluded when that dimension is filtered.
func matchesFilters(record *domain.SearchRecord, filters domain.SearchFilters) bool {
	if len(filters.Types) > 0 && !slices.Contains(filters.Types, record.Type) {
		return false
	}
	if dr := filters.DateRange; dr != nil {
		if dr.Start != nil && record.Date.Before(*dr.Start) {
			return false
		}
		if dr.End != nil && record.Date.After(*dr.End) {
			return false
		}
	}
	if len(filters.Themes) > 0 && (record.Theme == "" || !slices.Contains(filters.Themes, record.Theme)) {
		return false
	}
	if len(filters.Locations) > 0 && (record.Location == "" || !slices.Contains(filters.Locations, record.Location)) {
		return false
	}
	if len(filters.Authors) > 0 && (record.Author == "" || !slices.Contains(filters.Authors, record.Author)) {
		return false
	}
	return true
}

// relevanceScore is the additive weighted substring score: per token +3
// for a title hit, +2 for a description hit, +1 for a hit anywhere in the
// combined searchable text, plus a one-time +5 when the rejoined token
// phrase occurs verbatim. Tokens are independent; a token in both title
// and description earns 3+2=5 on its own. A query with no valid tokens
// scores 0 everywhere.
func relevanceScore(record *domain.SearchRecord, tokens []string, phrase string) int {
	if len(tokens) == 0 {
		return 0
	}

	title := strings.ToLower(record.Title)
	description := strings.ToLower(record.Description)
	combined := strings.ToLower(strings.Join([]string{
		record.Title,
		record.Description,
		record.Content,
		record.Theme,
		record.Location,
		record.Author,
	}, " "))

	score := 0
	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += titleWeight
		}
		if strings.Contains(description, token) {
			score += descriptionWeight
		}
		if strings.Contains(combined, token) {
			score += contentWeight
		}
	}

	if strings.Contains(combined, phrase) {
		score += phraseBonus
	}
	return score
}

// sortResults orders the scored set in place
func sortResults(results []*domain.SearchRecord, sortBy domain.SortBy, now time.Time) {
	switch sortBy {
	case domain.SortByDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Date.After(results[j].Date)
		})
	case domain.SortByPopularity:
		sort.SliceStable(results, func(i, j int) bool {
			return popularityScore(results[i], now) > popularityScore(results[j], now)
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
	}
}

// popularityScore is a synthetic ranking: the content type weight times a
// recency multiplier that decays by one per day and never drops below 1
func popularityScore(record *domain.SearchRecord, now time.Time) int {
	weight := popularityTypeWeights[record.Type]
	if weight == 0 {
		weight = 1
	}
	days := int(math.Floor(float64(now.Sub(record.Date).Milliseconds()) / 86400000.0))
	recency := 30 - days
	if recency < 1 {
		recency = 1
	}
	return weight * recency
}

// paginate slices the sorted set by offset/limit
func paginate(results []*domain.SearchRecord, offset, limit int) []*domain.SearchRecord {
	if offset >= len(results) {
		return []*domain.SearchRecord{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}

// buildFacets counts occurrences per distinct dimension value over the
// full filtered+scored set
func buildFacets(results []*domain.SearchRecord) domain.SearchFacets {
	facets := domain.SearchFacets{
		Types:     make(map[string]int),
		Themes:    make(map[string]int),
		Locations: make(map[string]int),
		Authors:   make(map[string]int),
	}
	for _, record := range results {
		facets.Types[string(record.Type)]++
		if record.Theme != "" {
			facets.Themes[record.Theme]++
		}
		if record.Location != "" {
			facets.Locations[record.Location]++
		}
		if record.Author != "" {
			facets.Authors[record.Author]++
		}
	}
	return facets
}

// buildHighlights extracts up to maxHighlights fragments from the
// description, one per matching token in token order. Each fragment keeps
// a window of up to highlightWindow runes on each side of the first
// case-insensitive occurrence and wraps the match in marker tags.
func buildHighlights(description string, tokens []string) []string {
	if description == "" || len(tokens) == 0 {
		return nil
	}

	runes := []rune(description)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	var highlights []string
	for _, token := range tokens {
		if len(highlights) == maxHighlights {
			break
		}
		needle := []rune(token)
		idx := indexRunes(lower, needle)
		if idx < 0 {
			continue
		}

		start := idx - highlightWindow
		if start < 0 {
			start = 0
		}
		end := idx + len(needle) + highlightWindow
		if end > len(runes) {
			end = len(runes)
		}

		fragment := string(runes[start:idx]) +
			highlightOpen + string(runes[idx:idx+len(needle)]) + highlightClose +
			string(runes[idx+len(needle):end])
		highlights = append(highlights, fragment)
	}
	return highlights
}

// indexRunes returns the index of the first occurrence of needle in
// haystack, or -1
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
