package services

import (
	"context"
	"strings"
)

const maxSuggestions = 5

// defaultSuggestionVocabulary is the static completion vocabulary offered
// alongside recorded queries. Phrases mirror the magazine's recurring
// investigation themes.
var defaultSuggestionVocabulary = []string{
	"transparence gouvernementale",
	"corruption Sénégal",
	"modernisation administration",
	"participation citoyenne",
	"données ouvertes",
	"gouvernance locale",
	"marchés publics",
	"réforme institutionnelle",
}

// Suggest returns query completions: popular recorded searches first, then
// static vocabulary entries, both matched by case-insensitive containment.
func (s *searchService) Suggest(_ context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 || limit > maxSuggestions {
		limit = maxSuggestions
	}
	return s.suggest(query, limit), nil
}

func (s *searchService) suggest(query string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	suggestions := make([]string, 0, limit)
	seen := make(map[string]bool)

	// Popular searches take priority over the static vocabulary
	for _, popular := range s.history.PopularSearches() {
		if len(suggestions) == limit {
			return suggestions
		}
		if popular == query || seen[popular] {
			continue
		}
		if strings.Contains(strings.ToLower(popular), needle) {
			suggestions = append(suggestions, popular)
			seen[popular] = true
		}
	}

	for _, phrase := range defaultSuggestionVocabulary {
		if len(suggestions) == limit {
			break
		}
		if phrase == query || seen[phrase] {
			continue
		}
		if strings.Contains(strings.ToLower(phrase), needle) {
			suggestions = append(suggestions, phrase)
			seen[phrase] = true
		}
	}
	return suggestions
}
