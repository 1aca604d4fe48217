package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driven/mocks"
)

func TestHistoryTracker_RecordSearch(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	tracker := NewHistoryTracker(context.Background(), store, nil)
	ctx := context.Background()

	tracker.RecordSearch(ctx, "transparence")
	tracker.RecordSearch(ctx, "corruption")

	history := tracker.SearchHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	// Newest first
	if history[0] != "corruption" || history[1] != "transparence" {
		t.Errorf("unexpected order: %v", history)
	}
	if store.Saves() != 2 {
		t.Errorf("expected 2 persisted saves, got %d", store.Saves())
	}
}

func TestHistoryTracker_RecordSearch_ShortQueryIgnored(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	tracker := NewHistoryTracker(context.Background(), store, nil)
	ctx := context.Background()

	tracker.RecordSearch(ctx, "ab")
	tracker.RecordSearch(ctx, "  ab  ")
	tracker.RecordSearch(ctx, "   ")
	tracker.RecordSearch(ctx, "été") // 3 runes, long enough

	history := tracker.SearchHistory()
	if len(history) != 1 || history[0] != "été" {
		t.Errorf("expected only the accented query, got %v", history)
	}
	if store.Saves() != 1 {
		t.Errorf("expected 1 save, got %d", store.Saves())
	}
}

func TestHistoryTracker_HistoryCaps(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	tracker := NewHistoryTracker(context.Background(), store, nil)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		tracker.RecordSearch(ctx, fmt.Sprintf("requête numéro %d", i))
	}

	// The view shows the 10 most recent
	view := tracker.SearchHistory()
	if len(view) != 10 {
		t.Fatalf("expected a view of 10, got %d", len(view))
	}
	if view[0] != "requête numéro 59" {
		t.Errorf("expected newest first, got %q", view[0])
	}

	// The persisted list is capped at 50
	persisted, _ := store.Persisted()
	if len(persisted) != 50 {
		t.Errorf("expected 50 persisted entries, got %d", len(persisted))
	}
	if persisted[49] != "requête numéro 10" {
		t.Errorf("expected oldest surviving entry at the tail, got %q", persisted[49])
	}
}

func TestHistoryTracker_PopularSearches(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	tracker := NewHistoryTracker(context.Background(), store, nil)
	ctx := context.Background()

	tracker.RecordSearch(ctx, "corruption")
	tracker.RecordSearch(ctx, "transparence")
	tracker.RecordSearch(ctx, "transparence")
	tracker.RecordSearch(ctx, "transparence")
	tracker.RecordSearch(ctx, "gouvernance")
	tracker.RecordSearch(ctx, "gouvernance")

	popular := tracker.PopularSearches()
	if len(popular) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(popular))
	}
	if popular[0] != "transparence" || popular[1] != "gouvernance" || popular[2] != "corruption" {
		t.Errorf("unexpected ranking: %v", popular)
	}
}

func TestHistoryTracker_PopularSearches_TiesKeepInsertionOrder(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	tracker := NewHistoryTracker(context.Background(), store, nil)
	ctx := context.Background()

	tracker.RecordSearch(ctx, "marchés publics")
	tracker.RecordSearch(ctx, "données ouvertes")
	tracker.RecordSearch(ctx, "participation")

	popular := tracker.PopularSearches()
	if len(popular) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(popular))
	}
	if popular[0] != "marchés publics" || popular[2] != "participation" {
		t.Errorf("expected first-recorded first among ties, got %v", popular)
	}
}

func TestHistoryTracker_PopularSearches_ViewCap(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	tracker := NewHistoryTracker(context.Background(), store, nil)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		tracker.RecordSearch(ctx, fmt.Sprintf("requête numéro %d", i))
	}

	if popular := tracker.PopularSearches(); len(popular) != 10 {
		t.Errorf("expected a view of 10, got %d", len(popular))
	}
}

func TestHistoryTracker_ClearSearchHistory(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	tracker := NewHistoryTracker(context.Background(), store, nil)
	ctx := context.Background()

	tracker.RecordSearch(ctx, "transparence")
	tracker.ClearSearchHistory(ctx)

	if len(tracker.SearchHistory()) != 0 {
		t.Error("expected empty history after clear")
	}
	if len(tracker.PopularSearches()) != 0 {
		t.Error("expected empty popularity list after clear")
	}
	if store.Clears() != 1 {
		t.Errorf("expected 1 store clear, got %d", store.Clears())
	}
}

func TestHistoryTracker_LoadsPersistedState(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	store.Seed(
		[]string{"transparence", "corruption"},
		[]domain.PopularEntry{{Query: "transparence", Count: 4}, {Query: "corruption", Count: 1}},
	)

	tracker := NewHistoryTracker(context.Background(), store, nil)

	history := tracker.SearchHistory()
	if len(history) != 2 || history[0] != "transparence" {
		t.Errorf("expected seeded history, got %v", history)
	}
	popular := tracker.PopularSearches()
	if len(popular) != 2 || popular[0] != "transparence" {
		t.Errorf("expected seeded popularity, got %v", popular)
	}
}

func TestHistoryTracker_LoadFailureStartsEmpty(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	store.LoadErr = errors.New("redis unavailable")

	tracker := NewHistoryTracker(context.Background(), store, nil)

	if len(tracker.SearchHistory()) != 0 {
		t.Error("expected empty history after a failed load")
	}

	// The tracker still works without its persisted state
	tracker.RecordSearch(context.Background(), "transparence")
	if len(tracker.SearchHistory()) != 1 {
		t.Error("expected recording to work after a failed load")
	}
}

func TestHistoryTracker_OversizedPersistedHistoryTruncated(t *testing.T) {
	seed := make([]string, 70)
	for i := range seed {
		seed[i] = fmt.Sprintf("requête numéro %d", i)
	}
	store := mocks.NewMockHistoryStore()
	store.Seed(seed, nil)

	tracker := NewHistoryTracker(context.Background(), store, nil)
	tracker.RecordSearch(context.Background(), "nouvelle requête")

	persisted, _ := store.Persisted()
	if len(persisted) != 50 {
		t.Errorf("expected persisted history capped at 50, got %d", len(persisted))
	}
	if persisted[0] != "nouvelle requête" {
		t.Errorf("expected the new query first, got %q", persisted[0])
	}
}

func TestHistoryTracker_SaveFailureSwallowed(t *testing.T) {
	store := mocks.NewMockHistoryStore()
	store.SaveErr = errors.New("redis unavailable")
	tracker := NewHistoryTracker(context.Background(), store, nil)

	// Persistence failures must not surface to the caller
	tracker.RecordSearch(context.Background(), "transparence")

	if len(tracker.SearchHistory()) != 1 {
		t.Error("expected the in-memory history to keep the entry")
	}
}
