package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driven"
	"github.com/cityzenmag/search-core/internal/core/ports/driving"
)

// Ensure searchSession implements SearchSession
var _ driving.SearchSession = (*searchSession)(nil)

const (
	// debounceInterval coalesces keystroke-driven searches
	debounceInterval = 300 * time.Millisecond

	defaultWatchInterval = 5 * time.Minute
)

// searchSession bridges the content source to the query engine: it
// rebuilds the index when content changes and tracks UI-facing
// loading/error state around searches. Concurrent searches are tagged
// with a monotone sequence number so a slow early response can never
// overwrite the state of a later one.
type searchSession struct {
	engine driving.SearchService
	source driven.ContentSource
	logger *slog.Logger

	mu           sync.Mutex
	indexed      bool
	loading      bool
	lastError    string
	lastResponse *domain.SearchResponse
	lastCounts   [5]int
	nextSeq      uint64
	appliedSeq   uint64

	debounceMu    sync.Mutex
	debounceTimer *time.Timer

	watchInterval time.Duration
}

// SessionConfig configures a search session
type SessionConfig struct {
	Engine driving.SearchService
	Source driven.ContentSource
	Logger *slog.Logger

	// WatchInterval is the content poll period for Watch; zero selects
	// the default
	WatchInterval time.Duration
}

// NewSearchSession creates a new SearchSession
func NewSearchSession(cfg SessionConfig) driving.SearchSession {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.WatchInterval
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	return &searchSession{
		engine:        cfg.Engine,
		source:        cfg.Source,
		logger:        logger,
		watchInterval: interval,
	}
}

// Reindex fetches the content collections and rebuilds the index. A
// failed pass reports ErrIndexing and leaves the ready flag at its
// previous value.
func (s *searchSession) Reindex(ctx context.Context) error {
	return s.refresh(ctx, true)
}

// Watch polls the content source and reindexes when any collection size
// changed. Blocks until the context is cancelled.
func (s *searchSession) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.refresh(ctx, false); err != nil {
				s.logger.Warn("content refresh failed", "error", err)
			}
		}
	}
}

func (s *searchSession) refresh(ctx context.Context, force bool) error {
	set, err := s.source.FetchContent(ctx)
	if err != nil {
		err = fmt.Errorf("%w: fetching content: %v", domain.ErrIndexing, err)
		s.recordIndexError(err)
		return err
	}

	counts := set.Counts()
	s.mu.Lock()
	unchanged := counts == s.lastCounts
	s.mu.Unlock()
	if !force && unchanged {
		return nil
	}

	// Nothing loaded yet: not an error, but nothing to index either
	if set.IsEmpty() {
		return nil
	}

	if err := s.engine.IndexContent(ctx, set); err != nil {
		s.recordIndexError(err)
		return err
	}

	s.mu.Lock()
	s.indexed = true
	s.lastError = ""
	s.lastCounts = counts
	s.mu.Unlock()

	s.logger.Info("search index rebuilt",
		"threads", counts[0],
		"interviews", counts[1],
		"reportages", counts[2],
		"videos", counts[3],
		"testimonials", counts[4],
	)
	return nil
}

func (s *searchSession) recordIndexError(err error) {
	s.mu.Lock()
	// indexed keeps its previous value: a failed rebuild must not flip
	// the session to ready, nor un-ready a working index
	s.lastError = err.Error()
	s.mu.Unlock()
}

// Search delegates to the engine, tracking loading and error state. A
// response older than the last applied one is returned to its caller but
// not written into the session state.
func (s *searchSession) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	s.mu.Lock()
	if !s.indexed {
		s.mu.Unlock()
		return nil, domain.ErrNotIndexed
	}
	s.nextSeq++
	seq := s.nextSeq
	s.loading = true
	s.mu.Unlock()

	response, err := s.engine.Search(ctx, query, opts)

	s.mu.Lock()
	if seq > s.appliedSeq {
		s.appliedSeq = seq
		s.loading = false
		if err != nil {
			s.lastError = err.Error()
		} else {
			s.lastError = ""
			s.lastResponse = response
		}
	}
	s.mu.Unlock()

	return response, err
}

// SearchDebounced schedules a search to run after a short quiet period.
// A new call supersedes the pending timer; an in-flight search is not
// cancelled, only its state update can be discarded as stale.
func (s *searchSession) SearchDebounced(ctx context.Context, query string, opts domain.SearchOptions, deliver func(*domain.SearchResponse, error)) {
	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(debounceInterval, func() {
		response, err := s.Search(ctx, query, opts)
		if deliver != nil {
			deliver(response, err)
		}
	})
}

// State returns a snapshot of the session state
func (s *searchSession) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SearchState{
		IsIndexed:    s.indexed,
		IsLoading:    s.loading,
		LastError:    s.lastError,
		LastResponse: s.lastResponse,
	}
}
