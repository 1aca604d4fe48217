package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContentSource = (*ContentStore)(nil)

// ContentStore implements driven.ContentSource over the five content
// tables. Reads only; content is written by the ingestion pipeline.
type ContentStore struct {
	db *DB
}

// NewContentStore creates a new ContentStore
func NewContentStore(db *DB) *ContentStore {
	return &ContentStore{db: db}
}

// FetchContent reads all five collections
func (s *ContentStore) FetchContent(ctx context.Context) (*domain.ContentSet, error) {
	threads, err := s.fetchThreads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	interviews, err := s.fetchInterviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interviews: %w", err)
	}
	reportages, err := s.fetchReportages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reportages: %w", err)
	}
	videos, err := s.fetchVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	testimonials, err := s.fetchTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}

	return &domain.ContentSet{
		Threads:      threads,
		Interviews:   interviews,
		Reportages:   reportages,
		Videos:       videos,
		Testimonials: testimonials,
	}, nil
}

func (s *ContentStore) fetchThreads(ctx context.Context) ([]*domain.Thread, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT thread_id, title, description, theme, date_created, total_tweets, complete
		FROM threads
		ORDER BY date_created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []*domain.Thread
	for rows.Next() {
		var t domain.Thread
		var theme sql.NullString
		if err := rows.Scan(&t.ThreadID, &t.Title, &t.Description, &theme, &t.DateCreated, &t.TotalTweets, &t.Complete); err != nil {
			return nil, err
		}
		t.Theme = theme.String
		threads = append(threads, &t)
	}
	return threads, rows.Err()
}

func (s *ContentStore) fetchInterviews(ctx context.Context) ([]*domain.Interview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, transcript, questions, category,
		       interviewee_name, interviewee_photo, thumbnail, published_at
		FROM interviews
		ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*domain.Interview
	for rows.Next() {
		var i domain.Interview
		var transcript, category, photo, thumbnail sql.NullString
		var questions []byte
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &transcript, &questions, &category,
			&i.Interviewee.Name, &photo, &thumbnail, &i.PublishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &i.Questions); err != nil {
			return nil, fmt.Errorf("interview %s: invalid questions payload: %w", i.ID, err)
		}
		i.Transcript = transcript.String
		i.Category = category.String
		i.Interviewee.Photo = photo.String
		i.Thumbnail = thumbnail.String
		interviews = append(interviews, &i)
	}
	return interviews, rows.Err()
}

func (s *ContentStore) fetchReportages(ctx context.Context) ([]*domain.Reportage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, images, category, location_name,
		       photographer_name, cover_image, published_at
		FROM reportages
		ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reportages []*domain.Reportage
	for rows.Next() {
		var r domain.Reportage
		var category, coverImage sql.NullString
		var images []byte
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &images, &category,
			&r.Location.Name, &r.Photographer.Name, &coverImage, &r.PublishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(images, &r.Images); err != nil {
			return nil, fmt.Errorf("reportage %s: invalid images payload: %w", r.ID, err)
		}
		r.Category = category.String
		r.CoverImage = coverImage.String
		reportages = append(reportages, &r)
	}
	return reportages, rows.Err()
}

func (s *ContentStore) fetchVideos(ctx context.Context) ([]*domain.Video, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, transcript, chapters, category,
		       speaker_name, thumbnail, published_at
		FROM videos
		ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		var v domain.Video
		var transcript, category, thumbnail sql.NullString
		var chapters []byte
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &transcript, &chapters, &category,
			&v.Speaker.Name, &thumbnail, &v.PublishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(chapters, &v.Chapters); err != nil {
			return nil, fmt.Errorf("video %s: invalid chapters payload: %w", v.ID, err)
		}
		v.Transcript = transcript.String
		v.Category = category.String
		v.Thumbnail = thumbnail.String
		videos = append(videos, &v)
	}
	return videos, rows.Err()
}

func (s *ContentStore) fetchTestimonials(ctx context.Context) ([]*domain.Testimonial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, category, author_name, author_location,
		       author_anonymous, created_at
		FROM testimonials
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []*domain.Testimonial
	for rows.Next() {
		var t domain.Testimonial
		var category, authorName, authorLocation sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &category, &authorName, &authorLocation,
			&t.Author.Anonymous, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Category = category.String
		t.Author.Name = authorName.String
		t.Author.Location = authorLocation.String
		testimonials = append(testimonials, &t)
	}
	return testimonials, rows.Err()
}
