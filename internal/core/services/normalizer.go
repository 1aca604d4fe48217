package services

import (
	"fmt"
	"strings"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// normalizeItem maps one source item into its SearchRecord. The type
// switch is exhaustive over the ContentItem variants; an unknown variant
// is an indexing error, never a silent skip.
func normalizeItem(item domain.ContentItem) (*domain.SearchRecord, error) {
	switch v := item.(type) {
	case *domain.Thread:
		return normalizeThread(v)
	case *domain.Interview:
		return normalizeInterview(v)
	case *domain.Reportage:
		return normalizeReportage(v)
	case *domain.Video:
		return normalizeVideo(v)
	case *domain.Testimonial:
		return normalizeTestimonial(v)
	default:
		return nil, fmt.Errorf("%w: unsupported content type %T", domain.ErrIndexing, item)
	}
}

func normalizeThread(t *domain.Thread) (*domain.SearchRecord, error) {
	if t.ThreadID == "" {
		return nil, fmt.Errorf("%w: thread with empty id", domain.ErrIndexing)
	}
	return &domain.SearchRecord{
		ID:          t.ThreadID,
		Type:        domain.ContentTypeThread,
		Title:       t.Title,
		Description: t.Description,
		Date:        t.DateCreated,
		Theme:       t.Theme,
		URL:         "/thread/" + t.ThreadID,
	}, nil
}

func normalizeInterview(i *domain.Interview) (*domain.SearchRecord, error) {
	if i.ID == "" {
		return nil, fmt.Errorf("%w: interview with empty id", domain.ErrIndexing)
	}

	// Prefer the transcript; fall back to the question/answer pairs
	content := i.Transcript
	if content == "" {
		parts := make([]string, 0, len(i.Questions)*2)
		for _, q := range i.Questions {
			if q.Question != "" {
				parts = append(parts, q.Question)
			}
			if q.Answer != "" {
				parts = append(parts, q.Answer)
			}
		}
		content = strings.Join(parts, " ")
	}

	image := i.Interviewee.Photo
	if image == "" {
		image = i.Thumbnail
	}

	return &domain.SearchRecord{
		ID:          i.ID,
		Type:        domain.ContentTypeInterview,
		Title:       i.Title,
		Description: i.Description,
		Content:     content,
		Date:        i.PublishedAt,
		Theme:       i.Category,
		Author:      i.Interviewee.Name,
		Image:       image,
		URL:         "/interviews#" + i.ID,
	}, nil
}

func normalizeReportage(r *domain.Reportage) (*domain.SearchRecord, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: reportage with empty id", domain.ErrIndexing)
	}

	captions := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		if img.Caption != "" {
			captions = append(captions, img.Caption)
		}
	}

	return &domain.SearchRecord{
		ID:          r.ID,
		Type:        domain.ContentTypeReportage,
		Title:       r.Title,
		Description: r.Description,
		Content:     strings.Join(captions, " "),
		Date:        r.PublishedAt,
		Theme:       r.Category,
		Location:    r.Location.Name,
		Author:      r.Photographer.Name,
		Image:       r.CoverImage,
		URL:         "/reportages#" + r.ID,
	}, nil
}

func normalizeVideo(v *domain.Video) (*domain.SearchRecord, error) {
	if v.ID == "" {
		return nil, fmt.Errorf("%w: video with empty id", domain.ErrIndexing)
	}

	content := v.Transcript
	if content == "" {
		titles := make([]string, 0, len(v.Chapters))
		for _, ch := range v.Chapters {
			if ch.Title != "" {
				titles = append(titles, ch.Title)
			}
		}
		content = strings.Join(titles, " ")
	}

	return &domain.SearchRecord{
		ID:          v.ID,
		Type:        domain.ContentTypeVideo,
		Title:       v.Title,
		Description: v.Description,
		Content:     content,
		Date:        v.PublishedAt,
		Theme:       v.Category,
		Author:      v.Speaker.Name,
		Image:       v.Thumbnail,
		URL:         "/videos#" + v.ID,
	}, nil
}

func normalizeTestimonial(t *domain.Testimonial) (*domain.SearchRecord, error) {
	if t.ID == "" {
		return nil, fmt.Errorf("%w: testimonial with empty id", domain.ErrIndexing)
	}

	author := t.Author.Name
	if t.Author.Anonymous {
		author = "Anonyme"
	}

	return &domain.SearchRecord{
		ID:          t.ID,
		Type:        domain.ContentTypeTestimonial,
		Title:       t.Title,
		Description: t.Content,
		Content:     t.Content,
		Date:        t.CreatedAt,
		Theme:       t.Category,
		Location:    t.Author.Location,
		Author:      author,
		URL:         "/temoignages#" + t.ID,
	}, nil
}
