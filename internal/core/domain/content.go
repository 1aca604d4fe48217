package domain

import "time"

// ContentType identifies which editorial collection an item belongs to
type ContentType string

const (
	ContentTypeThread      ContentType = "thread"      // Synced Twitter threads
	ContentTypeInterview   ContentType = "interview"   // Written or transcribed interviews
	ContentTypeReportage   ContentType = "reportage"   // Photo reportages
	ContentTypeVideo       ContentType = "video"       // Video analyses
	ContentTypeTestimonial ContentType = "testimonial" // Citizen testimonials
)

// ContentItem is the closed set of source shapes the indexer accepts.
// Adding a sixth content type means adding a variant here and a mapping
// branch in the normalizer; the exhaustive type switch there will reject
// anything it does not know.
type ContentItem interface {
	ContentType() ContentType
}

// Person identifies a contributor (interviewee, photographer, speaker)
type Person struct {
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

// Place is a named location attached to content
type Place struct {
	Name string `json:"name"`
}

// Thread is a synced Twitter thread
type Thread struct {
	ThreadID    string    `json:"thread_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Theme       string    `json:"theme,omitempty"`
	DateCreated time.Time `json:"date_created"`
	TotalTweets int       `json:"total_tweets"`
	Complete    bool      `json:"complete"`
}

func (t *Thread) ContentType() ContentType { return ContentTypeThread }

// InterviewQuestion is one question/answer pair of an interview
type InterviewQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Interview is a published interview, optionally with a full transcript
type Interview struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Transcript  string              `json:"transcript,omitempty"`
	Questions   []InterviewQuestion `json:"questions,omitempty"`
	Category    string              `json:"category,omitempty"`
	Interviewee Person              `json:"interviewee"`
	Thumbnail   string              `json:"thumbnail,omitempty"`
	PublishedAt time.Time           `json:"published_at"`
}

func (i *Interview) ContentType() ContentType { return ContentTypeInterview }

// ReportageImage is one photograph of a reportage
type ReportageImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Reportage is a photo reportage
type Reportage struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Images       []ReportageImage `json:"images,omitempty"`
	Category     string           `json:"category,omitempty"`
	Location     Place            `json:"location"`
	Photographer Person           `json:"photographer"`
	CoverImage   string           `json:"cover_image,omitempty"`
	PublishedAt  time.Time        `json:"published_at"`
}

func (r *Reportage) ContentType() ContentType { return ContentTypeReportage }

// VideoChapter is a titled chapter marker within a video
type VideoChapter struct {
	Title     string `json:"title"`
	Timestamp int    `json:"timestamp"` // seconds from start
}

// Video is a video analysis
type Video struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Transcript  string         `json:"transcript,omitempty"`
	Chapters    []VideoChapter `json:"chapters,omitempty"`
	Category    string         `json:"category,omitempty"`
	Speaker     Person         `json:"speaker"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	PublishedAt time.Time      `json:"published_at"`
}

func (v *Video) ContentType() ContentType { return ContentTypeVideo }

// TestimonialAuthor is the (possibly anonymous) author of a testimonial
type TestimonialAuthor struct {
	Name      string `json:"name,omitempty"`
	Location  string `json:"location,omitempty"`
	Anonymous bool   `json:"anonymous"`
}

// Testimonial is a citizen testimonial
type Testimonial struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Category  string            `json:"category,omitempty"`
	Author    TestimonialAuthor `json:"author"`
	CreatedAt time.Time         `json:"created_at"`
}

func (t *Testimonial) ContentType() ContentType { return ContentTypeTestimonial }

// ContentSet holds the five content collections handed to the indexer.
// Collections are read as already-fetched data; the core never triggers
// the upstream fetches.
type ContentSet struct {
	Threads      []*Thread      `json:"threads"`
	Interviews   []*Interview   `json:"interviews"`
	Reportages   []*Reportage   `json:"reportages"`
	Videos       []*Video       `json:"videos"`
	Testimonials []*Testimonial `json:"testimonials"`
}

// Items flattens the set into a single slice in collection order
func (c *ContentSet) Items() []ContentItem {
	items := make([]ContentItem, 0, c.Len())
	for _, t := range c.Threads {
		items = append(items, t)
	}
	for _, i := range c.Interviews {
		items = append(items, i)
	}
	for _, r := range c.Reportages {
		items = append(items, r)
	}
	for _, v := range c.Videos {
		items = append(items, v)
	}
	for _, t := range c.Testimonials {
		items = append(items, t)
	}
	return items
}

// Len returns the total number of items across all collections
func (c *ContentSet) Len() int {
	return len(c.Threads) + len(c.Interviews) + len(c.Reportages) + len(c.Videos) + len(c.Testimonials)
}

// IsEmpty reports whether every collection is empty
func (c *ContentSet) IsEmpty() bool {
	return c.Len() == 0
}

// Counts returns the per-collection sizes, used for cheap change detection
func (c *ContentSet) Counts() [5]int {
	return [5]int{len(c.Threads), len(c.Interviews), len(c.Reportages), len(c.Videos), len(c.Testimonials)}
}
