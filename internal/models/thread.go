package models

import "time"

type ThreadType string

const (
	ThreadTypeText  ThreadType = "text"
	ThreadTypeImage ThreadType = "image"
)

// Thread is a post normalised for display.
type Thread struct {
	ID        string     `json:"id"`
	Author    string     `json:"author"`
	Handle    string     `json:"handle"`
	Avatar    string     `json:"avatar"`
	Content   string     `json:"content"`
	Image     string     `json:"image,omitempty"`
	Likes     int        `json:"likes"`
	Replies   int        `json:"replies"`
	Type      ThreadType `json:"type"`
	Timestamp string     `json:"timestamp"`
	Permalink string     `json:"permalink,omitempty"`
	TopicTag  string     `json:"topic_tag,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`
}

type ThreadCounts struct {
	Text  int `json:"text"`
	Image int `json:"image"`
}

// Manifest summarises the datasets produced by the last feed refresh.
type Manifest struct {
	GeneratedAt           time.Time    `json:"generatedAt"`
	TotalThreads          int          `json:"totalThreads"`
	ByType                ThreadCounts `json:"byType"`
	Sources               []string     `json:"sources"`
	NextUpdateRecommended time.Time    `json:"nextUpdateRecommended"`
	Version               string       `json:"version"`
}

// ThreadDeletion records a thread that vanished from the upstream API.
type ThreadDeletion struct {
	BatchID   string    `json:"batch_id"`
	ThreadID  string    `json:"thread_id"`
	Handle    string    `json:"handle"`
	Reason    string    `json:"reason"`
	DeletedAt time.Time `json:"deletedAt"`
}
