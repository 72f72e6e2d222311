package domain

import "time"

// Document is a single source of policy text loaded into the system.
// Source is a provenance tag such as "txt", "pdf-page" or "sheet:<name>".
type Document struct {
	ID      string
	Source  string
	Content string
}

// Chunk is a retrievable span of source text with a provenance tag.
// Chunks are immutable once created and owned by the corpus for the
// process lifetime.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Source     string
	Index      int
}

// SearchResult is a matching chunk with a cosine similarity score in [-1, 1].
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// User is an employee record sourced from the external row store.
// Row addresses the record for updates; Password is an integer PIN
// as stored in the sheet.
type User struct {
	Username        string
	Password        int
	RemainingLeaves float64
	Grade           string
	Row             int
}

// QueryKind tags the variant of a classified query.
type QueryKind int

const (
	KindPolicyQuestion QueryKind = iota
	KindBalance
	KindLeaveApplication
)

func (k QueryKind) String() string {
	switch k {
	case KindBalance:
		return "balance"
	case KindLeaveApplication:
		return "leave-application"
	default:
		return "policy-question"
	}
}

// Classification is the tagged result of routing a query.
// Days is set only for KindLeaveApplication, Question only for
// KindPolicyQuestion.
type Classification struct {
	Kind     QueryKind
	Days     float64
	Question string
}

// LeaveRecord is one row appended to the leave history on application.
type LeaveRecord struct {
	Username string
	Days     float64
	Date     time.Time
	Status   string
}
