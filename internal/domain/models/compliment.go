// internal/domain/models/compliment.go
package models

// Candidate is a member that can receive a compliment in one category.
type Candidate struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// ComplimentCategory is one praise prompt with the members eligible for it.
// Fetched fresh per club at the start of a praise session and consumed once
// per category.
type ComplimentCategory struct {
	ComplimentID int64       `json:"complimentId"`
	Emoji        string      `json:"emoji"`
	Prompt       string      `json:"prompt"`
	Candidates   []Candidate `json:"candidates"`
}

// PraiseMessage is a received or sent compliment on the profile page.
type PraiseMessage struct {
	ID        int64  `json:"id"`
	Prompt    string `json:"prompt"`
	Emoji     string `json:"emoji"`
	From      string `json:"from,omitempty"` // empty when anonymous
	Anonymous bool   `json:"anonymous"`
	CreatedAt string `json:"createdAt"`
}
