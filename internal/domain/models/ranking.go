// internal/domain/models/ranking.go
package models

// RankingEntry is one row of a ranking list. For club-sent rankings the
// backend's rank field is discarded and Rank is reassigned from the row's
// 1-based position in the response.
type RankingEntry struct {
	Rank         int    `json:"rank"`
	UserID       int64  `json:"userId"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
	Count        int    `json:"count"`
}

// Badge is an achievement badge. Earned reports whether the current member
// holds it.
type Badge struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}
