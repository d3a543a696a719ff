// internal/domain/models/club.go
package models

// Club is a club as the praise service reports it, both inside the user's
// membership list and from club detail/search endpoints.
type Club struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	University        string `json:"university"`
	ActiveMemberCount int    `json:"activeMemberCount"`
}

// ClubMember is one member row from /clubs/{id}/members. The backend sends
// userId/avatarUrl; the request client renames those on the way in.
type ClubMember struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
	RequestedAt  string `json:"requestedAt,omitempty"`
}
