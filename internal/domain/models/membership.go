// internal/domain/models/membership.go
package models

// Join request statuses. A join starts PENDING and moves to APPROVED or
// REJECTED only through an admin action on the club.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// JoinRequest is the membership record between a user and a club.
type JoinRequest struct {
	ClubID        int64  `json:"clubId"`
	UserID        int64  `json:"userId"`
	RequestStatus string `json:"requestStatus"`
}
