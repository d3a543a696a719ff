// internal/domain/models/user.go
package models

import "strconv"

// User is the session subject: the member record the praise service returns
// from login and /members/me.
//
// NOTE:
//   - Gender carries the wire value ("male" | "female"); use GenderLabel
//     for the localized display form.
//   - SelectedClubID is client state. The backend never returns it; it is
//     kept per browser session and must always name a club in Clubs.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
	Gender       string `json:"gender"` // "male" | "female"
	University   string `json:"university"`
	Clubs        []Club `json:"clubs"`

	SelectedClubID string `json:"selectedClubId"`
}

// HasClub reports whether the user belongs to the club with the given id.
func (u *User) HasClub(clubID string) bool {
	for _, c := range u.Clubs {
		if strconv.FormatInt(c.ID, 10) == clubID {
			return true
		}
	}
	return false
}

// Normalize applies the default club selection: if SelectedClubID is unset
// or no longer names one of the user's clubs, the first club is selected.
// A user with no clubs has no selection.
func (u *User) Normalize() {
	if len(u.Clubs) == 0 {
		u.SelectedClubID = ""
		return
	}
	if u.SelectedClubID == "" || !u.HasClub(u.SelectedClubID) {
		u.SelectedClubID = strconv.FormatInt(u.Clubs[0].ID, 10)
	}
}
