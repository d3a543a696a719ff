// internal/app/system/clubctx/clubctx.go
//
// Package clubctx derives the active club for a signed-in member. The
// selection lives in the browser session; this package turns it into the
// club record handlers and templates work with.
package clubctx

import (
	"strconv"

	"cheermate/internal/domain/models"
)

// Active returns the member's active club: the club named by SelectedClubID,
// or the first club when the selection is unset or stale. Nil when the
// member has no clubs.
func Active(u *models.User) *models.Club {
	if u == nil || len(u.Clubs) == 0 {
		return nil
	}
	for i := range u.Clubs {
		if strconv.FormatInt(u.Clubs[i].ID, 10) == u.SelectedClubID {
			return &u.Clubs[i]
		}
	}
	return &u.Clubs[0]
}

// ActiveID returns the active club's numeric id, or zero for clubless members.
func ActiveID(u *models.User) int64 {
	if c := Active(u); c != nil {
		return c.ID
	}
	return 0
}

// Option is one row of the club switcher.
type Option struct {
	ID       string
	Name     string
	Selected bool
}

// Options lists the member's clubs for the switcher, flagging the active one.
func Options(u *models.User) []Option {
	if u == nil {
		return nil
	}
	active := Active(u)
	opts := make([]Option, 0, len(u.Clubs))
	for i := range u.Clubs {
		c := &u.Clubs[i]
		opts = append(opts, Option{
			ID:       strconv.FormatInt(c.ID, 10),
			Name:     c.Name,
			Selected: active != nil && active.ID == c.ID,
		})
	}
	return opts
}
