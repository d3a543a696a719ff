// internal/app/system/clubctx/clubctx_test.go
package clubctx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cheermate/internal/app/system/clubctx"
	"cheermate/internal/domain/models"
)

func member(selected string, clubIDs ...int64) *models.User {
	u := &models.User{ID: 1, SelectedClubID: selected}
	for _, id := range clubIDs {
		u.Clubs = append(u.Clubs, models.Club{ID: id, Name: "club"})
	}
	return u
}

func TestActive(t *testing.T) {
	t.Run("selected club wins", func(t *testing.T) {
		c := clubctx.Active(member("4", 3, 4))
		require.NotNil(t, c)
		require.Equal(t, int64(4), c.ID)
	})

	t.Run("unset selection falls back to first club", func(t *testing.T) {
		c := clubctx.Active(member("", 3, 4))
		require.NotNil(t, c)
		require.Equal(t, int64(3), c.ID)
	})

	t.Run("stale selection falls back to first club", func(t *testing.T) {
		c := clubctx.Active(member("9", 3, 4))
		require.NotNil(t, c)
		require.Equal(t, int64(3), c.ID)
	})

	t.Run("clubless member has no active club", func(t *testing.T) {
		require.Nil(t, clubctx.Active(member("3")))
		require.Nil(t, clubctx.Active(nil))
		require.Zero(t, clubctx.ActiveID(member("")))
	})
}

func TestOptionsFlagActive(t *testing.T) {
	opts := clubctx.Options(member("4", 3, 4))
	require.Len(t, opts, 2)
	require.False(t, opts[0].Selected)
	require.True(t, opts[1].Selected)
	require.Equal(t, "3", opts[0].ID)
}
