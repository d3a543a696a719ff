// internal/backend/clubs_test.go
package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"cheermate/internal/domain/models"
)

func TestSearchClubsFoldsIDSpellings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clubs/search", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "체스", r.URL.Query().Get("q"))
		w.Write([]byte(`[
			{"id": 1, "name": "Chess"},
			{"clubId": 2, "name": "Speed Chess"}
		]`))
	})

	c, _ := newTestClient(t, mux)
	clubs, err := c.WithAuth("s=1").SearchClubs(context.Background(), "체스")
	require.NoError(t, err)
	require.Len(t, clubs, 2)
	require.Equal(t, int64(1), clubs[0].ID)
	require.Equal(t, int64(2), clubs[1].ID)
}

func TestMembersCountFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"count", `{"count": 9, "members": []}`, 9},
		{"memberCount", `{"memberCount": 4, "members": []}`, 4},
		{"activeMemberCount", `{"activeMemberCount": 3, "members": []}`, 3},
		{"derived from rows", `{"members": [{"id":1},{"id":2}]}`, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			got, err := c.WithAuth("s=1").Members(context.Background(), 5, true)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Count)
		})
	}
}

func TestJoinClubReturnsRequestStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/clubs/5/join", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"clubId": 5, "userId": 7, "requestStatus": "PENDING"}`))
	})

	c, _ := newTestClient(t, mux)
	jr, err := c.WithAuth("s=1").JoinClub(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, models.RequestPending, jr.RequestStatus)
}

func TestDeleteClubHitsClubRoute(t *testing.T) {
	var hit string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.WithAuth("s=1").DeleteClub(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "DELETE /api/clubs/5", hit)
}

func TestApproveMemberHitsDecisionRoute(t *testing.T) {
	var hit string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.Method + " " + r.URL.Path
		json.NewEncoder(w).Encode(models.JoinRequest{ClubID: 5, UserID: 7, RequestStatus: models.RequestApproved})
	}))

	jr, err := c.WithAuth("s=1").ApproveMember(context.Background(), 5, 7)
	require.NoError(t, err)
	require.Equal(t, "POST /api/clubs/5/members/7/approve", hit)
	require.Equal(t, models.RequestApproved, jr.RequestStatus)
}

func TestCategoriesAcceptsUsersSpelling(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/compliments/clubs/5", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"complimentId": 11, "emoji": "🔥", "prompt": "Always shows up",
			 "users": [{"userId": 7, "name": "Ana", "avatarUrl": "/a.png"}]},
			{"complimentId": 12, "emoji": "🧠", "prompt": "Sharp thinker",
			 "candidates": [{"id": 8, "name": "Bo"}]}
		]`))
	})

	c, _ := newTestClient(t, mux)
	cats, err := c.WithAuth("s=1").Categories(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	require.Equal(t, int64(7), cats[0].Candidates[0].ID)
	require.Equal(t, "/a.png", cats[0].Candidates[0].ProfileImage)
	require.Equal(t, int64(8), cats[1].Candidates[0].ID)
}

func TestSendComplimentPayload(t *testing.T) {
	var got map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/compliments/select", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	c, _ := newTestClient(t, mux)
	err := c.WithAuth("s=1").SendCompliment(context.Background(), 11, 7, true)
	require.NoError(t, err)
	require.Equal(t, float64(11), got["complimentId"])
	require.Equal(t, float64(7), got["userId"])
	require.Equal(t, true, got["anonymity"])
}

func TestClubSentRankIsArrayPosition(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rankings/clubs/5/sent", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"rank": 99, "userId": 7, "name": "Ana", "count": 12},
			{"rank": 99, "userId": 8, "name": "Bo", "count": 9}
		]`))
	})

	c, _ := newTestClient(t, mux)
	entries, err := c.WithAuth("s=1").ClubSent(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, 2, entries[1].Rank)
}

func TestGlobalSentKeepsBackendRank(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rankings/global/sent", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"rank": 3, "userId": 7, "name": "Ana", "count": 12}]`))
	})

	c, _ := newTestClient(t, mux)
	entries, err := c.WithAuth("s=1").GlobalSent(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, 3, entries[0].Rank)
}
