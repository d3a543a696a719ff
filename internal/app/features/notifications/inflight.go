// internal/app/features/notifications/inflight.go
package notifications

import (
	"fmt"
	"sync"
)

// inflight tracks membership decisions that are still running, keyed per
// (club, user) so one slow approval never blocks the rest of the list.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{keys: make(map[string]struct{})}
}

func decisionKey(clubID, userID int64) string {
	return fmt.Sprintf("%d-%d", clubID, userID)
}

// begin claims the key. False means a decision for this pair is already
// running and the caller must back off.
func (f *inflight) begin(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[key]; busy {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

func (f *inflight) end(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
}
