package notifications

import (
	"sync"
	"testing"
)

func TestInflightKeyedPerPair(t *testing.T) {
	f := newInflight()

	if !f.begin(decisionKey(3, 9)) {
		t.Fatal("first claim should succeed")
	}
	if f.begin(decisionKey(3, 9)) {
		t.Error("duplicate claim for the same pair should fail")
	}
	if !f.begin(decisionKey(3, 10)) {
		t.Error("a different user in the same club must not be blocked")
	}
	if !f.begin(decisionKey(4, 9)) {
		t.Error("the same user in a different club must not be blocked")
	}

	f.end(decisionKey(3, 9))
	if !f.begin(decisionKey(3, 9)) {
		t.Error("claim should succeed again after end")
	}
}

func TestInflightConcurrentClaims(t *testing.T) {
	f := newInflight()
	key := decisionKey(1, 2)

	const n = 32
	wins := make(chan struct{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.begin(key) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 1 {
		t.Errorf("claims won = %d, want exactly 1", won)
	}
}
