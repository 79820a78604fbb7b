package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAllowUnderLimit(t *testing.T) {
	m := New(5, time.Hour, nil)

	for i := 0; i < 5; i++ {
		if !m.Allow("client") {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
	if m.IsBlocked("client") {
		t.Error("Client should not be blocked under the limit")
	}
}

func TestExceedingLimitBlocksPermanently(t *testing.T) {
	m := New(5, time.Hour, nil)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	m.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if !m.Allow("client") {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	if m.Allow("client") {
		t.Fatal("6th request should be rejected")
	}
	if !m.IsBlocked("client") {
		t.Fatal("Client should be blocked after exceeding the limit")
	}

	// Well past the window the block still holds: the rejected attempt
	// was not recorded, and the block set is never pruned.
	now = base.Add(2 * time.Hour)
	if m.Allow("client") {
		t.Error("Blocked client should stay blocked after the window drains")
	}
	if !m.IsBlocked("client") {
		t.Error("Block should be permanent")
	}
}

func TestWindowSlides(t *testing.T) {
	m := New(2, time.Hour, nil)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	m.now = func() time.Time { return now }

	if !m.Allow("client") || !m.Allow("client") {
		t.Fatal("First two requests should be allowed")
	}

	// 61 minutes later both timestamps have left the window, so the
	// client gets a fresh allowance.
	now = base.Add(61 * time.Minute)
	if !m.Allow("client") {
		t.Error("Request after window drained should be allowed")
	}
	if m.IsBlocked("client") {
		t.Error("Client was never over the limit")
	}
}

func TestClientsAreIndependent(t *testing.T) {
	m := New(1, time.Hour, nil)

	if !m.Allow("a") {
		t.Fatal("First request from a should be allowed")
	}
	if m.Allow("a") {
		t.Fatal("Second request from a should be rejected")
	}
	if !m.Allow("b") {
		t.Error("b should be unaffected by a's block")
	}
	if m.IsBlocked("b") {
		t.Error("b should not be blocked")
	}
}

func TestBlockIsIdempotent(t *testing.T) {
	m := New(5, time.Hour, nil)

	m.Block("client", "manual")
	m.Block("client", "second call")

	if !m.IsBlocked("client") {
		t.Error("Client should be blocked")
	}
	if got := m.blocked["client"]; got != "manual" {
		t.Errorf("Reason = %q, want original reason kept", got)
	}
	if m.Allow("client") {
		t.Error("Blocked client should be rejected")
	}
}

func TestSummary(t *testing.T) {
	m := New(10, time.Hour, nil)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	m.now = func() time.Time { return now }

	m.Allow("a")
	m.Allow("b")
	m.Block("c", "abuse")

	active, blocked := m.Summary()
	if active != 2 || blocked != 1 {
		t.Errorf("Summary() = (%d, %d), want (2, 1)", active, blocked)
	}

	// Stale records are pruned; blocks are kept.
	now = base.Add(2 * time.Hour)
	active, blocked = m.Summary()
	if active != 0 || blocked != 1 {
		t.Errorf("Summary() after window = (%d, %d), want (0, 1)", active, blocked)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New(1000, time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("client-%d", n%3)
			for j := 0; j < 100; j++ {
				m.Allow(id)
				m.IsBlocked(id)
			}
		}(i)
	}
	wg.Wait()

	active, _ := m.Summary()
	if active != 3 {
		t.Errorf("Expected 3 active clients, got %d", active)
	}
}
