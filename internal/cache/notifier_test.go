package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryNotifierDeliversToSessionOnly(t *testing.T) {
	n := NewMemoryNotifier()
	ctx := context.Background()

	a, cancelA := n.Subscribe(ctx, "a")
	defer cancelA()
	b, cancelB := n.Subscribe(ctx, "b")
	defer cancelB()

	if err := n.Publish(ctx, "a", EventCartUpdated); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-a:
		if ev != EventCartUpdated {
			t.Fatalf("event = %q", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event for subscriber a")
	}

	select {
	case ev := <-b:
		t.Fatalf("subscriber b got %q", ev)
	default:
	}
}

func TestMemoryNotifierClosesOnContextDone(t *testing.T) {
	n := NewMemoryNotifier()
	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := n.Subscribe(ctx, "a")
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// publishing to a session without subscribers is a no-op
	if err := n.Publish(context.Background(), "a", EventCartCleared); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryBlacklist(t *testing.T) {
	b := NewMemoryBlacklist()
	ctx := context.Background()
	if b.IsRevoked(ctx, "t1") {
		t.Fatal("fresh token revoked")
	}
	_ = b.Revoke(ctx, "t1", time.Hour)
	if !b.IsRevoked(ctx, "t1") {
		t.Fatal("revoked token accepted")
	}
	_ = b.Revoke(ctx, "t2", -time.Second)
	if b.IsRevoked(ctx, "t2") {
		t.Fatal("expired revocation still active")
	}
}
