package cache

import (
	"context"
	"sync"
	"time"
)

const (
	EventCartUpdated = "updated"
	EventCartCleared = "cleared"
)

// Notifier fans cart events out to the websocket connections of a session.
type Notifier interface {
	Publish(ctx context.Context, sessionID, event string) error
	// Subscribe returns a channel of events for sessionID. The channel is
	// closed when ctx is done or the returned cancel func is called.
	Subscribe(ctx context.Context, sessionID string) (<-chan string, func())
}

// Blacklist holds revoked admin token ids until they would have expired.
type Blacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan string]struct{}
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[string]map[chan string]struct{})}
}

func (n *MemoryNotifier) Publish(_ context.Context, sessionID, event string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[sessionID] {
		select {
		case ch <- event:
		default:
			// slow reader, it will catch up on the next event
		}
	}
	return nil
}

func (n *MemoryNotifier) Subscribe(ctx context.Context, sessionID string) (<-chan string, func()) {
	ch := make(chan string, 8)
	n.mu.Lock()
	if n.subs[sessionID] == nil {
		n.subs[sessionID] = make(map[chan string]struct{})
	}
	n.subs[sessionID][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[sessionID], ch)
			if len(n.subs[sessionID]) == 0 {
				delete(n.subs, sessionID)
			}
			close(ch)
			n.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel
}

type MemoryBlacklist struct {
	mu sync.Mutex
	m  map[string]time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{m: make(map[string]time.Time)}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[tokenID] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, tokenID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.m[tokenID]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(b.m, tokenID)
		return false
	}
	return true
}
