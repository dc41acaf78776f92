package events

import (
	"context"
	"sync"
)

// ISubscription is a subscriber handle receiving values of type T
type ISubscription[T any] interface {
	// Chan returns a read-only channel holding at most the latest pending value
	Chan() <-chan T
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb with each value.
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(T)) ISubscription[T]
}

// ISubscriptionManager fans values out to subscribers
type ISubscriptionManager[T any] interface {
	Subscribe() ISubscription[T]
	Unsubscribe(ch chan T)
	// Emit delivers value to every subscriber without blocking
	Emit(ctx context.Context, value T)
}

type Subscription[T any] struct {
	ch     chan T
	mgr    *SubscriptionManager[T]
	mu     sync.Mutex
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling events.
func (s *Subscription[T]) Chan() <-chan T { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb with each value.
// When parentCtx finishes, the subscription is automatically cancelled.
func (s *Subscription[T]) Watch(parentCtx context.Context, cb func(T)) ISubscription[T] {
	ctx, cancel := context.WithCancel(parentCtx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go func(ctx context.Context) {
		defer s.Cancel() // cancel subscription on exit
		for {
			select {
			case <-ctx.Done():
				return
			case value, ok := <-s.ch:
				if !ok {
					return
				}
				cb(value)
			}
		}
	}(ctx)

	return s
}

// SubscriptionManager keeps one single-slot channel per subscriber. A slow
// subscriber only ever sees the most recent value.
type SubscriptionManager[T any] struct {
	mu          sync.Mutex
	subscribers map[chan T]struct{}
}

func NewSubscriptionManager[T any]() *SubscriptionManager[T] {
	return &SubscriptionManager[T]{
		subscribers: make(map[chan T]struct{}),
	}
}

func (m *SubscriptionManager[T]) Subscribe() ISubscription[T] {
	ch := make(chan T, 1)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription[T]{ch: ch, mgr: m}
}

func (m *SubscriptionManager[T]) Unsubscribe(ch chan T) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Len returns the number of active subscribers
func (m *SubscriptionManager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers)
}

// Emit delivers value to all subscribers. A pending value that was not read
// yet is replaced, so emits never block.
func (m *SubscriptionManager[T]) Emit(ctx context.Context, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for sub := range m.subscribers {
		if ctx.Err() != nil {
			// Stop sending notifications when the context is cancelled
			return
		}
		select {
		case sub <- value:
			continue
		default:
		}
		// Full: drop the stale value and retry once
		select {
		case <-sub:
		default:
		}
		select {
		case sub <- value:
		default:
		}
	}
}
