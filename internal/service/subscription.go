package service

import (
	"sync"

	"github.com/MKhiriev/cyber-aware/models"
)

// Subscription delivers session transitions to one listener.
//
// The queue behind Events is unbounded: publishing never blocks and never
// drops, so a slow listener sees every event in order.
type Subscription struct {
	events chan models.AuthEvent
	signal chan struct{}
	done   chan struct{}

	mu     sync.Mutex
	queue  []models.AuthEvent
	closed bool
	once   sync.Once

	remove func(*Subscription)
}

func newSubscription(remove func(*Subscription)) *Subscription {
	s := &Subscription{
		events: make(chan models.AuthEvent),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
		remove: remove,
	}
	go s.pump()
	return s
}

// Events returns the channel events are delivered on. It is closed after
// Unsubscribe.
func (s *Subscription) Events() <-chan models.AuthEvent {
	return s.events
}

// Unsubscribe stops delivery. Pending events are discarded. Safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.queue = nil
		s.mu.Unlock()

		if s.remove != nil {
			s.remove(s)
		}
		close(s.done)
	})
}

func (s *Subscription) publish(event models.AuthEvent) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, event)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Subscription) pump() {
	defer close(s.events)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.signal:
				continue
			case <-s.done:
				return
			}
		}
		event := s.queue[0]
		s.queue[0] = models.AuthEvent{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}

// broadcaster fans events out to every live subscription.
type broadcaster struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[*Subscription]struct{})}
}

func (b *broadcaster) subscribe() *Subscription {
	s := newSubscription(b.unsubscribe)

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	return s
}

func (b *broadcaster) unsubscribe(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

// publish enqueues event on every subscription. Concurrent publishes
// reach all subscribers in the same order.
func (b *broadcaster) publish(event models.AuthEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for s := range b.subs {
		s.publish(event)
	}
}
