// Package live pushes the full current document set of a collection to
// websocket subscribers whenever the collection changes. The public
// listing pages consume it; the editor does not.
package live

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// FetchFunc loads the complete current set of a collection.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Subscription delivers a signal on C for every change to its
// collection. The subscriber re-fetches the snapshot on each signal.
type Subscription struct {
	C      chan struct{}
	hub    *Hub
	name   string
	cancel sync.Once
}

// Cancel detaches the subscription from the hub.
func (s *Subscription) Cancel() {
	s.cancel.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs[s.name], s)
		s.hub.mu.Unlock()
	})
}

// Hub fans collection change signals out to subscribers.
type Hub struct {
	log *logrus.Logger

	mu    sync.Mutex
	fetch map[string]FetchFunc
	subs  map[string]map[*Subscription]struct{}
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.New()
	}
	return &Hub{
		log:   log,
		fetch: make(map[string]FetchFunc),
		subs:  make(map[string]map[*Subscription]struct{}),
	}
}

// Register makes a collection subscribable.
func (h *Hub) Register(collection string, fn FetchFunc) {
	h.mu.Lock()
	h.fetch[collection] = fn
	h.mu.Unlock()
}

// Known reports whether a collection is registered.
func (h *Hub) Known(collection string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.fetch[collection]
	return ok
}

// Snapshot loads the full current set for a collection.
func (h *Hub) Snapshot(ctx context.Context, collection string) (interface{}, error) {
	h.mu.Lock()
	fn := h.fetch[collection]
	h.mu.Unlock()
	return fn(ctx)
}

// Subscribe attaches a subscriber to a collection.
func (h *Hub) Subscribe(collection string) *Subscription {
	sub := &Subscription{C: make(chan struct{}, 1), hub: h, name: collection}
	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[*Subscription]struct{})
	}
	h.subs[collection][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Notify signals every subscriber of a collection. Signals coalesce: a
// subscriber that has not drained its pending signal gets no duplicate.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[collection] {
		select {
		case sub.C <- struct{}{}:
		default:
		}
	}
}
