package database

import (
	"context"
	"contact-book/models"
	"fmt"
	"log/slog"
	"sync"
)

// ==================== LIVE QUERIES ====================

// Query names one of the contact lists that can be observed
type Query int

const (
	QueryAll Query = iota
	QueryFavorites
	QueryNonFavorites
)

func (q Query) String() string {
	switch q {
	case QueryAll:
		return "all"
	case QueryFavorites:
		return "favorites"
	case QueryNonFavorites:
		return "others"
	default:
		return fmt.Sprintf("query(%d)", int(q))
	}
}

// ParseQuery accepts the names produced by Query.String
func ParseQuery(s string) (Query, error) {
	switch s {
	case "", "all":
		return QueryAll, nil
	case "favorites":
		return QueryFavorites, nil
	case "others":
		return QueryNonFavorites, nil
	default:
		return 0, fmt.Errorf("unknown query %q", s)
	}
}

func (r *Repository) run(ctx context.Context, q Query) ([]models.Contact, error) {
	switch q {
	case QueryFavorites:
		return r.GetFavoriteContacts(ctx)
	case QueryNonFavorites:
		return r.GetNonFavoriteContacts(ctx)
	default:
		return r.GetAllContacts(ctx)
	}
}

// Subscription receives the full result of its query on C: once when created
// and again after every mutation that changed the contacts table. C holds at
// most one pending snapshot; an unread snapshot is replaced by a newer one.
type Subscription struct {
	C <-chan []models.Contact

	ch    chan []models.Contact
	query Query
	hub   *liveQueries
	once  sync.Once
}

func (s *Subscription) Query() Query {
	return s.query
}

// Close stops delivery and closes C
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

func (s *Subscription) deliver(contacts []models.Contact) {
	for {
		select {
		case s.ch <- contacts:
			return
		default:
		}
		// Drop the stale snapshot the reader has not picked up yet
		select {
		case <-s.ch:
		default:
		}
	}
}

type liveQueries struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newLiveQueries() *liveQueries {
	return &liveQueries{subs: make(map[*Subscription]struct{})}
}

func (h *liveQueries) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

// publish re-runs every observed query and hands each subscriber its result.
// Holding mu for the whole pass keeps snapshots from being delivered out of order.
func (h *liveQueries) publish(ctx context.Context, r *Repository) {
	ctx = context.WithoutCancel(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subs) == 0 {
		return
	}

	results := make(map[Query][]models.Contact, 3)
	for s := range h.subs {
		contacts, ok := results[s.query]
		if !ok {
			var err error
			contacts, err = r.run(ctx, s.query)
			if err != nil {
				slog.Error("live query failed", "query", s.query.String(), "error", err)
				continue
			}
			results[s.query] = contacts
		}
		s.deliver(contacts)
	}
}

// Subscribe starts observing q. The current result is available on C right away.
func (r *Repository) Subscribe(ctx context.Context, q Query) (*Subscription, error) {
	h := r.live
	h.mu.Lock()
	defer h.mu.Unlock()

	contacts, err := r.run(ctx, q)
	if err != nil {
		return nil, err
	}

	ch := make(chan []models.Contact, 1)
	s := &Subscription{
		C:     ch,
		ch:    ch,
		query: q,
		hub:   h,
	}
	s.deliver(contacts)
	h.subs[s] = struct{}{}

	return s, nil
}
