package databases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ChangeKind says which record set changed
type ChangeKind string

// Change kinds
const (
	OfficersChanged      ChangeKind = "officers"
	ArrestReportsChanged ChangeKind = "arrestReports"
	StatutesChanged      ChangeKind = "statutes"
)

// ChangeEvent tells subscribers that a record set changed and should be refetched
type ChangeEvent struct {
	Kind       ChangeKind `json:"kind"`
	Operation  string     `json:"operation"`
	DocumentID string     `json:"documentId,omitempty"`
	At         time.Time  `json:"at"`
}

// ChangeNotifier lets callers register for change events. The returned func
// removes the subscription.
type ChangeNotifier interface {
	Subscribe(fn func(ChangeEvent)) (unsubscribe func())
}

// ChangePublisher emits change events
type ChangePublisher interface {
	Publish(ChangeEvent)
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish does nothing
func (NopPublisher) Publish(ChangeEvent) {}

// Broker fans change events out to its subscribers
type Broker struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(ChangeEvent)
}

// NewBroker returns a broker with no subscribers
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(ChangeEvent))}
}

// Subscribe registers fn for every future event
func (b *Broker) Subscribe(fn func(ChangeEvent)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Len returns the number of live subscriptions
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish calls every subscriber with e. Subscribers run on the caller's goroutine.
func (b *Broker) Publish(e ChangeEvent) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b.mu.RLock()
	fns := make([]func(ChangeEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}

var watchedCollections = map[string]ChangeKind{
	userName:         OfficersChanged,
	arrestReportName: ArrestReportsChanged,
	statuteName:      StatutesChanged,
}

type changeStreamEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID interface{} `bson:"_id"`
	} `bson:"documentKey"`
}

// WatchChanges opens a change stream on every watched collection and publishes
// what it sees until ctx is done. Requires a replica set.
func WatchChanges(ctx context.Context, db DatabaseHelper, pub ChangePublisher) error {
	for name, kind := range watchedCollections {
		cs, err := db.Collection(name).Watch(ctx, []interface{}{})
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", name, err)
		}
		go forwardChanges(ctx, cs, kind, pub)
	}
	return nil
}

func forwardChanges(ctx context.Context, cs ChangeStreamHelper, kind ChangeKind, pub ChangePublisher) {
	defer cs.Close(context.Background())

	for cs.Next(ctx) {
		var ev changeStreamEvent
		if err := cs.Decode(&ev); err != nil {
			zap.S().Errorw("failed to decode change event", "kind", kind, "error", err)
			continue
		}
		pub.Publish(ChangeEvent{
			Kind:       kind,
			Operation:  ev.OperationType,
			DocumentID: documentID(ev.DocumentKey.ID),
			At:         time.Now(),
		})
	}
	if err := cs.Err(); err != nil && ctx.Err() == nil {
		zap.S().Errorw("change stream stopped", "kind", kind, "error", err)
	}
}

func documentID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
