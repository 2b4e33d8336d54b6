// Package notify is the boundary to the notification collaborators. The
// domain core enqueues events and forgets about them; delivery problems are
// logged here and never reach the caller.
package notify

import (
	"go.uber.org/zap"
)

type Event interface {
	Name() string
}

// ArrivalEvent announces a seller starting to broadcast from a location.
type ArrivalEvent struct {
	SellerID   uint `json:"sellerId"`
	LocationID uint `json:"locationId"`
}

func (ArrivalEvent) Name() string { return "seller_arrival" }

// DepartureEvent announces a seller stopping their broadcast.
type DepartureEvent struct {
	SellerID uint `json:"sellerId"`
}

func (DepartureEvent) Name() string { return "seller_departure" }

// ModerationAlertEvent announces a review entering the moderation queue.
type ModerationAlertEvent struct {
	ReviewID uint   `json:"reviewId"`
	Reason   string `json:"reason"`
}

func (ModerationAlertEvent) Name() string { return "moderation_alert" }

// Dispatcher is what the domain services see.
type Dispatcher interface {
	Enqueue(e Event)
}

// Sink receives events from the dispatcher. The ws presence hub and the log
// sink both implement it.
type Sink interface {
	Deliver(e Event)
}

// AsyncDispatcher fans events out to its sinks from a single goroutine.
// Enqueue never blocks: when the buffer is full the event is dropped and
// logged, because notification delivery is best-effort by contract.
type AsyncDispatcher struct {
	ch    chan Event
	done  chan struct{}
	sinks []Sink
	log   *zap.Logger
}

func NewAsyncDispatcher(log *zap.Logger, sinks ...Sink) *AsyncDispatcher {
	d := &AsyncDispatcher{
		ch:    make(chan Event, 256),
		done:  make(chan struct{}),
		sinks: sinks,
		log:   log,
	}
	go d.run()
	return d
}

func (d *AsyncDispatcher) Enqueue(e Event) {
	select {
	case d.ch <- e:
	default:
		d.log.Warn("notification queue full, dropping event", zap.String("event", e.Name()))
	}
}

func (d *AsyncDispatcher) run() {
	for {
		select {
		case e := <-d.ch:
			for _, s := range d.sinks {
				s.Deliver(e)
			}
		case <-d.done:
			return
		}
	}
}

func (d *AsyncDispatcher) Close() {
	close(d.done)
}

// LogSink records events through the structured logger. Stands in for the
// real push pipeline, which lives outside this backend.
type LogSink struct {
	Log *zap.Logger
}

func (s *LogSink) Deliver(e Event) {
	switch ev := e.(type) {
	case ArrivalEvent:
		s.Log.Info("dispatching arrival notification",
			zap.Uint("sellerId", ev.SellerID), zap.Uint("locationId", ev.LocationID))
	case DepartureEvent:
		s.Log.Info("seller departed", zap.Uint("sellerId", ev.SellerID))
	case ModerationAlertEvent:
		s.Log.Info("review flagged for moderation",
			zap.Uint("reviewId", ev.ReviewID), zap.String("reason", ev.Reason))
	default:
		s.Log.Warn("unknown notification event", zap.String("event", e.Name()))
	}
}
