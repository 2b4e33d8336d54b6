package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type chanSink struct {
	got chan Event
}

func (s *chanSink) Deliver(e Event) { s.got <- e }

func TestAsyncDispatcherDelivers(t *testing.T) {
	sink := &chanSink{got: make(chan Event, 8)}
	d := NewAsyncDispatcher(zap.NewNop(), sink)
	defer d.Close()

	d.Enqueue(ArrivalEvent{SellerID: 1, LocationID: 2})
	d.Enqueue(DepartureEvent{SellerID: 1})

	select {
	case e := <-sink.got:
		assert.Equal(t, "seller_arrival", e.Name())
	case <-time.After(time.Second):
		t.Fatal("arrival event never delivered")
	}
	select {
	case e := <-sink.got:
		assert.Equal(t, "seller_departure", e.Name())
	case <-time.After(time.Second):
		t.Fatal("departure event never delivered")
	}
}

func TestEnqueueNeverBlocks(t *testing.T) {
	// no sink drains; the buffer fills and Enqueue keeps returning
	d := NewAsyncDispatcher(zap.NewNop())
	defer d.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			d.Enqueue(ModerationAlertEvent{ReviewID: uint(i), Reason: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked")
	}
}
