package server

import (
	"testing"

	"github.com/Mothman910/decyzjomat/internal/room"
)

var _ room.Publisher = (*Broker)(nil)

func TestBrokerPublishReachesRoomSubscribers(t *testing.T) {
	b := NewBroker()

	ch1 := b.Subscribe("room-a")
	ch2 := b.Subscribe("room-a")
	other := b.Subscribe("room-b")

	b.Publish("room-a", []byte("hello"))

	for i, ch := range []chan []byte{ch1, ch2} {
		select {
		case got := <-ch:
			if string(got) != "hello" {
				t.Errorf("subscriber %d got %q", i, got)
			}
		default:
			t.Errorf("subscriber %d got nothing", i)
		}
	}
	select {
	case got := <-other:
		t.Errorf("room-b subscriber got %q", got)
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("room-a")
	b.Unsubscribe("room-a", ch)

	b.Publish("room-a", []byte("after"))
	select {
	case got := <-ch:
		t.Errorf("unsubscribed channel got %q", got)
	default:
	}
}

func TestBrokerDropsSlowSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("room-a")

	// Fill the buffer and then some; Publish must never block.
	for i := 0; i < cap(ch)+10; i++ {
		b.Publish("room-a", []byte("x"))
	}

	if len(ch) != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", len(ch), cap(ch))
	}
}
