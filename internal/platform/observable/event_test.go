package observable_test

import (
	"testing"

	"sleeptracker/internal/platform/observable"
)

func TestEventStaysPendingUntilAck(t *testing.T) {
	t.Parallel()
	e := observable.NewEvent[int]()
	if _, ok := e.Peek(); ok {
		t.Fatalf("new event must be idle")
	}

	e.Raise(7)
	for i := 0; i < 2; i++ {
		v, ok := e.Peek()
		if !ok || v != 7 {
			t.Fatalf("peek %d: expected pending 7, got %d %v", i, v, ok)
		}
	}

	e.Ack()
	if _, ok := e.Peek(); ok {
		t.Fatalf("event must be idle after ack")
	}
}

func TestEventConsumeTakesOnce(t *testing.T) {
	t.Parallel()
	e := observable.NewEvent[string]()
	e.Raise("night")

	v, ok := e.Consume()
	if !ok || v != "night" {
		t.Fatalf("expected night, got %q %v", v, ok)
	}
	if _, ok := e.Consume(); ok {
		t.Fatalf("second consume must report nothing pending")
	}
}

func TestAckOnIdleEventDoesNotNotify(t *testing.T) {
	t.Parallel()
	e := observable.NewEvent[int]()
	calls := 0
	e.Subscribe(func(observable.Pending[int]) { calls++ })
	e.Ack()
	if calls != 0 {
		t.Fatalf("idle ack notified %d times", calls)
	}
	e.Raise(1)
	e.Ack()
	if calls != 2 {
		t.Fatalf("expected raise and ack notifications, got %d", calls)
	}
}

func TestFlagRaiseAndAck(t *testing.T) {
	t.Parallel()
	f := observable.NewFlag()
	var seen []bool
	f.Subscribe(func(b bool) { seen = append(seen, b) })

	f.Raise()
	if !f.Get() {
		t.Fatalf("flag must be set after raise")
	}
	f.Ack()
	f.Ack()
	if f.Get() {
		t.Fatalf("flag must reset after ack")
	}
	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Fatalf("expected [true false], got %v", seen)
	}
}
