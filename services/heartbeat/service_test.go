package heartbeat

import (
	"context"
	"testing"
	"time"

	"joypanel-go/bus"
	"joypanel-go/types"
)

func next(t *testing.T, sub *bus.Subscription, within time.Duration) types.HeartbeatValue {
	t.Helper()
	select {
	case m := <-sub.Channel():
		return m.Payload.(types.HeartbeatValue)
	case <-time.After(within):
		t.Fatal("no heartbeat")
	}
	return types.HeartbeatValue{}
}

func TestHeartbeatSequence(t *testing.T) {
	b := bus.NewBus(8)
	sub := b.NewConnection("test").Subscribe(TopicHeartbeat)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &Service{Interval: 5 * time.Millisecond}
	if err := s.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		t.Fatal(err)
	}
	for want := uint32(1); want <= 3; want++ {
		if v := next(t, sub, time.Second); v.Seq != want {
			t.Fatalf("seq=%d want %d", v.Seq, want)
		}
	}
}

func TestHeartbeatIntervalFromConfig(t *testing.T) {
	b := bus.NewBus(8)
	cfg := b.NewConnection("config")
	sub := cfg.Subscribe(TopicHeartbeat)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &Service{Interval: time.Hour}
	_ = s.Start(ctx, b.NewConnection("heartbeat"))
	// Retained, so it applies even if published before the service subscribes.
	cfg.Publish(cfg.NewMessage(TopicConfigHeartbeat, 5*time.Millisecond, true))

	if v := next(t, sub, time.Second); v.Seq != 1 {
		t.Fatalf("seq=%d", v.Seq)
	}
}
