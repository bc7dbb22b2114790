// Package heartbeat publishes a liveness tick on the bus so the console shows
// the board is up even when nothing changes.
package heartbeat

import (
	"context"
	"time"

	"joypanel-go/bus"
	"joypanel-go/types"
)

var (
	TopicHeartbeat       = bus.T("joy", "heartbeat")
	TopicConfigHeartbeat = bus.T("config", "heartbeat")
)

const DefaultInterval = 5 * time.Second

// Service emits types.HeartbeatValue every interval. A time.Duration
// published on config/heartbeat changes the interval; non-positive values
// are ignored.
type Service struct {
	Interval time.Duration

	start time.Time
	seq   uint32
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(TopicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case t := <-tick.C:
			s.beat(conn, t)
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				return
			}
			if d, ok := msg.Payload.(time.Duration); ok && d > 0 {
				tick.Reset(d)
				println("[heartbeat] interval set to", d.String())
			}
		}
	}
}

func (s *Service) beat(conn *bus.Connection, now time.Time) {
	s.seq++
	conn.Publish(conn.NewMessage(TopicHeartbeat, types.HeartbeatValue{
		Seq:     s.seq,
		UptimeS: uint32(now.Sub(s.start) / time.Second),
	}, false))
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	s.start = time.Now()
	go s.serviceLoop(ctx, conn)
	return nil
}
