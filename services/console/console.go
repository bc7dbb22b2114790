// Package console renders bus telemetry as one text line per message on a
// serial writer, and parses those lines back for host tooling.
package console

import (
	"context"
	"io"

	"joypanel-go/bus"
	"joypanel-go/types"
	"joypanel-go/x/conv"
	"joypanel-go/x/strx"
)

const DefaultPrefix = "[joy]"

// Kinds, taken from the last topic level.
const (
	KindState     = "state"
	KindStats     = "stats"
	KindFault     = "fault"
	KindHeartbeat = "heartbeat"
)

var TopicAll = bus.T("joy", "#")

type Console struct {
	conn   *bus.Connection
	w      io.Writer
	prefix string

	line []byte
}

func New(conn *bus.Connection, w io.Writer, prefix string) *Console {
	return &Console{
		conn:   conn,
		w:      w,
		prefix: strx.Coalesce(prefix, DefaultPrefix),
		line:   make([]byte, 0, 128),
	}
}

// Run writes every joy/... message until ctx is cancelled or the subscription
// is closed. Write errors are logged and do not stop the console.
func (c *Console) Run(ctx context.Context) error {
	sub := c.conn.Subscribe(TopicAll)
	defer c.conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-sub.Channel():
			if !ok {
				return nil
			}
			if err := c.Write(m); err != nil {
				println("[console] write failed:", err.Error())
			}
		}
	}
}

// Write formats one message. Payloads of unknown type are skipped.
func (c *Console) Write(m *bus.Message) error {
	b := c.Format(m)
	if b == nil {
		return nil
	}
	_, err := c.w.Write(b)
	return err
}

// Format builds the line for m (newline terminated) into the console's
// buffer. The slice is valid until the next call; nil means nothing to print.
func (c *Console) Format(m *bus.Message) []byte {
	c.line = c.line[:0]
	switch v := m.Payload.(type) {
	case types.ControlValue:
		c.head(KindState)
		c.putFlag("pwm", v.PWMEnabled)
		c.putFlag("green", v.GreenLEDOn)
		c.putUint("border", uint64(v.BorderStyle))
	case types.StatsValue:
		c.head(KindStats)
		c.putUint("frames", uint64(v.Frames))
		c.putUint("accepted", uint64(v.Accepted))
		c.putUint("rejected", uint64(v.Rejected))
		c.putUint("red", uint64(v.Red))
		c.putUint("blue", uint64(v.Blue))
		c.putInt("x", int64(v.MarkerX))
		c.putInt("y", int64(v.MarkerY))
	case types.FaultValue:
		c.head(KindFault)
		c.putStr("code", v.Code)
		if v.Op != "" {
			c.putStr("op", v.Op)
		}
	case types.HeartbeatValue:
		c.head(KindHeartbeat)
		c.putUint("seq", uint64(v.Seq))
		c.putUint("uptime", uint64(v.UptimeS))
	default:
		return nil
	}
	c.line = append(c.line, '\n')
	return c.line
}

func (c *Console) head(kind string) {
	c.line = append(c.line, c.prefix...)
	c.line = append(c.line, ' ')
	c.line = append(c.line, kind...)
}

func (c *Console) key(k string) {
	c.line = append(c.line, ' ')
	c.line = append(c.line, k...)
	c.line = append(c.line, '=')
}

func (c *Console) putStr(k, v string) {
	c.key(k)
	c.line = append(c.line, v...)
}

func (c *Console) putUint(k string, v uint64) {
	c.key(k)
	c.line = conv.AppendUint(c.line, v)
}

func (c *Console) putInt(k string, v int64) {
	c.key(k)
	c.line = conv.AppendInt(c.line, v)
}

func (c *Console) putFlag(k string, on bool) {
	if on {
		c.putUint(k, 1)
	} else {
		c.putUint(k, 0)
	}
}
