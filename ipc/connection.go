package ipc

import (
	"log/slog"
	"net"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Framer moves whole envelopes over a transport.
type Framer interface {
	ReadEnvelope() (Envelope, error)
	WriteEnvelope(env Envelope) error
	Close() error
}

// streamFramer frames envelopes with a length prefix over a byte stream.
type streamFramer struct {
	conn net.Conn
}

// NewStreamFramer wraps a stream connection (unix socket, TCP).
func NewStreamFramer(conn net.Conn) Framer {
	return streamFramer{conn: conn}
}

func (f streamFramer) ReadEnvelope() (Envelope, error)  { return ReadEnvelope(f.conn) }
func (f streamFramer) WriteEnvelope(env Envelope) error { return WriteEnvelope(f.conn, env) }
func (f streamFramer) Close() error                     { return f.conn.Close() }

// Connection represents a single host bridge talking to the agent.
// Each controlled faction gets its own connection.
type Connection struct {
	framer   Framer
	handlers map[string]Handler
}

func NewConnection(framer Framer, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		framer:   framer,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.framer.WriteEnvelope(env)
}

// ReadLoop blocks until the connection closes or errors. It owns the framer
// lifetime so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.framer.Close()

	for {
		env, err := c.framer.ReadEnvelope()
		if err != nil {
			slog.Info("connection read ended", "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.framer.WriteEnvelope(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type)
		}
	}
}
