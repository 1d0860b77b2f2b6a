package ipc

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// socketFramer carries one JSON envelope per websocket text message.
type socketFramer struct {
	conn *websocket.Conn
}

// NewSocketFramer wraps an upgraded websocket connection.
func NewSocketFramer(conn *websocket.Conn) Framer {
	conn.SetReadLimit(maxMessageLength)
	return socketFramer{conn: conn}
}

func (f socketFramer) ReadEnvelope() (Envelope, error) {
	var env Envelope
	if err := f.conn.ReadJSON(&env); err != nil {
		return Envelope{}, fmt.Errorf("read envelope: %w", err)
	}
	return env, nil
}

func (f socketFramer) WriteEnvelope(env Envelope) error {
	f.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := f.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}

func (f socketFramer) Close() error {
	f.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return f.conn.Close()
}
