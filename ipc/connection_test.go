package ipc

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const typePing = "ping"

func echoHandlers() map[string]Handler {
	return map[string]Handler{
		typePing: func(env Envelope) (*Envelope, error) {
			reply := Envelope{Type: TypeAck, Data: env.Data}
			return &reply, nil
		},
	}
}

func TestConnectionOverStream(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	done := make(chan struct{})
	go func() {
		NewConnection(NewStreamFramer(server), echoHandlers()).ReadLoop()
		close(done)
	}()

	unknown, err := NewEnvelope("mystery", nil)
	require.NoError(t, err)
	require.NoError(t, WriteEnvelope(client, unknown))

	ping, err := NewEnvelope(typePing, AckMessage{Status: "hi"})
	require.NoError(t, err)
	require.NoError(t, WriteEnvelope(client, ping))

	reply, err := ReadEnvelope(client)
	require.NoError(t, err)
	assert.Equal(t, TypeAck, reply.Type)
	assert.JSONEq(t, `{"status":"hi"}`, string(reply.Data))

	client.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLoop did not return after the peer closed")
	}
}

func TestConnectionOverWebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}
		NewConnection(NewSocketFramer(conn), echoHandlers()).ReadLoop()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	ping, err := NewEnvelope(typePing, AckMessage{Status: "over ws"})
	require.NoError(t, err)
	require.NoError(t, client.WriteJSON(ping))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var reply Envelope
	require.NoError(t, client.ReadJSON(&reply))
	assert.Equal(t, TypeAck, reply.Type)
	assert.JSONEq(t, `{"status":"over ws"}`, string(reply.Data))
}
