package session

import (
	"time"

	"github.com/gorilla/websocket"
)

// Transport is a message oriented connection. *websocket.Conn provides
// everything but CanWrite and CloseHandshake; NewWebSocketTransport adds them.
type Transport interface {
	// ReadMessage blocks for the next complete message.
	ReadMessage() (messageType int, data []byte, err error)

	// WriteMessage writes one complete message.
	WriteMessage(messageType int, data []byte) error

	// CanWrite reports whether the transport still accepts writes.
	CanWrite() bool

	// CloseHandshake starts the close handshake. Reads keep working until
	// the peer answers.
	CloseHandshake() error

	// Close releases the underlying connection.
	Close() error
}

// Message types, as in RFC 6455.
const (
	TextMessage   = websocket.TextMessage
	BinaryMessage = websocket.BinaryMessage
)

// closeTimeout bounds the close handshake and the drain that follows it.
const closeTimeout = 5 * time.Second

type wsTransport struct {
	conn *websocket.Conn

	closing bool // close frame sent
	failed  bool // read or write error seen
}

// NewWebSocketTransport adapts a gorilla websocket connection.
func NewWebSocketTransport(conn *websocket.Conn) Transport {
	return &wsTransport{conn: conn}
}

func (t *wsTransport) ReadMessage() (int, []byte, error) {
	mt, data, err := t.conn.ReadMessage()
	if err != nil {
		// Either the peer closed (and gorilla already answered) or the
		// connection broke. No further writes are possible in both cases.
		t.failed = true
	}
	return mt, data, err
}

func (t *wsTransport) WriteMessage(messageType int, data []byte) error {
	if err := t.conn.WriteMessage(messageType, data); err != nil {
		t.failed = true
		return err
	}
	return nil
}

func (t *wsTransport) CanWrite() bool {
	return !t.closing && !t.failed
}

func (t *wsTransport) CloseHandshake() error {
	t.closing = true
	deadline := time.Now().Add(closeTimeout)
	err := t.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		deadline,
	)
	if err != nil {
		return err
	}
	return t.conn.SetReadDeadline(deadline)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}
