package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/teambuilder-backend/internal/goroutine"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client представляет одно подключение WebSocket.
type Client struct {
	conn      *websocket.Conn
	hub       *Hub
	ownerID   string
	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

// NewClient создаёт нового клиента.
func NewClient(conn *websocket.Conn, hub *Hub, ownerID string) *Client {
	return &Client{
		conn:    conn,
		hub:     hub,
		ownerID: ownerID,
		send:    make(chan []byte, 16),
		done:    make(chan struct{}),
	}
}

// Emit ставит сообщение в очередь отправки; при переполненной очереди сообщение отбрасывается.
func (c *Client) Emit(msg Outbound) {
	raw, err := json.Marshal(msg)
	if err != nil {
		c.hub.log.WithFields(logrus.Fields{"type": msg.Type, "error": err.Error()}).Error("ws: не удалось сериализовать сообщение")
		return
	}
	if !c.enqueue(raw) {
		c.hub.log.WithFields(logrus.Fields{"type": msg.Type, "owner": c.ownerID}).Warn("ws: очередь клиента переполнена")
	}
}

func (c *Client) enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Run обслуживает соединение до его закрытия; сообщения передаются в session.
func (c *Client) Run(ctx context.Context, session *Session) {
	goroutine.SafeGo("ws-write-pump", c.writePump)
	session.Start()
	c.readPump(ctx, session)
}

// Close закрывает соединение.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.hub.Unregister(c)
		c.conn.Close()
	})
}

func (c *Client) readPump(ctx context.Context, session *Session) {
	defer func() {
		session.Close()
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.WithFields(logrus.Fields{"owner": c.ownerID, "error": err.Error()}).Warn("ws: соединение разорвано")
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.Emit(Outbound{Type: TypeError, Data: ErrorPayload{Message: "некорректный JSON"}})
			continue
		}
		session.Handle(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
