package feed

import (
	"sync"
	"time"

	"complaintbox/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// WebSocketClient streams events to one admin browser. Admins never send
// anything but control frames, so the read pump only tracks liveness.
type WebSocketClient struct {
	AdminID uint
	Conn    *websocket.Conn
	Hub     *Hub
	Send    chan models.ComplaintEvent

	closeOnce sync.Once
}

func NewWebSocketClient(hub *Hub, conn *websocket.Conn, adminID uint) *WebSocketClient {
	return &WebSocketClient{
		AdminID: adminID,
		Conn:    conn,
		Hub:     hub,
		Send:    make(chan models.ComplaintEvent, sendBuffer),
	}
}

func (c *WebSocketClient) GetSendChannel() chan<- models.ComplaintEvent { return c.Send }

func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// Run registers the client and starts its pumps. It closes the connection
// when the hub has already stopped.
func (c *WebSocketClient) Run() {
	if !c.Hub.Register(c) {
		c.Conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.Log.WithError(err).WithField("admin_id", c.AdminID).Debug("feed read error")
			}
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
