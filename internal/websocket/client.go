package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	coachID uuid.UUID

	closeOnce sync.Once

	// sendMu keeps seq order and send order identical.
	sendMu sync.Mutex
	seq    int
}

func NewClient(hub *Hub, conn *websocket.Conn, coachID uuid.UUID) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		coachID: coachID,
	}
}

func (c *Client) CoachID() uuid.UUID {
	return c.coachID
}

// Close stops the write pump. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ERROR [ws.ReadPump] coachID=%s: %v", c.coachID, err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("INVALID_MESSAGE", "Message must be a JSON object with a type")
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeSubscribe, MessageTypeUnsubscribe:
		var payload SubscribePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid subscription payload")
			return
		}
		topic, ok := normalizeTopic(payload.PlanID)
		if !ok {
			c.sendError("INVALID_PLAN_ID", "planId must be a plan UUID or \"*\"")
			return
		}
		sub := subscription{client: c, topic: topic}
		ch := c.hub.subscribe
		if msg.Type == MessageTypeUnsubscribe {
			ch = c.hub.unsubscribe
		}
		select {
		case ch <- sub:
		case <-c.hub.done:
		}

	case MessageTypePing:
		c.sendMessage(MessageTypePong, struct{}{})

	default:
		c.sendError("UNKNOWN_TYPE", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Client) sendError(code, message string) {
	c.sendMessage(MessageTypeError, ErrorPayload{Code: code, Message: message})
}

func (c *Client) sendMessage(t MessageType, payload interface{}) {
	msg, err := NewMessage(t, payload)
	if err != nil {
		log.Printf("ERROR [ws.sendMessage] coachID=%s: %v", c.coachID, err)
		return
	}
	c.deliver(*msg)
}

// deliver stamps msg with this client's next sequence number and queues it.
func (c *Client) deliver(msg Message) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	msg.Seq = c.seq + 1
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ERROR [ws.deliver] coachID=%s type=%s: %v", c.coachID, msg.Type, err)
		return
	}
	if c.trySend(data) {
		c.seq = msg.Seq
	}
}

// trySend drops the message when the client is slow or already closed.
func (c *Client) trySend(data []byte) (sent bool) {
	defer func() {
		// send was closed by the hub.
		if recover() != nil {
			sent = false
		}
	}()
	select {
	case c.send <- data:
		return true
	default:
		log.Printf("ERROR [ws.trySend] coachID=%s: send buffer full, dropping message", c.coachID)
		return false
	}
}
