package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	maxMessageSize = 4096
	sendBuffer     = 64
)

// BookingEvent is pushed to every connected administrator.
type BookingEvent struct {
	Type      string         `json:"type"`
	Message   domain.Message `json:"message"`
	Timestamp string         `json:"timestamp"`
}

// Client is one administrator connection.
type Client struct {
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *BookingHub
}

// BookingHub fans booking events out to connected administrators.
type BookingHub struct {
	clients map[*Client]struct{}

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	logger *zap.Logger
	mutex  sync.RWMutex
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

func NewBookingHub(logger *zap.Logger) *BookingHub {
	return &BookingHub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled. All
// connections are closed on exit.
func (h *BookingHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			h.mutex.Unlock()
			h.logger.Info("администратор подключен к ленте заявок", zap.Int64("user_id", client.UserID))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.logger.Info("администратор отключен от ленты заявок", zap.Int64("user_id", client.UserID))

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.logger.Warn("очередь клиента переполнена, событие пропущено", zap.Int64("user_id", client.UserID))
				}
			}
			h.mutex.RUnlock()
		}
	}
}

func (h *BookingHub) BookingCreated(msg domain.Message) {
	h.publish(EventBookingCreated, msg)
}

func (h *BookingHub) BookingStatusChanged(msg domain.Message) {
	h.publish(EventBookingStatusChanged, msg)
}

// publish never blocks the request that produced the event.
func (h *BookingHub) publish(eventType string, msg domain.Message) {
	data, err := json.Marshal(BookingEvent{
		Type:      eventType,
		Message:   msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error("не удалось сериализовать событие", zap.String("type", eventType), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("очередь событий переполнена", zap.String("type", eventType), zap.Int64("id", msg.ID))
	}
}

// ClientCount returns the number of connected administrators.
func (h *BookingHub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

// Serve upgrades an already authenticated request and attaches it to the hub.
func (h *BookingHub) Serve(w http.ResponseWriter, r *http.Request, userID int64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("не удалось установить websocket соединение", zap.Error(err))
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		Hub:    h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump only drains control frames. Administrators do not send events.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ошибка websocket соединения", zap.Int64("user_id", c.UserID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Error("не удалось отправить событие", zap.Int64("user_id", c.UserID), zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
