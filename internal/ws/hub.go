package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/teambuilder-backend/internal/goroutine"
	"github.com/ignatzorin/teambuilder-backend/internal/logger"
)

// Hub управляет всеми WebSocket клиентами, сгруппированными по владельцу.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	ctx        context.Context
	log        logrus.FieldLogger
}

type message struct {
	ownerID string
	payload []byte
}

// NewHub создаёт новый хаб. Run завершается при отмене ctx.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
		ctx:        ctx,
		log:        logger.Get(),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.ownerID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// NotifyOwner отправляет событие во все сессии владельца.
func (h *Hub) NotifyOwner(ownerID, event string, payload interface{}) {
	raw, err := json.Marshal(Outbound{Type: event, Data: payload})
	if err != nil {
		h.log.WithFields(logrus.Fields{"event": event, "error": err.Error()}).Error("ws: не удалось сериализовать событие")
		return
	}

	select {
	case h.broadcast <- message{ownerID: ownerID, payload: raw}:
	case <-h.ctx.Done():
	}
}

// Connections количество открытых соединений владельца.
func (h *Hub) Connections(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[ownerID])
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ownerID]; !ok {
		h.clients[client.ownerID] = make(map[*Client]struct{})
	}
	h.clients[client.ownerID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.ownerID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.ownerID)
		}
	}
}

func (h *Hub) send(ownerID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[ownerID] {
		if !client.enqueue(payload) {
			// медленный клиент отключается
			c := client
			goroutine.SafeGo("ws-close-slow-client", c.Close)
		}
	}
}
