package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/teambuilder-backend/internal/http/middleware"
	"github.com/ignatzorin/teambuilder-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений живого поиска.
type WSHandler struct {
	hub      *ws.Hub
	tokens   middleware.TokenParser
	fetcher  ws.PageFetcher
	debounce time.Duration
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер. Разрешённые origins совпадают с CORS.
func NewWSHandler(hub *ws.Hub, tokens middleware.TokenParser, fetcher ws.PageFetcher, debounce time.Duration, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &WSHandler{
		hub:      hub,
		tokens:   tokens,
		fetcher:  fetcher,
		debounce: debounce,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Handle обслуживает GET /api/ws?token=...
func (h *WSHandler) Handle(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access токен обязателен"})
		return
	}

	ownerID, err := h.tokens.ParseAccess(rawToken)
	if err != nil || ownerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "невалидный access токен"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту.
		return
	}

	ctx := c.Request.Context()
	client := ws.NewClient(conn, h.hub, ownerID)
	h.hub.Register(client)

	session := ws.NewSession(ctx, h.fetcher, h.debounce, client.Emit)
	client.Run(ctx, session)
}
