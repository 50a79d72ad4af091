package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/monocle-dev/storefront/internal/types"
	"github.com/monocle-dev/storefront/internal/utils"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// CartHub keeps every open cart socket per user and pushes a cart_updated
// event to them after each committed cart mutation.
type CartHub struct {
	mu       sync.RWMutex
	clients  map[uint]map[*socket]bool
	upgrader websocket.Upgrader
}

// socket serializes writers; gorilla allows one at a time.
type socket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *socket) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return s.conn.WriteJSON(v)
}

func NewCartHub(origins []string) *CartHub {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	return &CartHub{
		clients: make(map[uint]map[*socket]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return allowed[r.Header.Get("Origin")]
			},
		},
	}
}

// CartChanged implements services.CartNotifier.
func (h *CartHub) CartChanged(userID, cartID uint) {
	h.broadcast(userID, types.CartEvent{Type: "cart_updated", CartID: cartID})
}

// Connections reports how many sockets the user has open.
func (h *CartHub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

func (h *CartHub) broadcast(userID uint, event types.CartEvent) {
	h.mu.RLock()
	clients, exists := h.clients[userID]
	if !exists || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so no lock is held while writing.
	sockets := make([]*socket, 0, len(clients))
	for s := range clients {
		sockets = append(sockets, s)
	}
	h.mu.RUnlock()

	for _, s := range sockets {
		if err := s.send(event); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to push cart event")
			h.remove(userID, s)
			s.conn.Close()
		}
	}
}

func (h *CartHub) add(userID uint, s *socket) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*socket]bool)
	}
	h.clients[userID][s] = true
}

func (h *CartHub) remove(userID uint, s *socket) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[userID]; exists {
		delete(clients, s)

		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// CartSocket upgrades an authenticated request and holds the connection
// until the client goes away.
func (h *Handler) CartSocket(c *gin.Context) {
	userID, err := utils.GetCurrentUserID(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := h.hub.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	s := &socket{conn: conn}

	// Welcome first so it precedes any broadcast on this socket.
	if err := s.send(types.CartEvent{Type: "connected"}); err != nil {
		conn.Close()
		log.WithError(err).Warn("Failed to send welcome message")
		return
	}

	h.hub.add(userID, s)

	defer func() {
		h.hub.remove(userID, s)
		conn.Close()

		log.WithField("user_id", userID).Debug("Cart socket closed")
	}()

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).WithField("user_id", userID).Warn("Cart socket error")
			}
			break
		}
	}
}
