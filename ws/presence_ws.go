package ws

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rafaelbressan/marmitas.top/notify"
)

// PresenceHub pushes seller arrival and departure events to connected
// clients over WebSocket. Clients subscribe either to everything (the map
// view) or to a single seller (a seller detail screen).
type PresenceHub struct {
	clients    map[*websocket.Conn]subscription
	broadcast  chan presenceMessage
	register   chan registration
	unregister chan *websocket.Conn
	mu         sync.Mutex
	log        *zap.Logger
}

type subscription struct {
	// sellerID == 0 means subscribed to all sellers
	sellerID uint
}

type registration struct {
	conn *websocket.Conn
	sub  subscription
}

// presenceMessage is the wire frame written to clients.
type presenceMessage struct {
	Event    string `json:"event"`
	SellerID uint   `json:"sellerId"`
	// LocationID is zero on departures
	LocationID uint `json:"locationId,omitempty"`
}

func NewPresenceHub(log *zap.Logger) *PresenceHub {
	return &PresenceHub{
		clients:    make(map[*websocket.Conn]subscription),
		broadcast:  make(chan presenceMessage),
		register:   make(chan registration),
		unregister: make(chan *websocket.Conn),
		log:        log,
	}
}

func (h *PresenceHub) Run() {
	for {
		select {
		case reg := <-h.register:
			h.mu.Lock()
			h.clients[reg.conn] = reg.sub
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn, sub := range h.clients {
				if sub.sellerID != 0 && sub.sellerID != msg.SellerID {
					continue
				}
				if err := conn.WriteJSON(msg); err != nil {
					h.log.Warn("ws write error", zap.Error(err))
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Deliver implements notify.Sink. Runs on the dispatcher goroutine, so it
// only forwards to the hub channel.
func (h *PresenceHub) Deliver(e notify.Event) {
	switch ev := e.(type) {
	case notify.ArrivalEvent:
		h.broadcast <- presenceMessage{Event: ev.Name(), SellerID: ev.SellerID, LocationID: ev.LocationID}
	case notify.DepartureEvent:
		h.broadcast <- presenceMessage{Event: ev.Name(), SellerID: ev.SellerID}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/presence?sellerId=N (sellerId optional)
func (h *PresenceHub) HandleWebSocket(c *gin.Context) {
	var sellerID uint64
	if raw := c.Query("sellerId"); raw != "" {
		var err error
		sellerID, err = strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sellerId"})
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade error", zap.Error(err))
		return
	}

	h.register <- registration{conn: conn, sub: subscription{sellerID: uint(sellerID)}}

	go h.drain(conn)
}

// drain discards inbound frames so pings and closes are processed; the
// presence channel is server-to-client only.
func (h *PresenceHub) drain(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
