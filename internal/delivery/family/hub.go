package family

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"familytree/internal/domain/event"
	"familytree/internal/render"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SnapshotFunc runs fn with the current tree under the same lock publishers
// are called with, see FamilyUseCase.WithSnapshot.
type SnapshotFunc func(fn func(v *render.View))

type client struct {
	conn *websocket.Conn
	send chan event.TreeEvent
}

// Hub pushes the redrawn tree to every connected websocket client. Publishing
// never blocks: each client has its own buffer and writer goroutine, and a
// client whose buffer is full is dropped.
type Hub struct {
	log      *zap.SugaredLogger
	snapshot SnapshotFunc

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(log *zap.SugaredLogger, snapshot SnapshotFunc) *Hub {
	return &Hub{
		log:      log,
		snapshot: snapshot,
		clients:  make(map[*client]struct{}),
	}
}

// HandleWS upgrades the request and sends the current tree first, followed by
// every redraw published after it.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("HandleWS: upgrade error: ", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan event.TreeEvent, sendBuffer),
	}
	h.snapshot(func(v *render.View) {
		c.send <- event.TreeEvent{Tree: v, At: time.Now()}
		h.register(c)
	})

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) PublishTreeChanged(_ context.Context, ev event.TreeEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			h.log.Warnf("dropping slow websocket client %s", c.remoteAddr())
			h.unregisterLocked(c)
		}
	}
	return nil
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisterLocked(c)
}

// unregisterLocked closes the send channel once; the write pump then closes the connection.
func (h *Hub) unregisterLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	defer h.unregister(c)

	for ev := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			h.log.Warn("websocket deadline: ", err)
			return
		}
		if err := c.conn.WriteJSON(ev); err != nil {
			h.log.Warnf("websocket write to %s failed: %v", c.remoteAddr(), err)
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "too slow"), time.Now().Add(time.Second))
}

// readPump only detects the close, clients never send anything.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) remoteAddr() string {
	if c.conn == nil {
		return "unknown"
	}
	return c.conn.RemoteAddr().String()
}
