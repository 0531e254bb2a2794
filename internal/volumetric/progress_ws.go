package volumetric

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ProgressEvent is the JSON message broadcast to progress viewers.
type ProgressEvent struct {
	Stage   string  `json:"stage"`
	Frame   int     `json:"frame"`
	Done    int     `json:"done"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

const (
	hubSendBuffer   = 64
	hubPingInterval = 30 * time.Second
	hubWriteWait    = 5 * time.Second
)

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ProgressHub is a Progress sink that broadcasts events to every connected
// WebSocket client. Slow clients are dropped instead of blocking workers.
type ProgressHub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*hubClient]struct{}
	frame    int
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*hubClient]struct{}),
	}
}

// SetFrame tags subsequent events with the frame being rendered.
func (h *ProgressHub) SetFrame(frame int) {
	h.mu.Lock()
	h.frame = frame
	h.mu.Unlock()
}

// Clients returns the number of connected viewers.
func (h *ProgressHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Report implements Progress.
func (h *ProgressHub) Report(stage string, done, total int) {
	h.mu.Lock()
	ev := ProgressEvent{Stage: stage, Frame: h.frame, Done: done, Total: total}
	h.mu.Unlock()
	if total > 0 {
		ev.Percent = float64(done) * 100 / float64(total)
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.broadcast(msg)
}

func (h *ProgressHub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			close(c.send)
			delete(h.clients, c)
		}
	}
}

func (h *ProgressHub) remove(c *hubClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and streams events until the client leaves.
func (h *ProgressHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		DebugLog("progress upgrade: %v", err)
		return
	}
	c := &hubClient{conn: conn, send: make(chan []byte, hubSendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	DebugLog("progress viewer connected: %s", r.RemoteAddr)

	// reader: only needed to notice disconnects
	go func() {
		defer func() {
			h.remove(c)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// writer
	go func() {
		ticker := time.NewTicker(hubPingInterval)
		defer func() {
			ticker.Stop()
			conn.Close()
		}()
		for {
			select {
			case msg, ok := <-c.send:
				_ = conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(hubWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
}

// Close disconnects every viewer.
func (h *ProgressHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
