package viewer

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/glcage/glcage/pkg/logger"
	"github.com/glcage/glcage/pkg/network/websocket"
)

const (
	EventBuild   = "build"
	EventLibrary = "library"
)

// Event is one message of the viewer event stream.
type Event struct {
	T    string `json:"t"`
	Name string `json:"name,omitempty"`
	Err  string `json:"err,omitempty"`
}

// Hub fans viewer events out to the connected websocket clients.
type Hub struct {
	log *logger.Logger

	mu      sync.Mutex
	clients map[string]*websocket.WS
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{log: log, clients: make(map[string]*websocket.WS, 10)}
}

// Handle upgrades the request and holds the socket until it closes.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.NewServer(w, r, h.log)
	if err != nil {
		h.log.Error().Err(err).Msg("socket upgrade fail")
		return
	}
	h.add(conn)
	conn.Listen()
	<-conn.Done
	h.remove(conn)
}

// Broadcast pushes one event to every client.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Msg("event marshal fail")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range h.clients {
		send(conn, data)
	}
}

// send survives a write into a socket closed mid-broadcast
func send(conn *websocket.WS, data []byte) {
	defer func() { _ = recover() }()
	conn.Write(data)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range h.clients {
		conn.Close()
	}
}

func (h *Hub) add(conn *websocket.WS) {
	h.mu.Lock()
	h.clients[conn.Id()] = conn
	h.mu.Unlock()
	h.log.Debug().Msgf("event stream +1, %v now", h.size())
}

func (h *Hub) remove(conn *websocket.WS) {
	h.mu.Lock()
	delete(h.clients, conn.Id())
	h.mu.Unlock()
	h.log.Debug().Msgf("event stream -1, %v now", h.size())
}

func (h *Hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
