package websocket

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/glcage/glcage/pkg/logger"
	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
)

const (
	maxMessageSize = 10 * 1024
	pingTime       = pongTime * 9 / 10
	pongTime       = 60 * time.Second
	readWait       = 5 * time.Second
	writeWait      = 10 * time.Second
)

type WS struct {
	id   string
	conn deadlinedConn
	send chan []byte
	log  *logger.Logger

	// OnMessage is called for each incoming message
	// and should be set before Listen.
	OnMessage MessageHandler

	pingPong bool

	shutdown *sync.WaitGroup
	Done     chan struct{}
}

type MessageHandler func(message []byte, err error)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	WriteBufferPool: &sync.Pool{},
}

// NewServer upgrades an HTTP request to a websocket peer.
func NewServer(w http.ResponseWriter, r *http.Request, log *logger.Logger) (*WS, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return newSocket(conn, true, log), nil
}

func NewClient(address url.URL, log *logger.Logger) (*WS, error) {
	conn, _, err := websocket.DefaultDialer.Dial(address.String(), nil)
	if err != nil {
		return nil, err
	}
	return newSocket(conn, false, log), nil
}

func newSocket(conn *websocket.Conn, pingPong bool, log *logger.Logger) *WS {
	shut := sync.WaitGroup{}
	shut.Add(2)

	safeConn := deadlinedConn{
		sock: conn,
		wt:   writeWait,
	}
	if !pingPong {
		safeConn.rt = readWait
	}

	id := uuid.Must(uuid.NewV4()).String()

	return &WS{
		id:       id,
		conn:     safeConn,
		send:     make(chan []byte),
		log:      log.Extend(log.With().Str("ws", id[:8])),
		pingPong: pingPong,
		shutdown: &shut,
		Done:     make(chan struct{}, 1),
	}
}

func (ws *WS) Id() string { return ws.id }

// Listen starts the read/write pumps of the connection.
func (ws *WS) Listen() {
	go ws.writer()
	go ws.reader()
}

// reader pumps messages from the websocket connection to the OnMessage callback.
// Blocking, must be called as goroutine. Serializes all websocket reads.
func (ws *WS) reader() {
	defer func() {
		close(ws.send)
		ws.shutdown.Done()
		ws.close()
		ws.log.Debug().Msg("CLOSE READER")
	}()
	ws.conn.setup(func(conn *websocket.Conn) {
		conn.SetReadLimit(maxMessageSize)
		if ws.pingPong {
			_ = conn.SetReadDeadline(time.Now().Add(pongTime))
			conn.SetPongHandler(func(string) error { _ = conn.SetReadDeadline(time.Now().Add(pongTime)); return nil })
		}
	})
	for {
		message, err := ws.conn.read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				ws.log.Error().Err(err).Msg("read fail")
			}
			break
		}
		if ws.OnMessage != nil {
			ws.OnMessage(message, err)
		}
	}
}

// writer pumps messages from the send channel to the websocket connection.
// Blocking, must be called as goroutine. Serializes all websocket writes.
func (ws *WS) writer() {
	var ticker *time.Ticker
	if ws.pingPong {
		ticker = time.NewTicker(pingTime)
	}
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
		ws.shutdown.Done()
		ws.close()
		ws.log.Debug().Msg("CLOSE WRITER")
	}()
	if ws.pingPong {
		for {
			select {
			case message, ok := <-ws.send:
				if !ws.handleMessage(message, ok) {
					return
				}
			case <-ticker.C:
				if err := ws.conn.write(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	} else {
		for message := range ws.send {
			if !ws.handleMessage(message, true) {
				return
			}
		}
		_ = ws.conn.write(websocket.CloseMessage, []byte{})
	}
}

func (ws *WS) handleMessage(message []byte, ok bool) bool {
	if !ok {
		_ = ws.conn.write(websocket.CloseMessage, []byte{})
		return false
	}
	if err := ws.conn.write(websocket.TextMessage, message); err != nil {
		return false
	}
	return true
}

// Write queues a message for the writer pump.
// Should not be called after Close.
func (ws *WS) Write(data []byte) { ws.send <- data }

func (ws *WS) Close() {
	_ = ws.conn.write(websocket.CloseMessage, []byte{})
	ws.log.Debug().Msg("CLOSE")
}

func (ws *WS) close() {
	ws.shutdown.Wait()
	_ = ws.conn.close()
	select {
	case ws.Done <- struct{}{}:
	default:
	}
}
