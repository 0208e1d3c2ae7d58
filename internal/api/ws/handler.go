package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

const (
	// SendBuffer is how many outbound messages may queue per client
	// before new ones are dropped.
	SendBuffer = 64

	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
)

// Message types sent to the client.
const (
	TypeSystem = "system"
	TypeClock  = "clock"
	TypePong   = "pong"
	TypeError  = "error"
)

// Message is the envelope for everything sent to the client.
type Message struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// ClientMessage is a request from the client. Data depends on Type.
type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// KeyData is the payload of a "key" message.
type KeyData struct {
	Code string `json:"code"`
	Ctrl bool   `json:"ctrl"`
	Meta bool   `json:"meta"`
}

// PointerData is the payload of a "pointer" message.
type PointerData struct {
	Action string        `json:"action"`
	AppID  string        `json:"app_id"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Target window.Target `json:"target"`
}

// Options tunes the stream.
type Options struct {
	ClockInterval time.Duration
	Logger        *logging.Logger
	Metrics       *monitoring.Metrics
	Now           func() time.Time
}

// Handler streams desktop events over WebSocket connections.
type Handler struct {
	shell    *shell.Shell
	upgrader websocket.Upgrader
	opts     Options
	logger   *logging.Logger
}

// NewHandler creates a stream handler for sh.
func NewHandler(sh *shell.Shell, opts Options) *Handler {
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{
		shell: sh,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
		opts:   opts,
		logger: logging.OrNop(opts.Logger).Named("ws"),
	}
}

// client is one connection. Every write goes through send so only the
// write loop touches the socket for writing.
type client struct {
	id   string
	conn *websocket.Conn
	send chan Message
	done chan struct{}
	once sync.Once
}

func (cl *client) close() {
	cl.once.Do(func() { close(cl.done) })
}

// enqueue drops the message when the client cannot keep up.
func (cl *client) enqueue(msg Message) bool {
	select {
	case <-cl.done:
		return false
	default:
	}
	select {
	case cl.send <- msg:
		return true
	default:
		return false
	}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	h.Serve(conn)
}

// Serve runs the read and write loops of conn until either side closes.
func (h *Handler) Serve(conn *websocket.Conn) {
	if h.opts.Metrics != nil {
		h.opts.Metrics.IncWSConnections()
		defer h.opts.Metrics.DecWSConnections()
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Message, SendBuffer),
		done: make(chan struct{}),
	}

	h.logger.Info("WebSocket client connected", zap.String("client_id", cl.id))
	defer h.logger.Info("WebSocket client disconnected", zap.String("client_id", cl.id))

	h.push(cl, TypeSystem, gin.H{"message": "Connected to ChimeraOS Desktop (Go)", "client_id": cl.id})
	h.push(cl, string(shell.EventDesktop), h.shell.Snapshot())

	unsubscribe := h.shell.Subscribe(func(ev shell.Event) {
		if !h.push(cl, string(ev.Type), ev.Data) {
			h.logger.Debug("Dropped event for slow client", zap.String("type", string(ev.Type)))
		}
	})
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.writeLoop(cl)
	}()

	h.readLoop(cl)
	cl.close()
	wg.Wait()
	conn.Close()
}

func (h *Handler) push(cl *client, typ string, data interface{}) bool {
	return cl.enqueue(Message{Type: typ, Timestamp: h.opts.Now().Unix(), Data: data})
}

func (h *Handler) writeLoop(cl *client) {
	ticker := time.NewTicker(h.opts.ClockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case msg := <-cl.send:
			if err := h.write(cl, msg); err != nil {
				h.logger.Debug("WebSocket write failed", zap.Error(err))
				cl.close()
				cl.conn.Close()
				return
			}
		case <-ticker.C:
			now := h.opts.Now()
			h.push(cl, TypeClock, gin.H{"time": now.Format(time.RFC3339)})
		}
	}
}

func (h *Handler) write(cl *client, msg Message) error {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	if err := cl.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	if h.opts.Metrics != nil {
		h.opts.Metrics.RecordWSMessage("out", msg.Type)
	}
	return nil
}

func (h *Handler) readLoop(cl *client) {
	cl.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.sendError(cl, "malformed message")
			continue
		}
		if h.opts.Metrics != nil {
			h.opts.Metrics.RecordWSMessage("in", msg.Type)
		}
		h.dispatch(cl, msg)
	}
}

func (h *Handler) dispatch(cl *client, msg ClientMessage) {
	switch msg.Type {
	case "ping":
		h.push(cl, TypePong, nil)
	case "key":
		var key KeyData
		if err := sonic.Unmarshal(msg.Data, &key); err != nil || key.Code == "" {
			h.sendError(cl, "invalid key message")
			return
		}
		h.shell.HandleKey(shell.KeyEvent{Code: key.Code, Ctrl: key.Ctrl, Meta: key.Meta})
	case "pointer":
		var p PointerData
		if err := sonic.Unmarshal(msg.Data, &p); err != nil {
			h.sendError(cl, "invalid pointer message")
			return
		}
		h.pointer(cl, p)
	default:
		h.sendError(cl, "unknown message type")
	}
}

func (h *Handler) pointer(cl *client, p PointerData) {
	at := window.Point{X: p.X, Y: p.Y}
	switch p.Action {
	case "down":
		target := p.Target
		if target == "" {
			target = window.TargetBody
		}
		if !h.shell.PointerDown(apps.ID(p.AppID), at, target) {
			h.sendError(cl, "window not found")
		}
	case "move":
		h.shell.PointerMove(at)
	case "up":
		h.shell.PointerUp()
	default:
		h.sendError(cl, "unknown pointer action")
	}
}

func (h *Handler) sendError(cl *client, msg string) {
	h.push(cl, TypeError, gin.H{"message": msg})
}
