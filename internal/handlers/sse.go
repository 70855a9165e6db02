package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/who-is-the-wolf/internal/render"
	"github.com/aaronzipp/who-is-the-wolf/internal/sse"
)

const writeWait = 5 * time.Second

// wsFrame wraps a hub message for WebSocket clients
type wsFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSSE streams the caller's view of a session as Server-Sent Events
func (ctx *Context) HandleSSE(c *gin.Context) {
	id := sessionID(c)
	uid, _ := identity(c)
	s, err := ctx.Manager.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	initial, err := render.SessionJSON(s, uid)
	if err != nil {
		writeError(c, err)
		return
	}

	hub := ctx.Manager.Hub()
	client := hub.Subscribe(id, uid)
	defer hub.Unsubscribe(id, client)
	log.Debug().Str("module", "handlers").Str("session", id).Str("user", uid).Msg("sse client connected")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(sse.EventState, string(initial))
	c.Writer.Flush()

	keepAlive := time.NewTicker(ctx.pingPeriod())
	defer keepAlive.Stop()
	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			log.Debug().Str("module", "handlers").Str("session", id).Str("user", uid).Msg("sse client gone")
			return
		case msg := <-client:
			c.SSEvent(msg.Event, string(msg.Data))
			if msg.Event == sse.EventClosed {
				c.Writer.Flush()
				log.Debug().Str("module", "handlers").Str("session", id).Str("user", uid).Msg("sse stream closed, game over")
				return
			}
		case <-keepAlive.C:
			c.SSEvent("ping", "")
		}
		c.Writer.Flush()
	}
}

// HandleWebSocket streams the same updates as HandleSSE over a WebSocket
func (ctx *Context) HandleWebSocket(c *gin.Context) {
	id := sessionID(c)
	uid, _ := identity(c)
	s, err := ctx.Manager.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	initial, err := render.SessionJSON(s, uid)
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "handlers").Msg("ws upgrade")
		return
	}
	defer conn.Close()

	hub := ctx.Manager.Hub()
	client := hub.Subscribe(id, uid)
	defer hub.Unsubscribe(id, client)
	log.Debug().Str("module", "handlers").Str("session", id).Str("user", uid).Msg("ws client connected")

	wsCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go ctx.readPump(wsCtx, cancel, conn)

	if err := writeFrame(conn, sse.EventState, initial); err != nil {
		return
	}
	ping := time.NewTicker(ctx.pingPeriod())
	defer ping.Stop()
	for {
		select {
		case <-wsCtx.Done():
			return
		case msg := <-client:
			if err := writeFrame(conn, msg.Event, msg.Data); err != nil {
				log.Debug().Err(err).Str("module", "handlers").Str("session", id).Msg("ws write failed")
				return
			}
			if msg.Event == sse.EventClosed {
				closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
				_ = conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed and
// cancels the connection once the peer goes away
func (ctx *Context) readPump(wsCtx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()
	conn.SetReadLimit(ctx.Config.ReadLimit)
	deadline := func() time.Time { return time.Now().Add(2 * ctx.pingPeriod()) }
	_ = conn.SetReadDeadline(deadline())
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(deadline()) })
	for wsCtx.Err() == nil {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, event string, data []byte) error {
	frame, err := json.Marshal(wsFrame{Event: event, Data: data})
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, frame)
}
