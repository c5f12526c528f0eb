package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/api"
	"github.com/linesmerrill/avenue-police-api/databases"
)

const (
	changeFeedBuffer = 32
	writeWait        = 10 * time.Second
	pingPeriod       = 30 * time.Second
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChangeFeed streams change events to websocket clients so open dashboards
// know when to refetch
type ChangeFeed struct {
	Notifier databases.ChangeNotifier
}

// ChangeMessage is the frame written for every event
type ChangeMessage struct {
	Event string                `json:"event"`
	Data  databases.ChangeEvent `json:"data"`
}

// ChangeFeedHandler upgrades the connection and forwards events until the client leaves
func (c ChangeFeed) ChangeFeedHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	p, _ := api.PrincipalFromContext(r.Context())
	zap.S().Infow("change feed connected", "passport", p.Passport)

	events := make(chan databases.ChangeEvent, changeFeedBuffer)
	unsubscribe := c.Notifier.Subscribe(func(e databases.ChangeEvent) {
		select {
		case events <- e:
		default:
			zap.S().Warnw("change feed client is slow, dropping event", "passport", p.Passport, "kind", e.Kind)
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			zap.S().Infow("change feed disconnected", "passport", p.Passport)
			return
		case e := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ChangeMessage{Event: string(e.Kind) + "_changed", Data: e}); err != nil {
				zap.S().Infow("change feed write failed", "passport", p.Passport, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
