package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/reelay-dev/reelay/internal/services"
	"github.com/reelay-dev/reelay/internal/types"
	"github.com/reelay-dev/reelay/internal/utils"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamReadLimit  = 512
)

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		for _, allowed := range types.AllowedOrigins {
			if origin == allowed {
				return true
			}
		}
		return false
	},
}

// NotificationStream upgrades the connection and registers it for the
// caller's in-app notifications. Delivery is best-effort; a dropped
// connection simply misses pushes until it reconnects.
func NotificationStream(c *gin.Context) {
	currentUser, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Notification stream upgrade failed for user %d: %v", currentUser.ID, err)
		return
	}

	conn.SetReadLimit(streamReadLimit)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	services.RegisterStream(currentUser.ID, conn)

	defer func() {
		services.UnregisterStream(currentUser.ID, conn)
		conn.Close()

		log.Printf("Notification stream closed for user %d", currentUser.ID)
	}()

	if err := writeStreamJSON(conn, map[string]string{
		"type":    "connected",
		"message": "Notification stream established",
	}); err != nil {
		log.Printf("Failed to send stream greeting to user %d: %v", currentUser.ID, err)
		return
	}

	done := make(chan struct{})
	defer close(done)

	go pingStream(conn, currentUser.ID, done)

	// The client never sends application messages; this loop only services
	// pongs and detects the close.
	for {
		if err := conn.SetReadDeadline(time.Now().Add(streamPongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Notification stream error for user %d: %v", currentUser.ID, err)
			}
			break
		}
	}
}

func pingStream(conn *websocket.Conn, userID uint, done <-chan struct{}) {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for user %d: %v", userID, err)
				return
			}
		}
	}
}

func writeStreamJSON(conn *websocket.Conn, payload interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}

	return conn.WriteJSON(payload)
}
