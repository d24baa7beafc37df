package services

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/reelay-dev/reelay/internal/models"
)

// Per-user notification stream registry. Connections are registered by the
// websocket handler; Notify broadcasts through here.
var (
	userStreams   = make(map[uint]map[*websocket.Conn]bool)
	userStreamsMu sync.RWMutex
)

const streamWriteWait = 10 * time.Second

func RegisterStream(userID uint, conn *websocket.Conn) {
	userStreamsMu.Lock()
	if userStreams[userID] == nil {
		userStreams[userID] = make(map[*websocket.Conn]bool)
	}
	userStreams[userID][conn] = true
	userStreamsMu.Unlock()
}

func UnregisterStream(userID uint, conn *websocket.Conn) {
	userStreamsMu.Lock()
	if conns, exists := userStreams[userID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(userStreams, userID)
		}
	}
	userStreamsMu.Unlock()
}

// BroadcastNotification pushes a freshly written notification to every open
// stream for the user. Failed connections are dropped from the registry.
func BroadcastNotification(userID uint, notification models.Notification) {
	userStreamsMu.RLock()
	conns, exists := userStreams[userID]
	if !exists || len(conns) == 0 {
		userStreamsMu.RUnlock()
		return
	}

	connsCopy := make([]*websocket.Conn, 0, len(conns))
	for conn := range conns {
		connsCopy = append(connsCopy, conn)
	}
	userStreamsMu.RUnlock()

	for _, conn := range connsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
			log.Printf("Failed to set write deadline for notification broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":         "notification",
			"notification": notification,
		})

		if err != nil {
			log.Printf("Failed to broadcast notification to user %d: %v", userID, err)
			UnregisterStream(userID, conn)
			conn.Close()
		}
	}
}
