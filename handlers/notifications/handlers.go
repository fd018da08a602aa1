package notifications

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"csrconnect/backend/handlers/auth"
	"csrconnect/backend/handlers/respond"
	"csrconnect/backend/models"
	"csrconnect/backend/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var notificationConnections = make(map[string]*websocket.Conn)
var notifLock sync.Mutex

// GetNotificationsHandler returns the caller's notifications, newest first
// Used by: GET /api/notifications
func GetNotificationsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := s.ListNotificationsByUser(r.Context(), actor.ID)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, list)
	}
}

// MarkNotificationsAsReadHandler marks all of the caller's notifications read
// Used by: POST /api/notifications/read
func MarkNotificationsAsReadHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := s.MarkNotificationsRead(r.Context(), actor.ID); err != nil {
			respond.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleNotificationWebSocket upgrades the connection and registers it for
// pushes. The token travels in a query parameter because browsers cannot set
// headers on websocket dials.
// Used by: /ws/notifications
func HandleNotificationWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.ParseToken(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Error upgrading notification websocket: %v", err)
			return
		}

		notifLock.Lock()
		if old, ok := notificationConnections[userID]; ok {
			old.Close()
		}
		notificationConnections[userID] = conn
		notifLock.Unlock()

		// Drain reads until the client goes away, then unregister.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
			notifLock.Lock()
			if notificationConnections[userID] == conn {
				delete(notificationConnections, userID)
			}
			notifLock.Unlock()
			conn.Close()
		}()
	}
}

// Push sends a notification to the user's live websocket, if any.
func Push(userID string, n models.Notification) {
	notifLock.Lock()
	conn, ok := notificationConnections[userID]
	notifLock.Unlock()
	if !ok {
		return
	}
	if err := conn.WriteJSON(n); err != nil {
		log.Printf("Error pushing notification to user %s: %v", userID, err)
	}
}
