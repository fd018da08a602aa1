package connection

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"csrconnect/backend/handlers/auth"
	"csrconnect/backend/handlers/notifications"
	"csrconnect/backend/handlers/respond"
	"csrconnect/backend/models"
	"csrconnect/backend/services/matching"
	"csrconnect/backend/store"
)

// ExpressInterestHandler records a corporate's interest in a business
// showcased by an event. Repeating the call for the same (event, business)
// pair returns 409 and leaves the ledger unchanged.
// Used by: POST /api/connections
func ExpressInterestHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req ConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, models.Validationf("invalid request body"))
			return
		}

		conn, err := matching.ExpressInterest(r.Context(), s, actor, req.EventID, req.BusinessID, req.Notes)
		if err != nil {
			respond.Error(w, err)
			return
		}

		// Notify the event's NGO. The connection is already recorded, so a
		// notification failure is logged and not surfaced.
		if err := notifyNGO(r, s, actor, conn); err != nil {
			log.Printf("Error creating notification for connection %s: %v", conn.ID, err)
		}

		respond.JSON(w, http.StatusOK, conn)
	}
}

func notifyNGO(r *http.Request, s store.Store, actor models.User, conn models.Connection) error {
	event, err := s.GetEvent(r.Context(), conn.EventID)
	if err != nil {
		return err
	}
	businessName := conn.BusinessID
	for _, ref := range event.ParticipatingBusinesses {
		if ref.BusinessID == conn.BusinessID {
			businessName = ref.BusinessName
			break
		}
	}
	n := models.Notification{
		ID:        uuid.NewString(),
		UserID:    event.NGOID,
		Type:      "interest_expressed",
		Content:   fmt.Sprintf("%s expressed interest in %s at %s", actor.Name, businessName, event.Title),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateNotification(r.Context(), n); err != nil {
		return err
	}
	notifications.Push(event.NGOID, n)
	return nil
}

// ListConnectionsHandler returns the role-filtered ledger view: corporates
// their own connections, business owners the ones touching their businesses,
// NGOs the ones made at their events
// Used by: GET /api/connections
func ListConnectionsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		connections, err := matching.ListConnectionsFor(r.Context(), s, actor)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, connections)
	}
}

// ResolveConnectionHandler lets the event's NGO accept or reject a pending
// connection
// Used by: PUT /api/connections/{id}/resolve
func ResolveConnectionHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req ResolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, models.Validationf("invalid request body"))
			return
		}

		conn, err := matching.ResolveConnection(r.Context(), s, actor, mux.Vars(r)["id"], req.Decision)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, conn)
	}
}
