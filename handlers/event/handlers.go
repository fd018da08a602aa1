package event

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"csrconnect/backend/handlers/auth"
	"csrconnect/backend/handlers/respond"
	"csrconnect/backend/models"
	"csrconnect/backend/services/matching"
	"csrconnect/backend/store"
)

// CreateEventHandler creates an event with business snapshots frozen at
// creation time
// Used by: POST /api/events
func CreateEventHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var in matching.EventInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respond.Error(w, models.Validationf("invalid request body"))
			return
		}

		e, err := matching.CreateEvent(r.Context(), s, actor, in)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, e)
	}
}

// ListEventsHandler returns the full catalog (corporates browse every event)
// Used by: GET /api/events
func ListEventsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.CurrentUser(r, s); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		events, err := s.ListEvents(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, events)
	}
}

// ListMyEventsHandler returns the role-filtered event view: NGOs their own
// events, corporates every open event, business owners the events their
// businesses participate in
// Used by: GET /api/events/my
func ListMyEventsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		events, err := matching.ListEventsFor(r.Context(), s, actor)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, events)
	}
}

// GetEventHandler returns a single event with its snapshots
// Used by: GET /api/events/{id}
func GetEventHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.CurrentUser(r, s); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		e, err := matching.GetEvent(r.Context(), s, mux.Vars(r)["id"])
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, e)
	}
}
