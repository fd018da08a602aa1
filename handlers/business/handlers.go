package business

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

// RegisterBusinessHandler creates a business listing owned by the caller
// Used by: POST /api/businesses
func RegisterBusinessHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var in matching.BusinessInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respond.Error(w, models.Validationf("invalid request body"))
			return
		}

		b, err := matching.RegisterBusiness(r.Context(), s, actor, in)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, b)
	}
}

// ListBusinessesHandler returns the role-filtered registry view: NGOs and
// corporates see the full registry, business owners their own listings
// Used by: GET /api/businesses
func ListBusinessesHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		businesses, err := matching.ListBusinessesFor(r.Context(), s, actor)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, businesses)
	}
}

// ListMyBusinessesHandler returns the caller's own listings
// Used by: GET /api/businesses/my
func ListMyBusinessesHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		businesses, err := matching.ListBusinessesByOwner(r.Context(), s, actor)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, businesses)
	}
}

// GetBusinessHandler returns a single registry record
// Used by: GET /api/businesses/{id}
func GetBusinessHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.CurrentUser(r, s); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := matching.GetBusiness(r.Context(), s, mux.Vars(r)["id"])
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, b)
	}
}

// UpdateBusinessHandler replaces a listing's fields; owner only. Event
// snapshots taken earlier keep the old values.
// Used by: PUT /api/businesses/{id}
func UpdateBusinessHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := auth.CurrentUser(r, s)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var in matching.BusinessInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respond.Error(w, models.Validationf("invalid request body"))
			return
		}

		b, err := matching.UpdateBusiness(r.Context(), s, actor, mux.Vars(r)["id"], in)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, b)
	}
}
