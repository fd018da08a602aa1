package auth

import (
	"context"
	"net/http"

	"csrconnect/backend/models"
	"csrconnect/backend/store"
)

// AuthMiddleware is a middleware that checks for a valid JWT token and sets the user_id in the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromToken(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		// Create a new context with the user ID
		ctx := context.WithValue(r.Context(), "user_id", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser resolves the authenticated actor for a request. Every core
// operation takes the actor explicitly; nothing reads session state from
// globals.
func CurrentUser(r *http.Request, s store.Store) (models.User, error) {
	userID, err := GetUserIDFromToken(r)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUser(r.Context(), userID)
}
