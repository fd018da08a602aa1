package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/exp/rand"

	"csrconnect/backend/db"
	"csrconnect/backend/handlers"
	"csrconnect/backend/handlers/auth"
	"csrconnect/backend/handlers/business"
	"csrconnect/backend/handlers/connection"
	"csrconnect/backend/handlers/event"
	"csrconnect/backend/handlers/notifications"
	"csrconnect/backend/store"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{"DATABASE_URL", "JWT_SECRET_KEY"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	// Initialize random seed for demo-data generation
	rand.Seed(uint64(time.Now().UnixNano()))

	// Initialize database connection and schema
	conn, err := db.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	s := store.NewPostgresStore(conn)

	// Create router
	r := mux.NewRouter()

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})

	// Public routes (no auth required)
	r.HandleFunc("/api/auth/register", auth.RegisterHandler(s)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", auth.LoginHandler(s)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/test/generate-data", handlers.GenerateTestDataHandler(s)).Methods("POST", "OPTIONS")

	// Create a subrouter for protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.AuthMiddleware)

	// Me routes
	protected.HandleFunc("/me", auth.MeHandler(s)).Methods("GET", "OPTIONS")

	// Business registry routes
	protected.HandleFunc("/businesses", business.ListBusinessesHandler(s)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/businesses", business.RegisterBusinessHandler(s)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/businesses/my", business.ListMyBusinessesHandler(s)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/businesses/{id}", business.GetBusinessHandler(s)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/businesses/{id}", business.UpdateBusinessHandler(s)).Methods("PUT", "OPTIONS")

	// Event catalog routes
	protected.HandleFunc("/events", event.ListEventsHandler(s)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/events", event.CreateEventHandler(s)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/events/my", event.ListMyEventsHandler(s)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/events/{id}", event.GetEventHandler(s)).Methods("GET", "OPTIONS")

	// Connection ledger routes
	protected.HandleFunc("/connections", connection.ListConnectionsHandler(s)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/connections", connection.ExpressInterestHandler(s)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/connections/{id}/resolve", connection.ResolveConnectionHandler(s)).Methods("PUT", "OPTIONS")

	// Notification routes
	protected.HandleFunc("/notifications", notifications.GetNotificationsHandler(s)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notifications/read", notifications.MarkNotificationsAsReadHandler(s)).Methods("POST", "OPTIONS")
	r.HandleFunc("/ws/notifications", notifications.HandleNotificationWebSocket())

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
