// Package store persists the platform's entities. The production
// implementation is backed by Postgres; an in-memory implementation with the
// same semantics backs the tests.
package store

import (
	"context"

	"csrconnect/backend/models"
)

// Store is the single logical store behind the core operations. All list
// methods return records in insertion order, stable across repeated calls
// absent mutation.
type Store interface {
	// CreateUser inserts a new user. Fails with ConflictError when the
	// email is already registered.
	CreateUser(ctx context.Context, u models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	CreateBusiness(ctx context.Context, b models.Business) error
	GetBusiness(ctx context.Context, id string) (models.Business, error)
	// UpdateBusiness replaces the stored record's mutable fields. Event
	// snapshots taken before the update are not touched.
	UpdateBusiness(ctx context.Context, b models.Business) error
	ListBusinessesByOwner(ctx context.Context, ownerID string) ([]models.Business, error)
	ListBusinesses(ctx context.Context) ([]models.Business, error)

	// CreateEvent inserts the event together with its participating-business
	// snapshots, all or nothing.
	CreateEvent(ctx context.Context, e models.Event) error
	GetEvent(ctx context.Context, id string) (models.Event, error)
	ListEventsByNGO(ctx context.Context, ngoID string) ([]models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)

	// CreateConnection inserts a connection and records it on the event's
	// connections_made list. The (event, business, corporate) uniqueness
	// check is atomic with the insert: of two concurrent calls for the same
	// triple exactly one succeeds, the other fails with ConflictError.
	CreateConnection(ctx context.Context, c models.Connection) error
	GetConnection(ctx context.Context, id string) (models.Connection, error)
	UpdateConnectionStatus(ctx context.Context, id, status string) error
	ListConnectionsByCorporate(ctx context.Context, corporateID string) ([]models.Connection, error)
	ListConnectionsByBusinesses(ctx context.Context, businessIDs []string) ([]models.Connection, error)
	ListConnectionsByEvents(ctx context.Context, eventIDs []string) ([]models.Connection, error)

	CreateNotification(ctx context.Context, n models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string) error
}
