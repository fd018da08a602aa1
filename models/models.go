package models

import "time"

// User roles. A user's role is fixed at registration.
const (
	RoleNGO           = "ngo"
	RoleBusinessOwner = "business_owner"
	RoleCorporate     = "corporate"
)

// Event statuses.
const (
	EventStatusOpen   = "open"
	EventStatusClosed = "closed"
)

// Connection statuses.
const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
	ConnectionStatusRejected = "rejected"
)

// BusinessCategories is the closed set of categories a rural business can register under.
var BusinessCategories = []string{
	"achar", "papad", "handicrafts", "textiles", "food_products", "organic_farming",
}

// RevenueRanges is the closed set of annual revenue buckets.
var RevenueRanges = []string{
	"0-50k", "50k-2l", "2l-5l", "5l+",
}

// InitiativeTypes is the closed set of CSR initiative types an event can run under.
var InitiativeTypes = []string{
	"women_empowerment", "skill_development", "rural_development", "sustainable_business",
}

// ValidRole reports whether role is one of the three platform roles.
func ValidRole(role string) bool {
	return role == RoleNGO || role == RoleBusinessOwner || role == RoleCorporate
}

func inSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ValidBusinessCategory reports whether category is in the closed category set.
func ValidBusinessCategory(category string) bool { return inSet(BusinessCategories, category) }

// ValidRevenueRange reports whether rr is in the closed revenue-bucket set.
func ValidRevenueRange(rr string) bool { return inSet(RevenueRanges, rr) }

// ValidInitiativeType reports whether it is in the closed initiative-type set.
func ValidInitiativeType(it string) bool { return inSet(InitiativeTypes, it) }

// User represents a registered platform actor.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"` // "ngo", "business_owner" or "corporate"
	Organization string    `json:"organization,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Business represents a rural business listing owned by a single business owner.
type Business struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	RevenueRange   string    `json:"revenue_range,omitempty"`
	EmployeesCount *int      `json:"employees_count,omitempty"`
	Products       []string  `json:"products"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// EventBusinessRef is a point-in-time copy of a business's showcase fields,
// embedded in an event when the NGO adds the business. Later edits to the
// business do not reach these copies.
type EventBusinessRef struct {
	BusinessID   string `json:"business_id"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
}

// Event represents a CSR event published by an NGO, bundling a set of
// participating businesses captured as snapshots at creation time.
type Event struct {
	ID                      string             `json:"id"`
	NGOID                   string             `json:"ngo_id"`
	NGOName                 string             `json:"ngo_name"`
	Title                   string             `json:"title"`
	Description             string             `json:"description"`
	InitiativeType          string             `json:"initiative_type"`
	Date                    time.Time          `json:"date"`
	Location                string             `json:"location"`
	TargetAudience          string             `json:"target_audience"`
	Status                  string             `json:"status"` // "open" or "closed"
	ParticipatingBusinesses []EventBusinessRef `json:"participating_businesses"`
	ConnectionsMade         []string           `json:"connections_made"`
	CreatedAt               time.Time          `json:"created_at"`
}

// HasBusiness reports whether businessID is among the event's participating
// business snapshots.
func (e Event) HasBusiness(businessID string) bool {
	for _, ref := range e.ParticipatingBusinesses {
		if ref.BusinessID == businessID {
			return true
		}
	}
	return false
}

// Connection records a corporate's interest in a business showcased by an event.
// At most one connection exists per (event, business, corporate) triple.
type Connection struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	BusinessID  string    `json:"business_id"`
	CorporateID string    `json:"corporate_id"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"` // "pending", "accepted" or "rejected"
	CreatedAt   time.Time `json:"created_at"`
}

// Notification is an NGO-facing activity record, created when a corporate
// expresses interest in a business at one of the NGO's events.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}
