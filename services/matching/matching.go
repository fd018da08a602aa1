// Package matching is the policy layer between the HTTP handlers and the
// store. It owns the cross-entity rules: which role may perform which
// mutation, how an NGO's business selections are validated and frozen into
// event snapshots, how a corporate's interest-expression is checked against
// the event's showcased businesses, and which slice of the data each role
// gets to see.
package matching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"csrconnect/backend/models"
	"csrconnect/backend/store"
)

// BusinessInput carries the owner-supplied fields for registering or
// updating a business listing.
type BusinessInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	RevenueRange   string   `json:"revenue_range"`
	EmployeesCount *int     `json:"employees_count"`
	Products       []string `json:"products"`
	ImageURL       string   `json:"image_url"`
}

// EventInput carries the NGO-supplied fields for creating an event.
// SelectedBusinessIDs reference live registry records; they are resolved and
// copied into snapshots at creation time.
type EventInput struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	InitiativeType      string    `json:"initiative_type"`
	Date                time.Time `json:"date"`
	Location            string    `json:"location"`
	TargetAudience      string    `json:"target_audience"`
	SelectedBusinessIDs []string  `json:"selected_business_ids"`
}

func validateBusinessInput(in BusinessInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return models.Validationf("business name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return models.Validationf("business description is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return models.Validationf("business location is required")
	}
	if !models.ValidBusinessCategory(in.Category) {
		return models.Validationf("invalid business category %q", in.Category)
	}
	if in.RevenueRange != "" && !models.ValidRevenueRange(in.RevenueRange) {
		return models.Validationf("invalid revenue range %q", in.RevenueRange)
	}
	if in.EmployeesCount != nil && *in.EmployeesCount < 0 {
		return models.Validationf("employees count cannot be negative")
	}
	return nil
}

// RegisterBusiness creates a business listing owned by the calling business
// owner.
func RegisterBusiness(ctx context.Context, s store.Store, actor models.User, in BusinessInput) (models.Business, error) {
	if actor.Role != models.RoleBusinessOwner {
		return models.Business{}, models.Authorizationf("only business owners can register businesses")
	}
	if err := validateBusinessInput(in); err != nil {
		return models.Business{}, err
	}

	b := models.Business{
		ID:             uuid.NewString(),
		OwnerID:        actor.ID,
		Name:           in.Name,
		Description:    in.Description,
		Category:       in.Category,
		Location:       in.Location,
		RevenueRange:   in.RevenueRange,
		EmployeesCount: in.EmployeesCount,
		Products:       in.Products,
		ImageURL:       in.ImageURL,
		CreatedAt:      time.Now().UTC(),
	}
	if b.Products == nil {
		b.Products = []string{}
	}
	if err := s.CreateBusiness(ctx, b); err != nil {
		return models.Business{}, err
	}
	return b, nil
}

// UpdateBusiness replaces the mutable fields of a listing. Only the owner may
// update it; snapshots already embedded in events keep the old values.
func UpdateBusiness(ctx context.Context, s store.Store, actor models.User, businessID string, in BusinessInput) (models.Business, error) {
	existing, err := s.GetBusiness(ctx, businessID)
	if err != nil {
		return models.Business{}, err
	}
	if actor.Role != models.RoleBusinessOwner || existing.OwnerID != actor.ID {
		return models.Business{}, models.Authorizationf("only the owner can update a business")
	}
	if err := validateBusinessInput(in); err != nil {
		return models.Business{}, err
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Category = in.Category
	existing.Location = in.Location
	existing.RevenueRange = in.RevenueRange
	existing.EmployeesCount = in.EmployeesCount
	existing.Products = in.Products
	existing.ImageURL = in.ImageURL
	if existing.Products == nil {
		existing.Products = []string{}
	}
	if err := s.UpdateBusiness(ctx, existing); err != nil {
		return models.Business{}, err
	}
	return existing, nil
}

// GetBusiness returns a single registry record.
func GetBusiness(ctx context.Context, s store.Store, id string) (models.Business, error) {
	return s.GetBusiness(ctx, id)
}

// ListBusinessesFor returns the registry slice the caller's role may see:
// business owners their own listings, NGOs and corporates the full registry.
func ListBusinessesFor(ctx context.Context, s store.Store, actor models.User) ([]models.Business, error) {
	if actor.Role == models.RoleBusinessOwner {
		return s.ListBusinessesByOwner(ctx, actor.ID)
	}
	return s.ListBusinesses(ctx)
}

// ListBusinessesByOwner returns the caller's own listings regardless of role
// dispatch (the "my businesses" view).
func ListBusinessesByOwner(ctx context.Context, s store.Store, actor models.User) ([]models.Business, error) {
	return s.ListBusinessesByOwner(ctx, actor.ID)
}

// CreateEvent validates the NGO's selections against the live registry,
// freezes each selected business into a snapshot and inserts the event, all
// or nothing. A selection referencing an unknown business fails the whole
// call with a ValidationError and no event is created.
func CreateEvent(ctx context.Context, s store.Store, actor models.User, in EventInput) (models.Event, error) {
	if actor.Role != models.RoleNGO {
		return models.Event{}, models.Authorizationf("only NGOs can create events")
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Event{}, models.Validationf("event title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return models.Event{}, models.Validationf("event description is required")
	}
	if in.Date.IsZero() {
		return models.Event{}, models.Validationf("event date is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return models.Event{}, models.Validationf("event location is required")
	}
	if strings.TrimSpace(in.TargetAudience) == "" {
		return models.Event{}, models.Validationf("event target audience is required")
	}
	if !models.ValidInitiativeType(in.InitiativeType) {
		return models.Event{}, models.Validationf("invalid initiative type %q", in.InitiativeType)
	}

	seen := make(map[string]bool, len(in.SelectedBusinessIDs))
	snapshots := make([]models.EventBusinessRef, 0, len(in.SelectedBusinessIDs))
	for _, id := range in.SelectedBusinessIDs {
		if seen[id] {
			return models.Event{}, models.Validationf("business %s selected more than once", id)
		}
		seen[id] = true

		b, err := s.GetBusiness(ctx, id)
		if models.IsNotFound(err) {
			return models.Event{}, models.Validationf("unknown business reference %s", id)
		}
		if err != nil {
			return models.Event{}, fmt.Errorf("error resolving business %s: %w", id, err)
		}
		// Copied by value: later edits to the business must not reach
		// the event.
		snapshots = append(snapshots, models.EventBusinessRef{
			BusinessID:   b.ID,
			BusinessName: b.Name,
			Description:  b.Description,
			Category:     b.Category,
		})
	}

	e := models.Event{
		ID:                      uuid.NewString(),
		NGOID:                   actor.ID,
		NGOName:                 actor.Name,
		Title:                   in.Title,
		Description:             in.Description,
		InitiativeType:          in.InitiativeType,
		Date:                    in.Date,
		Location:                in.Location,
		TargetAudience:          in.TargetAudience,
		Status:                  models.EventStatusOpen,
		ParticipatingBusinesses: snapshots,
		ConnectionsMade:         []string{},
		CreatedAt:               time.Now().UTC(),
	}
	if err := s.CreateEvent(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetEvent returns a single event with its snapshots and connection ids.
func GetEvent(ctx context.Context, s store.Store, id string) (models.Event, error) {
	return s.GetEvent(ctx, id)
}

// ListEventsFor routes the catalog query through the caller's role: an NGO
// sees its own events, a corporate browses every open event, a business
// owner sees the events any of its businesses participates in.
func ListEventsFor(ctx context.Context, s store.Store, actor models.User) ([]models.Event, error) {
	switch actor.Role {
	case models.RoleNGO:
		return s.ListEventsByNGO(ctx, actor.ID)

	case models.RoleCorporate:
		events, err := s.ListEvents(ctx)
		if err != nil {
			return nil, err
		}
		open := make([]models.Event, 0, len(events))
		for _, e := range events {
			if e.Status == models.EventStatusOpen {
				open = append(open, e)
			}
		}
		return open, nil

	case models.RoleBusinessOwner:
		businesses, err := s.ListBusinessesByOwner(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		owned := make(map[string]bool, len(businesses))
		for _, b := range businesses {
			owned[b.ID] = true
		}
		events, err := s.ListEvents(ctx)
		if err != nil {
			return nil, err
		}
		var participating []models.Event
		for _, e := range events {
			for _, ref := range e.ParticipatingBusinesses {
				if owned[ref.BusinessID] {
					participating = append(participating, e)
					break
				}
			}
		}
		return participating, nil
	}
	return nil, models.Authorizationf("unknown role %q", actor.Role)
}

// ExpressInterest records a corporate's interest in a business showcased by
// an event. The business must be on the event's snapshot list, not merely in
// the global registry, and a corporate can express interest in a given
// (event, business) pair at most once. The uniqueness check is atomic in the
// store, so a retry after ConflictError never creates a second connection.
func ExpressInterest(ctx context.Context, s store.Store, actor models.User, eventID, businessID, notes string) (models.Connection, error) {
	if actor.Role != models.RoleCorporate {
		return models.Connection{}, models.Authorizationf("only corporates can express interest")
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return models.Connection{}, err
	}
	if !event.HasBusiness(businessID) {
		return models.Connection{}, models.NotFoundf("business %s is not showcased by event %s", businessID, eventID)
	}

	c := models.Connection{
		ID:          uuid.NewString(),
		EventID:     eventID,
		BusinessID:  businessID,
		CorporateID: actor.ID,
		Notes:       notes,
		Status:      models.ConnectionStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.CreateConnection(ctx, c); err != nil {
		return models.Connection{}, err
	}
	return c, nil
}

// ListConnectionsFor routes the ledger query through the caller's role: a
// corporate sees the connections it created, a business owner the ones
// touching its businesses, an NGO the ones made at its events.
func ListConnectionsFor(ctx context.Context, s store.Store, actor models.User) ([]models.Connection, error) {
	switch actor.Role {
	case models.RoleCorporate:
		return s.ListConnectionsByCorporate(ctx, actor.ID)

	case models.RoleBusinessOwner:
		businesses, err := s.ListBusinessesByOwner(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(businesses))
		for i, b := range businesses {
			ids[i] = b.ID
		}
		return s.ListConnectionsByBusinesses(ctx, ids)

	case models.RoleNGO:
		events, err := s.ListEventsByNGO(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		return s.ListConnectionsByEvents(ctx, ids)
	}
	return nil, models.Authorizationf("unknown role %q", actor.Role)
}

// ResolveConnection lets the NGO that owns the connection's event accept or
// reject a pending connection. Accepted and rejected are terminal.
func ResolveConnection(ctx context.Context, s store.Store, actor models.User, connectionID, decision string) (models.Connection, error) {
	if decision != models.ConnectionStatusAccepted && decision != models.ConnectionStatusRejected {
		return models.Connection{}, models.Validationf("invalid decision %q", decision)
	}
	c, err := s.GetConnection(ctx, connectionID)
	if err != nil {
		return models.Connection{}, err
	}
	event, err := s.GetEvent(ctx, c.EventID)
	if err != nil {
		return models.Connection{}, err
	}
	if actor.Role != models.RoleNGO || event.NGOID != actor.ID {
		return models.Connection{}, models.Authorizationf("only the event's NGO can resolve a connection")
	}
	if c.Status != models.ConnectionStatusPending {
		return models.Connection{}, models.Conflictf("connection %s already resolved", connectionID)
	}
	if err := s.UpdateConnectionStatus(ctx, connectionID, decision); err != nil {
		return models.Connection{}, err
	}
	c.Status = decision
	return c, nil
}
