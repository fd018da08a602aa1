package store

import (
	"context"
	"sync"
	"time"

	"csrconnect/backend/models"
)

// MemoryStore is an in-process Store with the same semantics as the Postgres
// implementation. A single mutex serializes every operation, which makes the
// connection triple check-then-insert atomic.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[string]*models.User
	userIDs     []string
	usersByMail map[string]string

	businesses  map[string]*models.Business
	businessIDs []string

	events   map[string]*models.Event
	eventIDs []string

	connections   map[string]*models.Connection
	connectionIDs []string
	// connection triples keyed "eventID/businessID/corporateID"
	triples map[string]bool

	notifications   map[string]*models.Notification
	notificationIDs []string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*models.User),
		usersByMail:   make(map[string]string),
		businesses:    make(map[string]*models.Business),
		events:        make(map[string]*models.Event),
		connections:   make(map[string]*models.Connection),
		triples:       make(map[string]bool),
		notifications: make(map[string]*models.Notification),
	}
}

func tripleKey(eventID, businessID, corporateID string) string {
	return eventID + "/" + businessID + "/" + corporateID
}

func cloneBusiness(b models.Business) models.Business {
	b.Products = append([]string(nil), b.Products...)
	if b.EmployeesCount != nil {
		n := *b.EmployeesCount
		b.EmployeesCount = &n
	}
	return b
}

func cloneEvent(e models.Event) models.Event {
	e.ParticipatingBusinesses = append([]models.EventBusinessRef(nil), e.ParticipatingBusinesses...)
	e.ConnectionsMade = append([]string(nil), e.ConnectionsMade...)
	return e
}

func (s *MemoryStore) CreateUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByMail[u.Email]; ok {
		return models.Conflictf("email %s already registered", u.Email)
	}
	cp := u
	s.users[u.ID] = &cp
	s.userIDs = append(s.userIDs, u.ID)
	s.usersByMail[u.Email] = u.ID
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.NotFoundf("user %s not found", id)
	}
	return *u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByMail[email]
	if !ok {
		return models.User{}, models.NotFoundf("no user with email %s", email)
	}
	return *s.users[id], nil
}

func (s *MemoryStore) CreateBusiness(_ context.Context, b models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneBusiness(b)
	s.businesses[b.ID] = &cp
	s.businessIDs = append(s.businessIDs, b.ID)
	return nil
}

func (s *MemoryStore) GetBusiness(_ context.Context, id string) (models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.businesses[id]
	if !ok {
		return models.Business{}, models.NotFoundf("business %s not found", id)
	}
	return cloneBusiness(*b), nil
}

func (s *MemoryStore) UpdateBusiness(_ context.Context, b models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.businesses[b.ID]
	if !ok {
		return models.NotFoundf("business %s not found", b.ID)
	}
	cp := cloneBusiness(b)
	cp.OwnerID = existing.OwnerID
	cp.CreatedAt = existing.CreatedAt
	s.businesses[b.ID] = &cp
	return nil
}

func (s *MemoryStore) ListBusinessesByOwner(_ context.Context, ownerID string) ([]models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Business
	for _, id := range s.businessIDs {
		if s.businesses[id].OwnerID == ownerID {
			out = append(out, cloneBusiness(*s.businesses[id]))
		}
	}
	return out, nil
}

func (s *MemoryStore) ListBusinesses(_ context.Context) ([]models.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Business, 0, len(s.businessIDs))
	for _, id := range s.businessIDs {
		out = append(out, cloneBusiness(*s.businesses[id]))
	}
	return out, nil
}

func (s *MemoryStore) CreateEvent(_ context.Context, e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneEvent(e)
	s.events[e.ID] = &cp
	s.eventIDs = append(s.eventIDs, e.ID)
	return nil
}

func (s *MemoryStore) GetEvent(_ context.Context, id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return models.Event{}, models.NotFoundf("event %s not found", id)
	}
	return cloneEvent(*e), nil
}

func (s *MemoryStore) ListEventsByNGO(_ context.Context, ngoID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, id := range s.eventIDs {
		if s.events[id].NGOID == ngoID {
			out = append(out, cloneEvent(*s.events[id]))
		}
	}
	return out, nil
}

func (s *MemoryStore) ListEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, 0, len(s.eventIDs))
	for _, id := range s.eventIDs {
		out = append(out, cloneEvent(*s.events[id]))
	}
	return out, nil
}

func (s *MemoryStore) CreateConnection(_ context.Context, c models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tripleKey(c.EventID, c.BusinessID, c.CorporateID)
	if s.triples[key] {
		return models.Conflictf("interest already expressed for this business at this event")
	}
	event, ok := s.events[c.EventID]
	if !ok {
		return models.NotFoundf("event %s not found", c.EventID)
	}
	cp := c
	s.connections[c.ID] = &cp
	s.connectionIDs = append(s.connectionIDs, c.ID)
	s.triples[key] = true
	event.ConnectionsMade = append(event.ConnectionsMade, c.ID)
	return nil
}

func (s *MemoryStore) GetConnection(_ context.Context, id string) (models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.connections[id]
	if !ok {
		return models.Connection{}, models.NotFoundf("connection %s not found", id)
	}
	return *c, nil
}

func (s *MemoryStore) UpdateConnectionStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.connections[id]
	if !ok {
		return models.NotFoundf("connection %s not found", id)
	}
	c.Status = status
	return nil
}

func (s *MemoryStore) ListConnectionsByCorporate(_ context.Context, corporateID string) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Connection
	for _, id := range s.connectionIDs {
		if s.connections[id].CorporateID == corporateID {
			out = append(out, *s.connections[id])
		}
	}
	return out, nil
}

func (s *MemoryStore) ListConnectionsByBusinesses(_ context.Context, businessIDs []string) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(businessIDs))
	for _, id := range businessIDs {
		wanted[id] = true
	}
	var out []models.Connection
	for _, id := range s.connectionIDs {
		if wanted[s.connections[id].BusinessID] {
			out = append(out, *s.connections[id])
		}
	}
	return out, nil
}

func (s *MemoryStore) ListConnectionsByEvents(_ context.Context, eventIDs []string) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}
	var out []models.Connection
	for _, id := range s.connectionIDs {
		if wanted[s.connections[id].EventID] {
			out = append(out, *s.connections[id])
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateNotification(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := n
	s.notifications[n.ID] = &cp
	s.notificationIDs = append(s.notificationIDs, n.ID)
	return nil
}

func (s *MemoryStore) ListNotificationsByUser(_ context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Notification
	for _, id := range s.notificationIDs {
		if s.notifications[id].UserID == userID {
			out = append(out, *s.notifications[id])
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkNotificationsRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, id := range s.notificationIDs {
		n := s.notifications[id]
		if n.UserID == userID && n.ReadAt == nil {
			t := now
			n.ReadAt = &t
		}
	}
	return nil
}
