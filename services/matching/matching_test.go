package matching

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"csrconnect/backend/models"
	"csrconnect/backend/store"
)

func newUser(t *testing.T, s store.Store, role string) models.User {
	t.Helper()
	u := models.User{
		ID:        uuid.NewString(),
		Email:     uuid.NewString() + "@example.com",
		Name:      role + " user",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func businessInput() BusinessInput {
	employees := 8
	return BusinessInput{
		Name:           "Sita's Achar Enterprise",
		Description:    "Traditional homemade achar and pickles",
		Category:       "achar",
		Location:       "Anandpur, Bhopal, Madhya Pradesh",
		RevenueRange:   "0-50k",
		EmployeesCount: &employees,
		Products:       []string{"Mango Achar", "Lemon Pickle"},
	}
}

func eventInput(businessIDs ...string) EventInput {
	return EventInput{
		Title:               "Rural Women Entrepreneurs Showcase",
		Description:         "Showcasing rural businesses to corporate partners",
		InitiativeType:      "women_empowerment",
		Date:                time.Now().AddDate(0, 1, 0),
		Location:            "Bhopal",
		TargetAudience:      "Corporate CSR teams",
		SelectedBusinessIDs: businessIDs,
	}
}

func TestRegisterBusinessRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	owner := newUser(t, s, models.RoleBusinessOwner)

	in := businessInput()
	b, err := RegisterBusiness(ctx, s, owner, in)
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	require.Equal(t, owner.ID, b.OwnerID)

	got, err := GetBusiness(ctx, s, b.ID)
	require.NoError(t, err)
	require.Equal(t, in.Name, got.Name)
	require.Equal(t, in.Description, got.Description)
	require.Equal(t, in.Category, got.Category)
	require.Equal(t, in.Location, got.Location)
	require.Equal(t, in.RevenueRange, got.RevenueRange)
	require.Equal(t, *in.EmployeesCount, *got.EmployeesCount)
	require.Equal(t, in.Products, got.Products)
}

func TestRegisterBusinessRoleCheck(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	for _, role := range []string{models.RoleNGO, models.RoleCorporate} {
		actor := newUser(t, s, role)
		_, err := RegisterBusiness(ctx, s, actor, businessInput())
		require.True(t, models.IsAuthorization(err), "role %s should be rejected", role)
	}
}

func TestRegisterBusinessValidation(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	owner := newUser(t, s, models.RoleBusinessOwner)

	tests := []struct {
		name   string
		mutate func(*BusinessInput)
	}{
		{"blank name", func(in *BusinessInput) { in.Name = "  " }},
		{"blank description", func(in *BusinessInput) { in.Description = "" }},
		{"blank location", func(in *BusinessInput) { in.Location = "" }},
		{"unknown category", func(in *BusinessInput) { in.Category = "software" }},
		{"unknown revenue range", func(in *BusinessInput) { in.RevenueRange = "1m+" }},
		{"negative employees", func(in *BusinessInput) {
			n := -1
			in.EmployeesCount = &n
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := businessInput()
			tt.mutate(&in)
			_, err := RegisterBusiness(ctx, s, owner, in)
			require.True(t, models.IsValidation(err))
		})
	}

	// absent employee count is fine
	in := businessInput()
	in.EmployeesCount = nil
	in.RevenueRange = ""
	_, err := RegisterBusiness(ctx, s, owner, in)
	require.NoError(t, err)
}

func TestCreateEventValidation(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ngo := newUser(t, s, models.RoleNGO)
	owner := newUser(t, s, models.RoleBusinessOwner)

	b, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)

	_, err = CreateEvent(ctx, s, owner, eventInput(b.ID))
	require.True(t, models.IsAuthorization(err))

	tests := []struct {
		name   string
		mutate func(*EventInput)
	}{
		{"blank title", func(in *EventInput) { in.Title = "" }},
		{"blank description", func(in *EventInput) { in.Description = " " }},
		{"zero date", func(in *EventInput) { in.Date = time.Time{} }},
		{"blank location", func(in *EventInput) { in.Location = "" }},
		{"blank target audience", func(in *EventInput) { in.TargetAudience = "" }},
		{"unknown initiative type", func(in *EventInput) { in.InitiativeType = "charity" }},
		{"duplicate selection", func(in *EventInput) {
			in.SelectedBusinessIDs = []string{b.ID, b.ID}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := eventInput(b.ID)
			tt.mutate(&in)
			_, err := CreateEvent(ctx, s, ngo, in)
			require.True(t, models.IsValidation(err))
		})
	}
}

func TestCreateEventUnknownBusinessIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ngo := newUser(t, s, models.RoleNGO)
	owner := newUser(t, s, models.RoleBusinessOwner)

	b, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)

	_, err = CreateEvent(ctx, s, ngo, eventInput(b.ID, "no-such-business"))
	require.True(t, models.IsValidation(err))
	require.Contains(t, err.Error(), "unknown business reference")

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Empty(t, events, "failed creation must not leave a partial event")
}

func TestEventSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ngo := newUser(t, s, models.RoleNGO)
	owner := newUser(t, s, models.RoleBusinessOwner)

	b, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)

	e, err := CreateEvent(ctx, s, ngo, eventInput(b.ID))
	require.NoError(t, err)
	require.Len(t, e.ParticipatingBusinesses, 1)
	require.Equal(t, models.EventStatusOpen, e.Status)
	require.Equal(t, ngo.Name, e.NGOName)

	// Edit the live record after the snapshot was taken.
	in := businessInput()
	in.Name = "Renamed Enterprise"
	in.Description = "Completely new description"
	_, err = UpdateBusiness(ctx, s, owner, b.ID, in)
	require.NoError(t, err)

	got, err := GetEvent(ctx, s, e.ID)
	require.NoError(t, err)
	ref := got.ParticipatingBusinesses[0]
	require.Equal(t, "Sita's Achar Enterprise", ref.BusinessName)
	require.Equal(t, "Traditional homemade achar and pickles", ref.Description)

	// The registry itself does see the edit.
	live, err := GetBusiness(ctx, s, b.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed Enterprise", live.Name)
}

func TestExpressInterestGuards(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ngo := newUser(t, s, models.RoleNGO)
	owner := newUser(t, s, models.RoleBusinessOwner)
	corporate := newUser(t, s, models.RoleCorporate)

	showcased, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)
	other, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)

	e, err := CreateEvent(ctx, s, ngo, eventInput(showcased.ID))
	require.NoError(t, err)

	_, err = ExpressInterest(ctx, s, ngo, e.ID, showcased.ID, "")
	require.True(t, models.IsAuthorization(err))

	_, err = ExpressInterest(ctx, s, corporate, "no-such-event", showcased.ID, "")
	require.True(t, models.IsNotFound(err))

	// Registered business, but not showcased by this event.
	_, err = ExpressInterest(ctx, s, corporate, e.ID, other.ID, "")
	require.True(t, models.IsNotFound(err))

	conn, err := ExpressInterest(ctx, s, corporate, e.ID, showcased.ID, "interested")
	require.NoError(t, err)
	require.Equal(t, models.ConnectionStatusPending, conn.Status)

	_, err = ExpressInterest(ctx, s, corporate, e.ID, showcased.ID, "interested again")
	require.True(t, models.IsConflict(err))

	connections, err := ListConnectionsFor(ctx, s, corporate)
	require.NoError(t, err)
	require.Len(t, connections, 1, "retry after conflict must not create a second connection")
}

func TestInterestScenario(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	n1 := newUser(t, s, models.RoleNGO)
	owner := newUser(t, s, models.RoleBusinessOwner)
	c1 := newUser(t, s, models.RoleCorporate)

	b1, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)
	b2In := businessInput()
	b2In.Name = "Papad Collective"
	b2In.Category = "papad"
	b2, err := RegisterBusiness(ctx, s, owner, b2In)
	require.NoError(t, err)

	e1, err := CreateEvent(ctx, s, n1, eventInput(b1.ID, b2.ID))
	require.NoError(t, err)

	conn, err := ExpressInterest(ctx, s, c1, e1.ID, b1.ID, "interested")
	require.NoError(t, err)
	require.Equal(t, models.ConnectionStatusPending, conn.Status)

	got, err := GetEvent(ctx, s, e1.ID)
	require.NoError(t, err)
	require.Equal(t, []string{conn.ID}, got.ConnectionsMade)

	_, err = ExpressInterest(ctx, s, c1, e1.ID, b1.ID, "interested")
	require.True(t, models.IsConflict(err))

	got, err = GetEvent(ctx, s, e1.ID)
	require.NoError(t, err)
	require.Len(t, got.ConnectionsMade, 1)

	// Owner edits B1; E1's snapshot keeps the original description.
	edit := businessInput()
	edit.Description = "New description after the event"
	_, err = UpdateBusiness(ctx, s, owner, b1.ID, edit)
	require.NoError(t, err)

	got, err = GetEvent(ctx, s, e1.ID)
	require.NoError(t, err)
	require.Equal(t, "Traditional homemade achar and pickles", got.ParticipatingBusinesses[0].Description)
}

func TestListEventsForRoleViews(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	n1 := newUser(t, s, models.RoleNGO)
	n2 := newUser(t, s, models.RoleNGO)
	owner1 := newUser(t, s, models.RoleBusinessOwner)
	owner2 := newUser(t, s, models.RoleBusinessOwner)
	corporate := newUser(t, s, models.RoleCorporate)

	b1, err := RegisterBusiness(ctx, s, owner1, businessInput())
	require.NoError(t, err)
	b2, err := RegisterBusiness(ctx, s, owner2, businessInput())
	require.NoError(t, err)

	e1, err := CreateEvent(ctx, s, n1, eventInput(b1.ID))
	require.NoError(t, err)
	e2, err := CreateEvent(ctx, s, n2, eventInput(b2.ID))
	require.NoError(t, err)

	ngoEvents, err := ListEventsFor(ctx, s, n1)
	require.NoError(t, err)
	require.Len(t, ngoEvents, 1)
	require.Equal(t, e1.ID, ngoEvents[0].ID)

	corporateEvents, err := ListEventsFor(ctx, s, corporate)
	require.NoError(t, err)
	require.Len(t, corporateEvents, 2)

	ownerEvents, err := ListEventsFor(ctx, s, owner2)
	require.NoError(t, err)
	require.Len(t, ownerEvents, 1)
	require.Equal(t, e2.ID, ownerEvents[0].ID)
}

func TestListBusinessesForRoleViews(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	ngo := newUser(t, s, models.RoleNGO)
	owner1 := newUser(t, s, models.RoleBusinessOwner)
	owner2 := newUser(t, s, models.RoleBusinessOwner)

	b1, err := RegisterBusiness(ctx, s, owner1, businessInput())
	require.NoError(t, err)
	_, err = RegisterBusiness(ctx, s, owner2, businessInput())
	require.NoError(t, err)

	own, err := ListBusinessesFor(ctx, s, owner1)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, b1.ID, own[0].ID)

	all, err := ListBusinessesFor(ctx, s, ngo)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestListConnectionsForRoleViews(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	n1 := newUser(t, s, models.RoleNGO)
	n2 := newUser(t, s, models.RoleNGO)
	owner := newUser(t, s, models.RoleBusinessOwner)
	c1 := newUser(t, s, models.RoleCorporate)
	c2 := newUser(t, s, models.RoleCorporate)

	b, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)

	e1, err := CreateEvent(ctx, s, n1, eventInput(b.ID))
	require.NoError(t, err)
	e2, err := CreateEvent(ctx, s, n2, eventInput(b.ID))
	require.NoError(t, err)

	conn1, err := ExpressInterest(ctx, s, c1, e1.ID, b.ID, "")
	require.NoError(t, err)
	_, err = ExpressInterest(ctx, s, c2, e2.ID, b.ID, "")
	require.NoError(t, err)

	mine, err := ListConnectionsFor(ctx, s, c1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, conn1.ID, mine[0].ID)

	// The owner's single business was showcased at both events.
	ownerView, err := ListConnectionsFor(ctx, s, owner)
	require.NoError(t, err)
	require.Len(t, ownerView, 2)

	ngoView, err := ListConnectionsFor(ctx, s, n1)
	require.NoError(t, err)
	require.Len(t, ngoView, 1)
	require.Equal(t, conn1.ID, ngoView[0].ID)
}

func TestResolveConnection(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	n1 := newUser(t, s, models.RoleNGO)
	n2 := newUser(t, s, models.RoleNGO)
	owner := newUser(t, s, models.RoleBusinessOwner)
	corporate := newUser(t, s, models.RoleCorporate)

	b, err := RegisterBusiness(ctx, s, owner, businessInput())
	require.NoError(t, err)
	e, err := CreateEvent(ctx, s, n1, eventInput(b.ID))
	require.NoError(t, err)
	conn, err := ExpressInterest(ctx, s, corporate, e.ID, b.ID, "")
	require.NoError(t, err)

	_, err = ResolveConnection(ctx, s, n1, conn.ID, "maybe")
	require.True(t, models.IsValidation(err))

	_, err = ResolveConnection(ctx, s, n2, conn.ID, models.ConnectionStatusAccepted)
	require.True(t, models.IsAuthorization(err), "only the event's NGO may resolve")

	_, err = ResolveConnection(ctx, s, corporate, conn.ID, models.ConnectionStatusAccepted)
	require.True(t, models.IsAuthorization(err))

	resolved, err := ResolveConnection(ctx, s, n1, conn.ID, models.ConnectionStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionStatusAccepted, resolved.Status)

	// accepted is terminal
	_, err = ResolveConnection(ctx, s, n1, conn.ID, models.ConnectionStatusRejected)
	require.True(t, models.IsConflict(err))
}
