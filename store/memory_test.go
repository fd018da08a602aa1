package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"csrconnect/backend/models"
)

func seedEvent(t *testing.T, s *MemoryStore) models.Event {
	t.Helper()
	e := models.Event{
		ID:     uuid.NewString(),
		NGOID:  uuid.NewString(),
		Title:  "Showcase",
		Status: models.EventStatusOpen,
		ParticipatingBusinesses: []models.EventBusinessRef{
			{BusinessID: "b1", BusinessName: "B1"},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateEvent(context.Background(), e))
	return e
}

func TestConcurrentDuplicateExpression(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	e := seedEvent(t, s)
	corporateID := uuid.NewString()

	// Many goroutines race the same (event, business, corporate) triple;
	// exactly one insert may win.
	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateConnection(ctx, models.Connection{
				ID:          uuid.NewString(),
				EventID:     e.ID,
				BusinessID:  "b1",
				CorporateID: corporateID,
				Status:      models.ConnectionStatusPending,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.True(t, models.IsConflict(err))
		}
	}
	require.Equal(t, 1, succeeded)

	got, err := s.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, got.ConnectionsMade, 1)
}

func TestListOrderingIsStable(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	ownerID := uuid.NewString()

	var wantIDs []string
	for i := 0; i < 5; i++ {
		b := models.Business{
			ID:      uuid.NewString(),
			OwnerID: ownerID,
			Name:    "Business",
		}
		require.NoError(t, s.CreateBusiness(ctx, b))
		wantIDs = append(wantIDs, b.ID)
	}

	for run := 0; run < 3; run++ {
		businesses, err := s.ListBusinesses(ctx)
		require.NoError(t, err)
		var gotIDs []string
		for _, b := range businesses {
			gotIDs = append(gotIDs, b.ID)
		}
		require.Equal(t, wantIDs, gotIDs, "insertion order must be stable across calls")
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	employees := 4
	b := models.Business{
		ID:             uuid.NewString(),
		OwnerID:        uuid.NewString(),
		Name:           "Weavers",
		Products:       []string{"Sarees"},
		EmployeesCount: &employees,
	}
	require.NoError(t, s.CreateBusiness(ctx, b))

	got, err := s.GetBusiness(ctx, b.ID)
	require.NoError(t, err)
	got.Products[0] = "mutated"
	*got.EmployeesCount = 99

	fresh, err := s.GetBusiness(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "Sarees", fresh.Products[0])
	require.Equal(t, 4, *fresh.EmployeesCount)
}

func TestCreateUserEmailConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := models.User{ID: uuid.NewString(), Email: "dup@example.com", Role: models.RoleNGO}
	require.NoError(t, s.CreateUser(ctx, u))

	err := s.CreateUser(ctx, models.User{ID: uuid.NewString(), Email: "dup@example.com", Role: models.RoleNGO})
	require.True(t, models.IsConflict(err))
}

func TestMarkNotificationsRead(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	userID := uuid.NewString()

	for i := 0; i < 2; i++ {
		require.NoError(t, s.CreateNotification(ctx, models.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			Type:      "interest_expressed",
			Content:   "corporate expressed interest",
			CreatedAt: time.Now().UTC(),
		}))
	}

	require.NoError(t, s.MarkNotificationsRead(ctx, userID))

	list, err := s.ListNotificationsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, n := range list {
		require.NotNil(t, n.ReadAt)
	}
}
