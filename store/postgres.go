package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"csrconnect/backend/models"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique constraint. The connections triple constraint turns the duplicate
// interest-expression check into a single atomic insert.
const uniqueViolation = "23505"

// PostgresStore is the production Store, backed by a shared Postgres database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && string(pqErr.Code) == uniqueViolation
}

func (s *PostgresStore) CreateUser(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, insertUserQuery,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Organization, u.Phone, u.CreatedAt)
	if isUniqueViolation(err) {
		return models.Conflictf("email %s already registered", u.Email)
	}
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (s *PostgresStore) scanUser(row *sql.Row, id string) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.Organization, &u.Phone, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, models.NotFoundf("user %s not found", id)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error scanning user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, selectUserQuery, id), id)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, selectUserByEmailQuery, email), email)
}

func employeesValue(b models.Business) sql.NullInt64 {
	if b.EmployeesCount == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*b.EmployeesCount), Valid: true}
}

func (s *PostgresStore) CreateBusiness(ctx context.Context, b models.Business) error {
	_, err := s.db.ExecContext(ctx, insertBusinessQuery,
		b.ID, b.OwnerID, b.Name, b.Description, b.Category, b.Location,
		b.RevenueRange, employeesValue(b), pq.Array(b.Products), b.ImageURL, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting business: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateBusiness(ctx context.Context, b models.Business) error {
	res, err := s.db.ExecContext(ctx, updateBusinessQuery,
		b.ID, b.Name, b.Description, b.Category, b.Location,
		b.RevenueRange, employeesValue(b), pq.Array(b.Products), b.ImageURL)
	if err != nil {
		return fmt.Errorf("error updating business: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating business: %w", err)
	}
	if affected == 0 {
		return models.NotFoundf("business %s not found", b.ID)
	}
	return nil
}

func scanBusiness(scan func(dest ...any) error) (models.Business, error) {
	var b models.Business
	var employees sql.NullInt64
	err := scan(&b.ID, &b.OwnerID, &b.Name, &b.Description, &b.Category, &b.Location,
		&b.RevenueRange, &employees, pq.Array(&b.Products), &b.ImageURL, &b.CreatedAt)
	if err != nil {
		return models.Business{}, err
	}
	if employees.Valid {
		n := int(employees.Int64)
		b.EmployeesCount = &n
	}
	return b, nil
}

func (s *PostgresStore) GetBusiness(ctx context.Context, id string) (models.Business, error) {
	row := s.db.QueryRowContext(ctx, selectBusinessQuery, id)
	b, err := scanBusiness(row.Scan)
	if err == sql.ErrNoRows {
		return models.Business{}, models.NotFoundf("business %s not found", id)
	}
	if err != nil {
		return models.Business{}, fmt.Errorf("error scanning business: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) listBusinesses(ctx context.Context, query string, args ...any) ([]models.Business, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying businesses: %w", err)
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		b, err := scanBusiness(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("error scanning business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating businesses: %w", err)
	}
	return businesses, nil
}

func (s *PostgresStore) ListBusinessesByOwner(ctx context.Context, ownerID string) ([]models.Business, error) {
	return s.listBusinesses(ctx, selectBusinessesByOwnerQuery, ownerID)
}

func (s *PostgresStore) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	return s.listBusinesses(ctx, selectAllBusinessesQuery)
}

func (s *PostgresStore) CreateEvent(ctx context.Context, e models.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertEventQuery,
		e.ID, e.NGOID, e.NGOName, e.Title, e.Description, e.InitiativeType,
		e.Date, e.Location, e.TargetAudience, e.Status, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting event: %w", err)
	}

	for i, ref := range e.ParticipatingBusinesses {
		_, err = tx.ExecContext(ctx, insertEventBusinessQuery,
			e.ID, i, ref.BusinessID, ref.BusinessName, ref.Description, ref.Category)
		if err != nil {
			return fmt.Errorf("error inserting event business snapshot: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing event: %w", err)
	}
	return nil
}

func (s *PostgresStore) fillEvent(ctx context.Context, e *models.Event) error {
	rows, err := s.db.QueryContext(ctx, selectEventBusinessesQuery, e.ID)
	if err != nil {
		return fmt.Errorf("error querying event businesses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ref models.EventBusinessRef
		if err := rows.Scan(&ref.BusinessID, &ref.BusinessName, &ref.Description, &ref.Category); err != nil {
			return fmt.Errorf("error scanning event business: %w", err)
		}
		e.ParticipatingBusinesses = append(e.ParticipatingBusinesses, ref)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating event businesses: %w", err)
	}

	connRows, err := s.db.QueryContext(ctx, selectEventConnectionIDsQuery, e.ID)
	if err != nil {
		return fmt.Errorf("error querying event connections: %w", err)
	}
	defer connRows.Close()
	for connRows.Next() {
		var id string
		if err := connRows.Scan(&id); err != nil {
			return fmt.Errorf("error scanning connection id: %w", err)
		}
		e.ConnectionsMade = append(e.ConnectionsMade, id)
	}
	return connRows.Err()
}

func (s *PostgresStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	var e models.Event
	err := s.db.QueryRowContext(ctx, selectEventQuery, id).Scan(
		&e.ID, &e.NGOID, &e.NGOName, &e.Title, &e.Description, &e.InitiativeType,
		&e.Date, &e.Location, &e.TargetAudience, &e.Status, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Event{}, models.NotFoundf("event %s not found", id)
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("error scanning event: %w", err)
	}
	if err := s.fillEvent(ctx, &e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *PostgresStore) listEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		err := rows.Scan(&e.ID, &e.NGOID, &e.NGOName, &e.Title, &e.Description,
			&e.InitiativeType, &e.Date, &e.Location, &e.TargetAudience, &e.Status, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	for i := range events {
		if err := s.fillEvent(ctx, &events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (s *PostgresStore) ListEventsByNGO(ctx context.Context, ngoID string) ([]models.Event, error) {
	return s.listEvents(ctx, selectEventsByNGOQuery, ngoID)
}

func (s *PostgresStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.listEvents(ctx, selectAllEventsQuery)
}

func (s *PostgresStore) CreateConnection(ctx context.Context, c models.Connection) error {
	_, err := s.db.ExecContext(ctx, insertConnectionQuery,
		c.ID, c.EventID, c.BusinessID, c.CorporateID, c.Notes, c.Status, c.CreatedAt)
	if isUniqueViolation(err) {
		return models.Conflictf("interest already expressed for this business at this event")
	}
	if err != nil {
		return fmt.Errorf("error inserting connection: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetConnection(ctx context.Context, id string) (models.Connection, error) {
	var c models.Connection
	err := s.db.QueryRowContext(ctx, selectConnectionQuery, id).Scan(
		&c.ID, &c.EventID, &c.BusinessID, &c.CorporateID, &c.Notes, &c.Status, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Connection{}, models.NotFoundf("connection %s not found", id)
	}
	if err != nil {
		return models.Connection{}, fmt.Errorf("error scanning connection: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) UpdateConnectionStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, updateConnectionStatusQuery, id, status)
	if err != nil {
		return fmt.Errorf("error updating connection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating connection: %w", err)
	}
	if affected == 0 {
		return models.NotFoundf("connection %s not found", id)
	}
	return nil
}

func (s *PostgresStore) listConnections(ctx context.Context, query string, args ...any) ([]models.Connection, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying connections: %w", err)
	}
	defer rows.Close()

	var connections []models.Connection
	for rows.Next() {
		var c models.Connection
		err := rows.Scan(&c.ID, &c.EventID, &c.BusinessID, &c.CorporateID, &c.Notes, &c.Status, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning connection: %w", err)
		}
		connections = append(connections, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating connections: %w", err)
	}
	return connections, nil
}

func (s *PostgresStore) ListConnectionsByCorporate(ctx context.Context, corporateID string) ([]models.Connection, error) {
	return s.listConnections(ctx, selectConnectionsByCorporateQuery, corporateID)
}

func (s *PostgresStore) ListConnectionsByBusinesses(ctx context.Context, businessIDs []string) ([]models.Connection, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	return s.listConnections(ctx, selectConnectionsByBusinessesQuery, pq.Array(businessIDs))
}

func (s *PostgresStore) ListConnectionsByEvents(ctx context.Context, eventIDs []string) ([]models.Connection, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	return s.listConnections(ctx, selectConnectionsByEventsQuery, pq.Array(eventIDs))
}

func (s *PostgresStore) CreateNotification(ctx context.Context, n models.Notification) error {
	_, err := s.db.ExecContext(ctx, insertNotificationQuery,
		n.ID, n.UserID, n.Type, n.Content, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, selectNotificationsByUserQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Content, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

func (s *PostgresStore) MarkNotificationsRead(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, markNotificationsReadQuery, userID); err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}
