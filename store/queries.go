package store

// Postgres queries. List queries order by the serial seq column so results
// come back in insertion order, stable across calls.
const (
	insertUserQuery = `
        INSERT INTO users (id, email, password_hash, name, role, organization, phone, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	selectUserQuery = `
        SELECT id, email, password_hash, name, role, organization, phone, created_at
        FROM users
        WHERE id = $1
    `

	selectUserByEmailQuery = `
        SELECT id, email, password_hash, name, role, organization, phone, created_at
        FROM users
        WHERE email = $1
    `

	insertBusinessQuery = `
        INSERT INTO businesses (id, owner_id, name, description, category, location,
            revenue_range, employees_count, products, image_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	updateBusinessQuery = `
        UPDATE businesses
        SET name = $2, description = $3, category = $4, location = $5,
            revenue_range = $6, employees_count = $7, products = $8, image_url = $9
        WHERE id = $1
    `

	selectBusinessQuery = `
        SELECT id, owner_id, name, description, category, location,
            revenue_range, employees_count, products, image_url, created_at
        FROM businesses
        WHERE id = $1
    `

	selectBusinessesByOwnerQuery = `
        SELECT id, owner_id, name, description, category, location,
            revenue_range, employees_count, products, image_url, created_at
        FROM businesses
        WHERE owner_id = $1
        ORDER BY seq
    `

	selectAllBusinessesQuery = `
        SELECT id, owner_id, name, description, category, location,
            revenue_range, employees_count, products, image_url, created_at
        FROM businesses
        ORDER BY seq
    `

	insertEventQuery = `
        INSERT INTO events (id, ngo_id, ngo_name, title, description, initiative_type,
            date, location, target_audience, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	insertEventBusinessQuery = `
        INSERT INTO event_businesses (event_id, position, business_id, business_name, description, category)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	selectEventQuery = `
        SELECT id, ngo_id, ngo_name, title, description, initiative_type,
            date, location, target_audience, status, created_at
        FROM events
        WHERE id = $1
    `

	selectEventsByNGOQuery = `
        SELECT id, ngo_id, ngo_name, title, description, initiative_type,
            date, location, target_audience, status, created_at
        FROM events
        WHERE ngo_id = $1
        ORDER BY seq
    `

	selectAllEventsQuery = `
        SELECT id, ngo_id, ngo_name, title, description, initiative_type,
            date, location, target_audience, status, created_at
        FROM events
        ORDER BY seq
    `

	selectEventBusinessesQuery = `
        SELECT business_id, business_name, description, category
        FROM event_businesses
        WHERE event_id = $1
        ORDER BY position
    `

	selectEventConnectionIDsQuery = `
        SELECT id
        FROM connections
        WHERE event_id = $1
        ORDER BY seq
    `

	insertConnectionQuery = `
        INSERT INTO connections (id, event_id, business_id, corporate_id, notes, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	selectConnectionQuery = `
        SELECT id, event_id, business_id, corporate_id, notes, status, created_at
        FROM connections
        WHERE id = $1
    `

	updateConnectionStatusQuery = `
        UPDATE connections
        SET status = $2
        WHERE id = $1
    `

	selectConnectionsByCorporateQuery = `
        SELECT id, event_id, business_id, corporate_id, notes, status, created_at
        FROM connections
        WHERE corporate_id = $1
        ORDER BY seq
    `

	selectConnectionsByBusinessesQuery = `
        SELECT id, event_id, business_id, corporate_id, notes, status, created_at
        FROM connections
        WHERE business_id = ANY($1)
        ORDER BY seq
    `

	selectConnectionsByEventsQuery = `
        SELECT id, event_id, business_id, corporate_id, notes, status, created_at
        FROM connections
        WHERE event_id = ANY($1)
        ORDER BY seq
    `

	insertNotificationQuery = `
        INSERT INTO notifications (id, user_id, type, content, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	selectNotificationsByUserQuery = `
        SELECT id, user_id, type, content, created_at, read_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY seq DESC
    `

	markNotificationsReadQuery = `
        UPDATE notifications
        SET read_at = NOW()
        WHERE user_id = $1 AND read_at IS NULL
    `
)
