package db

// schemaStatements holds the DDL for every table, in dependency order.
//
// The UNIQUE constraint on connections (event_id, business_id, corporate_id)
// is load-bearing: it makes the duplicate interest-expression check atomic
// with the insert, so two concurrent requests for the same triple can never
// both succeed.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		organization TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL
	)`,

	`CREATE TABLE IF NOT EXISTS businesses (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		location TEXT NOT NULL,
		revenue_range TEXT NOT NULL DEFAULT '',
		employees_count INTEGER,
		products TEXT[] NOT NULL DEFAULT '{}',
		image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		ngo_id TEXT NOT NULL REFERENCES users(id),
		ngo_name TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		initiative_type TEXT NOT NULL,
		date TIMESTAMP WITH TIME ZONE NOT NULL,
		location TEXT NOT NULL,
		target_audience TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL
	)`,

	// Denormalized point-in-time copies of business showcase fields. No
	// foreign key to businesses: the snapshot outlives later edits to the
	// live record. The primary key keeps each business unique per event.
	`CREATE TABLE IF NOT EXISTS event_businesses (
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		business_id TEXT NOT NULL,
		business_name TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		PRIMARY KEY (event_id, business_id)
	)`,

	`CREATE TABLE IF NOT EXISTS connections (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL REFERENCES events(id),
		business_id TEXT NOT NULL,
		corporate_id TEXT NOT NULL REFERENCES users(id),
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		seq BIGSERIAL,
		UNIQUE (event_id, business_id, corporate_id)
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		read_at TIMESTAMP WITH TIME ZONE,
		seq BIGSERIAL
	)`,
}
