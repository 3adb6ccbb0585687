package database

// Migration is a single versioned schema change with its rollback script.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

// migrations is the ordered registry of schema changes. Versions are applied
// in slice order and recorded in migration_logs.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		UpScript: `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	public_id VARCHAR(36) NOT NULL,
	username VARCHAR(64) NOT NULL,
	password TEXT NOT NULL,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_public_id ON users (public_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username);`,
		DownScript: `DROP TABLE IF EXISTS users;`,
	},
	{
		Version: 2,
		Name:    "create_posts",
		UpScript: `
CREATE TABLE IF NOT EXISTS posts (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(200) NOT NULL,
	content TEXT NOT NULL,
	user_id BIGINT NOT NULL REFERENCES users (id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts (user_id);`,
		DownScript: `DROP TABLE IF EXISTS posts;`,
	},
}

// GetMigrationByVersion returns the registered migration for a version, or nil.
func GetMigrationByVersion(version int) *Migration {
	for i := range migrations {
		if migrations[i].Version == version {
			return &migrations[i]
		}
	}
	return nil
}
