package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todo_box (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT NOT NULL,
	color          TEXT NOT NULL DEFAULT '',
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	select_date_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todo_data (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT NOT NULL DEFAULT '',
	priority       TEXT NOT NULL DEFAULT 'MEDIUM',
	description    TEXT,
	is_checked     INTEGER NOT NULL DEFAULT 0 CHECK(is_checked IN (0, 1)),
	reminder_time  TEXT,
	status         TEXT NOT NULL DEFAULT 'PENDING',
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	select_date_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_modified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	sub_tasks      TEXT NOT NULL DEFAULT '[]',
	todo_box_id    INTEGER REFERENCES todo_box(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_todo_data_box_id ON todo_data(todo_box_id);
CREATE INDEX IF NOT EXISTS idx_todo_data_select_date ON todo_data(select_date_at);
CREATE INDEX IF NOT EXISTS idx_todo_data_status ON todo_data(status);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		// Boxes gained a last-modified timestamp. SQLite cannot ADD COLUMN
		// with a CURRENT_TIMESTAMP default, so existing rows are backfilled
		// with the migration time instead.
		version: 2,
		sql: `
ALTER TABLE todo_box ADD COLUMN last_modified_at DATETIME;

UPDATE todo_box SET last_modified_at = CURRENT_TIMESTAMP
	WHERE last_modified_at IS NULL;

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
