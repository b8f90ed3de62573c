package store

// schemaV1 is the initial database schema
const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS charts (
	score        TEXT PRIMARY KEY,
	source_path  TEXT NOT NULL,
	source_mtime INTEGER NOT NULL,
	axis         TEXT NOT NULL,
	global_key   TEXT,
	last_mn      INTEGER,
	output_path  TEXT NOT NULL,
	rendered_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_charts_source_path ON charts(source_path);
`
