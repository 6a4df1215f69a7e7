package sqlite

// Schema DDL. Statements are idempotent so an existing transcript database
// is reused.
const (
	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    scenario TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createCalls = `CREATE TABLE IF NOT EXISTS calls (
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    method TEXT NOT NULL,
    path TEXT NOT NULL,
    query TEXT NOT NULL,
    request_body TEXT,
    succeeded INTEGER NOT NULL,
    response_body TEXT,
    error_kind TEXT,
    error_code INTEGER,
    error_message TEXT,
    recorded_at TEXT NOT NULL,
    PRIMARY KEY (session_id, seq),
    FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxSessionsCreated = `CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);`
	idxCallsPath       = `CREATE INDEX IF NOT EXISTS idx_calls_path ON calls(path);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createSessions,
	createCalls,
	idxSessionsCreated,
	idxCallsPath,
}
