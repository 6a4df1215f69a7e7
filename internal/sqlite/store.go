// Package sqlite implements the transcript store: every call a mock portal
// connection dispatches can be recorded per session in a SQLite database and
// exported to or imported from JSONL files.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// DatabaseFile is the name of the transcript database inside the data
// directory.
const DatabaseFile = "transcripts.db"

// Store errors.
var (
	ErrStoreClosed     = errors.New("transcript store is closed")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyTranscript = errors.New("transcript has no calls")
)

// Store persists recorded sessions. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	closed bool
	db     *sql.DB
	now    func() time.Time
}

// SessionInfo describes a recorded session.
type SessionInfo struct {
	ID        string
	Scenario  string
	CreatedAt time.Time
	Calls     int
}

// CallRecord is one recorded call.
type CallRecord struct {
	Seq          int
	Method       string
	Path         string
	Query        string
	RequestBody  json.RawMessage
	Succeeded    bool
	ResponseBody json.RawMessage
	Err          *types.APIError
	RecordedAt   time.Time
}

// Open opens the transcript database in dataDir, creating the directory and
// schema if needed. Existing sessions are kept.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dsn := filepath.Join(dataDir, DatabaseFile) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// CreateSession starts a session for scenario and returns a recorder for
// its calls.
// Returns ErrStoreClosed if the store is closed.
func (s *Store) CreateSession(scenario string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	id := generateUUID()
	_, err := s.db.Exec(
		"INSERT INTO sessions (session_id, scenario, created_at) VALUES (?, ?, ?)",
		id, scenario, formatTime(s.now()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &Session{store: s, id: id}, nil
}

// Sessions returns every session, oldest first.
func (s *Store) Sessions() ([]SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	rows, err := s.db.Query(`SELECT s.session_id, s.scenario, s.created_at, COUNT(c.seq)
        FROM sessions s LEFT JOIN calls c ON c.session_id = s.session_id
        GROUP BY s.session_id
        ORDER BY s.created_at, s.session_id`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var (
			info      SessionInfo
			createdAt string
		)
		if err := rows.Scan(&info.ID, &info.Scenario, &createdAt, &info.Calls); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if info.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// Calls returns the calls recorded in a session, in dispatch order.
// Returns ErrSessionNotFound if no such session exists.
func (s *Store) Calls(sessionID string) ([]CallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if _, err := s.scenario(sessionID); err != nil {
		return nil, err
	}
	return s.calls(sessionID)
}

func (s *Store) scenario(sessionID string) (string, error) {
	var scenario string
	err := s.db.QueryRow("SELECT scenario FROM sessions WHERE session_id = ?", sessionID).Scan(&scenario)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return "", fmt.Errorf("querying session: %w", err)
	}
	return scenario, nil
}

func (s *Store) calls(sessionID string) ([]CallRecord, error) {
	rows, err := s.db.Query(`SELECT seq, method, path, query, request_body, succeeded,
        response_body, error_kind, error_code, error_message, recorded_at
        FROM calls WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying calls: %w", err)
	}
	defer rows.Close()

	var records []CallRecord
	for rows.Next() {
		var (
			rec          CallRecord
			requestBody  sql.NullString
			responseBody sql.NullString
			errKind      sql.NullString
			errCode      sql.NullInt64
			errMessage   sql.NullString
			recordedAt   string
		)
		if err := rows.Scan(&rec.Seq, &rec.Method, &rec.Path, &rec.Query, &requestBody, &rec.Succeeded,
			&responseBody, &errKind, &errCode, &errMessage, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning call: %w", err)
		}
		if requestBody.Valid {
			rec.RequestBody = json.RawMessage(requestBody.String)
		}
		if responseBody.Valid {
			rec.ResponseBody = json.RawMessage(responseBody.String)
		}
		if errKind.Valid {
			rec.Err = &types.APIError{
				Kind:    types.ErrorKind(errKind.String),
				Code:    int(errCode.Int64),
				Message: errMessage.String,
			}
		}
		if rec.RecordedAt, err = parseTime(recordedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// insertCall writes one call row through exec, which is the database or an
// import transaction.
func insertCall(exec execer, sessionID string, rec CallRecord) error {
	var errKind, errMessage, errCode any
	if rec.Err != nil {
		errKind, errCode, errMessage = string(rec.Err.Kind), rec.Err.Code, rec.Err.Message
	}
	_, err := exec.Exec(`INSERT INTO calls (session_id, seq, method, path, query, request_body,
        succeeded, response_body, error_kind, error_code, error_message, recorded_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, rec.Seq, rec.Method, rec.Path, rec.Query, nullableJSON(rec.RequestBody),
		rec.Succeeded, nullableJSON(rec.ResponseBody), errKind, errCode, errMessage,
		formatTime(rec.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting call %d: %w", rec.Seq, err)
	}
	return nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// generateUUID generates a UUID v7 for session IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
