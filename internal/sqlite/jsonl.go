package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// ExportJSONL writes the calls of a session to path, one JSON object per
// line. The file is replaced atomically.
// Returns ErrSessionNotFound if no such session exists.
func (s *Store) ExportJSONL(sessionID, path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}
	scenario, err := s.scenario(sessionID)
	if err != nil {
		return err
	}
	calls, err := s.calls(sessionID)
	if err != nil {
		return err
	}

	records := make([]json.RawMessage, 0, len(calls))
	for _, rec := range calls {
		line := callJSON{
			SessionID:    sessionID,
			Scenario:     scenario,
			Seq:          rec.Seq,
			Method:       rec.Method,
			Path:         rec.Path,
			Query:        rec.Query,
			RequestBody:  rec.RequestBody,
			Succeeded:    rec.Succeeded,
			ResponseBody: rec.ResponseBody,
			RecordedAt:   formatTime(rec.RecordedAt),
		}
		if rec.Err != nil {
			line.Error = &errorJSON{Kind: string(rec.Err.Kind), Code: rec.Err.Code, Message: rec.Err.Message}
		}
		b, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("encoding call %d: %w", rec.Seq, err)
		}
		records = append(records, b)
	}
	return writeJSONL(path, records)
}

// ImportJSONL loads a transcript exported by ExportJSONL as a new session
// and returns its ID. Malformed lines are skipped. Loading is transactional:
// either every call is stored or none is.
// Returns ErrEmptyTranscript if the file holds no calls.
func (s *Store) ImportJSONL(path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}
	records, err := readJSONL(path)
	if err != nil {
		return "", err
	}

	var lines []callJSON
	for _, raw := range records {
		var line callJSON
		if err := json.Unmarshal(raw, &line); err != nil || line.Method == "" || line.Path == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyTranscript, path)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	id := generateUUID()
	if _, err := tx.Exec(
		"INSERT INTO sessions (session_id, scenario, created_at) VALUES (?, ?, ?)",
		id, lines[0].Scenario, formatTime(s.now()),
	); err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	for _, line := range lines {
		rec, err := line.callRecord()
		if err != nil {
			return "", err
		}
		if err := insertCall(tx, id, rec); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing import transaction: %w", err)
	}
	return id, nil
}

func (c callJSON) callRecord() (CallRecord, error) {
	recordedAt, err := parseTime(c.RecordedAt)
	if err != nil {
		return CallRecord{}, err
	}
	rec := CallRecord{
		Seq:          c.Seq,
		Method:       c.Method,
		Path:         c.Path,
		Query:        c.Query,
		RequestBody:  c.RequestBody,
		Succeeded:    c.Succeeded,
		ResponseBody: c.ResponseBody,
		RecordedAt:   recordedAt,
	}
	if c.Error != nil {
		rec.Err = &types.APIError{Kind: types.ErrorKind(c.Error.Kind), Code: c.Error.Code, Message: c.Error.Message}
	}
	return rec, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
