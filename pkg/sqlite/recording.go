// Package sqlite exposes the SQLite transcript store so tests outside this
// module can record what a mock portal connection dispatches.
package sqlite

import (
	"github.com/mesh-intelligence/contactsim/internal/sqlite"
	"github.com/mesh-intelligence/contactsim/pkg/portal"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

type (
	Store       = sqlite.Store
	Session     = sqlite.Session
	SessionInfo = sqlite.SessionInfo
	CallRecord  = sqlite.CallRecord
)

var (
	ErrStoreClosed     = sqlite.ErrStoreClosed
	ErrSessionNotFound = sqlite.ErrSessionNotFound
	ErrEmptyTranscript = sqlite.ErrEmptyTranscript
)

// Open opens, or creates, the transcript database in dataDir.
//
// Example:
//
//	store, err := sqlite.Open(t.TempDir())
//	defer store.Close()
func Open(dataDir string) (*Store, error) {
	return sqlite.Open(dataDir)
}

// NewRecordingConnection starts a session named scenario in store and
// returns a mock connection expecting calls that records each dispatched
// call in it.
func NewRecordingConnection(store *Store, scenario string, calls []types.APICall, opts ...portal.Option) (*portal.MockConnection, *Session, error) {
	session, err := store.CreateSession(scenario)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, portal.WithRecorder(session))
	return portal.NewMockConnection(calls, opts...), session, nil
}
