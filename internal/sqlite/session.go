package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// Session records the calls of one run. It implements portal.Recorder.
type Session struct {
	store *Store
	id    string
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Record stores the seq-th dispatched call of the session.
func (s *Session) Record(seq int, call types.APICall) error {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if s.store.closed {
		return ErrStoreClosed
	}
	rec, err := newCallRecord(seq, call)
	if err != nil {
		return err
	}
	rec.RecordedAt = s.store.now()
	return insertCall(s.store.db, s.id, rec)
}

func newCallRecord(seq int, call types.APICall) (CallRecord, error) {
	rec := CallRecord{
		Seq:       seq,
		Method:    call.Method,
		Path:      call.Path,
		Query:     call.Query.Encode(),
		Succeeded: call.Succeeded(),
		Err:       call.Err(),
	}
	var err error
	if rec.RequestBody, err = marshalBody(call.Body); err != nil {
		return CallRecord{}, fmt.Errorf("encoding request of call %d: %w", seq, err)
	}
	if rec.ResponseBody, err = marshalBody(call.ResponseBody()); err != nil {
		return CallRecord{}, fmt.Errorf("encoding response of call %d: %w", seq, err)
	}
	return rec, nil
}

func marshalBody(body any) (json.RawMessage, error) {
	if body == nil {
		return nil, nil
	}
	return json.Marshal(body)
}
