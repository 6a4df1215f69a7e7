package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/eapache/queue"

	"github.com/mesh-intelligence/contactsim/internal/logging"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// MockConnection replays prepared API calls. Each Send must match the next
// pending call exactly; the call's outcome is then returned. MockConnection
// is not safe for concurrent use.
type MockConnection struct {
	pending    *queue.Queue
	dispatched []types.APICall
	closed     bool
	logger     *logging.Logger
	recorder   Recorder
}

// Option configures a MockConnection.
type Option func(*MockConnection)

// WithLogger logs each dispatched call at debug level.
func WithLogger(logger *logging.Logger) Option {
	return func(m *MockConnection) {
		m.logger = logger.WithComponent("portal")
	}
}

// WithRecorder passes each dispatched call to r.
func WithRecorder(r Recorder) Option {
	return func(m *MockConnection) {
		m.recorder = r
	}
}

// NewMockConnection returns a connection expecting calls in order.
func NewMockConnection(calls []types.APICall, opts ...Option) *MockConnection {
	m := &MockConnection{
		pending: queue.New(),
		logger:  logging.Discard(),
	}
	for _, call := range calls {
		m.pending.Add(call)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send matches req against the next pending call and returns its outcome.
// Returns ErrUnexpectedCall if no call is pending, ErrRequestMismatch if req
// differs from the pending request, or the call's *types.APIError if it was
// simulated to fail.
func (m *MockConnection) Send(ctx context.Context, req types.Request) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.closed {
		return nil, types.ErrConnectionClosed
	}
	if m.pending.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrUnexpectedCall, req)
	}

	call := m.pending.Peek().(types.APICall)
	if err := matchRequest(call.Request, req); err != nil {
		return nil, err
	}
	m.pending.Remove()

	seq := len(m.dispatched)
	m.dispatched = append(m.dispatched, call)
	m.logger.DebugContext(ctx, "dispatched call",
		slog.Int("seq", seq),
		slog.String("request", req.String()),
		slog.Bool("succeeded", call.Succeeded()),
	)
	if m.recorder != nil {
		if err := m.recorder.Record(seq, call); err != nil {
			return nil, fmt.Errorf("recording call %d: %w", seq, err)
		}
	}

	switch outcome := call.Outcome.(type) {
	case types.Failure:
		if outcome.Err == nil {
			return nil, types.NewServerError("unspecified failure", 500)
		}
		return nil, outcome.Err
	case types.Success:
		if outcome.Body == nil {
			return nil, nil
		}
		body, err := json.Marshal(outcome.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding response of %s: %w", req, err)
		}
		return body, nil
	default:
		return nil, nil
	}
}

// Pending returns the number of calls not yet dispatched.
func (m *MockConnection) Pending() int {
	return m.pending.Length()
}

// Dispatched returns the calls dispatched so far, in order.
func (m *MockConnection) Dispatched() []types.APICall {
	return append([]types.APICall(nil), m.dispatched...)
}

// Close ends the session. Returns ErrUnconsumedCalls if prepared calls were
// never requested.
func (m *MockConnection) Close() error {
	m.closed = true
	if n := m.pending.Length(); n > 0 {
		next := m.pending.Peek().(types.APICall)
		return fmt.Errorf("%w: %d pending, next %s", types.ErrUnconsumedCalls, n, next.Request)
	}
	return nil
}

// matchRequest compares method, path, query and JSON body.
func matchRequest(want, got types.Request) error {
	if want.Method != got.Method || want.Path != got.Path {
		return fmt.Errorf("%w: want %s, got %s", types.ErrRequestMismatch, want, got)
	}
	if want.Query.Encode() != got.Query.Encode() {
		return fmt.Errorf("%w: query of %s: want %q, got %q",
			types.ErrRequestMismatch, want.Path, want.Query.Encode(), got.Query.Encode())
	}
	wantBody, err := normalizeBody(want.Body)
	if err != nil {
		return err
	}
	gotBody, err := normalizeBody(got.Body)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(wantBody, gotBody) {
		return fmt.Errorf("%w: body of %s: want %v, got %v", types.ErrRequestMismatch, want, wantBody, gotBody)
	}
	return nil
}

// normalizeBody reduces a body to its JSON data model so bodies built from
// different Go types compare equal when they encode the same document.
func normalizeBody(body any) (any, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("decoding request body: %w", err)
	}
	return normalized, nil
}
