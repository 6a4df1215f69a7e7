package portal

import (
	"context"
	"encoding/json"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// Connection sends one request to a HubSpot portal and returns the raw
// response body. A nil body means the portal acknowledged the request
// without content. Portal failures are returned as *types.APIError.
type Connection interface {
	Send(ctx context.Context, req types.Request) (json.RawMessage, error)
}

// Recorder receives every call a MockConnection dispatches, numbered from 0.
type Recorder interface {
	Record(seq int, call types.APICall) error
}
