package simulator

import (
	"time"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// Simulator produces the ordered API calls of one simulated operation.
// Each invocation builds fresh calls; generated identifiers differ between
// invocations.
type Simulator func() ([]types.APICall, error)

// Simulate runs the simulators in order and concatenates their calls.
func Simulate(sims ...Simulator) ([]types.APICall, error) {
	var calls []types.APICall
	for _, sim := range sims {
		simCalls, err := sim()
		if err != nil {
			return nil, err
		}
		calls = append(calls, simCalls...)
	}
	return calls, nil
}

// Combine returns a Simulator that runs sims in order.
func Combine(sims ...Simulator) Simulator {
	return func() ([]types.APICall, error) {
		return Simulate(sims...)
	}
}

// fromCalls wraps a fixed call builder that cannot fail.
func fromCalls(build func() []types.APICall) Simulator {
	return func() ([]types.APICall, error) {
		return build(), nil
	}
}

// Option configures a paged simulator. Options that do not apply to a
// simulator are ignored by it.
type Option func(*options)

type options struct {
	propertyNames []string
	cutoff        *time.Time
	contactList   *types.ContactList
	failure       *failure
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPropertyNames requests the named properties on retrieved contacts.
func WithPropertyNames(names ...string) Option {
	return func(o *options) {
		o.propertyNames = append([]string(nil), names...)
	}
}

// WithCutoff limits recency retrieval to contacts stamped at or after
// cutoff.
func WithCutoff(cutoff time.Time) Option {
	return func(o *options) {
		o.cutoff = &cutoff
	}
}

// ForContactList scopes a retrieval to the given list.
func ForContactList(list types.ContactList) Option {
	return func(o *options) {
		o.contactList = &list
	}
}

// WithFailureAt makes the page or batch call at index fail with err.
// Calls before it succeed and calls after it are not emitted. For
// retrievals an index past the last page adds one failing request after it.
func WithFailureAt(index int, err *types.APIError) Option {
	return func(o *options) {
		o.failure = &failure{at: index, err: err}
	}
}

// WithFailure fails a retrieval on the request after its last page, or a
// write on its last batch.
func WithFailure(err *types.APIError) Option {
	return func(o *options) {
		o.failure = &failure{afterLast: true, err: err}
	}
}

type failure struct {
	at        int
	afterLast bool
	err       *types.APIError
}

// index resolves the failing call among n page or batch calls. Retrievals
// are extendable: the failure may fall on a request following the last page.
func (f *failure) index(n int, extendable bool) (int, error) {
	at := f.at
	if f.afterLast {
		at = n
		if !extendable {
			at = n - 1
		}
	}
	if at < 0 {
		return 0, types.ErrFailureIndexInvalid
	}
	if extendable {
		return min(at, n), nil
	}
	if at >= n {
		return 0, types.ErrFailureIndexInvalid
	}
	return at, nil
}

// pagedCalls assembles n page or batch calls. request builds the k-th
// request; response builds the k-th successful body given whether another
// call follows.
func pagedCalls(
	n int,
	f *failure,
	extendable bool,
	request func(k int) types.Request,
	response func(k int, hasMore bool) any,
) ([]types.APICall, error) {
	if f == nil {
		calls := make([]types.APICall, 0, n)
		for k := range n {
			calls = append(calls, types.APICall{
				Request: request(k),
				Outcome: types.Success{Body: response(k, k+1 < n)},
			})
		}
		return calls, nil
	}

	at, err := f.index(n, extendable)
	if err != nil {
		return nil, err
	}
	calls := make([]types.APICall, 0, at+1)
	for k := range at {
		hasMore := k+1 < n || k+1 == at
		calls = append(calls, types.APICall{
			Request: request(k),
			Outcome: types.Success{Body: response(k, hasMore)},
		})
	}
	calls = append(calls, types.APICall{
		Request: request(at),
		Outcome: types.Failure{Err: f.err},
	})
	return calls, nil
}
