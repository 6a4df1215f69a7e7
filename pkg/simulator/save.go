package simulator

import (
	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

// SaveContacts simulates creating or updating contacts in batches of
// cfg.BatchSize. The calls are the property listing, which the client uses
// to serialize values, followed by one batch write per batch answered with an
// empty acknowledgment. WithFailureAt fails a batch as a whole.
func SaveContacts(cfg types.Config, contacts []types.Contact, available []types.Property, opts ...Option) Simulator {
	o := newOptions(opts)
	save := func() ([]types.APICall, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		batches, err := Paginate(contacts, cfg.BatchSize)
		if err != nil {
			return nil, err
		}

		definitions := types.PropertiesByName(available)
		bodies := make([]any, len(batches))
		for k, batch := range batches {
			body, err := wire.FormatContactsForSaving(batch, definitions)
			if err != nil {
				return nil, err
			}
			bodies[k] = body
		}

		return pagedCalls(
			len(batches),
			o.failure,
			false,
			func(k int) types.Request {
				return types.Request{Method: types.MethodPost, Path: wire.PathContactsBatch, Body: bodies[k]}
			},
			func(int, bool) any { return nil },
		)
	}
	return Combine(GetAllProperties(available), save)
}
