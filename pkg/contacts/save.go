package contacts

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

// SaveContacts creates or updates contacts in batches. Property values are
// serialized according to the portal's definitions, fetched first. A failed
// batch is not retried and later batches are not sent.
func (c *Client) SaveContacts(ctx context.Context, contacts []types.Contact) error {
	properties, err := c.GetAllProperties(ctx)
	if err != nil {
		return err
	}
	definitions := types.PropertiesByName(properties)

	for batch := range slices.Chunk(contacts, c.batchSize) {
		body, err := wire.FormatContactsForSaving(batch, definitions)
		if err != nil {
			return err
		}
		req := types.Request{Method: types.MethodPost, Path: wire.PathContactsBatch, Body: body}
		if err := c.send(ctx, req, nil); err != nil {
			return err
		}
		c.logger.DebugContext(ctx, "saved contacts batch", slog.Int("contacts", len(batch)))
	}
	return nil
}
