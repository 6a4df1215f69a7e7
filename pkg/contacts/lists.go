package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"

	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

// GetAllContactLists iterates over the portal's contact lists.
func (c *Client) GetAllContactLists(ctx context.Context) *Iterator[types.ContactList] {
	offset := -1
	return newIterator(ctx, func(ctx context.Context) ([]types.ContactList, bool, error) {
		query := url.Values{}
		query.Set(wire.ParamCount, strconv.Itoa(c.pageSize))
		if offset >= 0 {
			query.Set(wire.ParamOffset, strconv.Itoa(offset))
		}

		var page contactListsPage
		if err := c.get(ctx, wire.PathContactLists, query, &page); err != nil {
			return nil, false, err
		}
		offset = *page.Offset

		lists := make([]types.ContactList, 0, len(page.Lists))
		for _, rec := range page.Lists {
			lists = append(lists, rec.contactList())
		}
		return lists, *page.HasMore, nil
	})
}

// CreateStaticContactList creates a static list named name and returns it
// as the portal reports it.
func (c *Client) CreateStaticContactList(ctx context.Context, name string) (types.ContactList, error) {
	req := types.Request{
		Method: types.MethodPost,
		Path:   wire.PathContactLists,
		Body:   wire.FormatStaticContactList(name),
	}
	var rec contactListRecord
	if err := c.send(ctx, req, &rec); err != nil {
		return types.ContactList{}, err
	}
	return rec.contactList(), nil
}

// DeleteContactList deletes the list with the given numeric ID. An ID that
// is not an integer fails with the *strconv.NumError from parsing it,
// before any request is sent.
func (c *Client) DeleteContactList(ctx context.Context, listID string) error {
	id, err := strconv.ParseInt(listID, 10, 64)
	if err != nil {
		return fmt.Errorf("contact list id: %w", err)
	}
	return c.send(ctx, types.Request{Method: types.MethodDelete, Path: wire.ContactListPath(id)}, nil)
}

// AddContactsToList adds contacts to a list and returns the vids of those
// that were not members before.
func (c *Client) AddContactsToList(ctx context.Context, list types.ContactList, contacts []types.Contact) ([]int64, error) {
	return c.updateMembership(ctx, list, wire.ActionAdd, contacts)
}

// RemoveContactsFromList removes contacts from a list and returns the vids
// of those that were members.
func (c *Client) RemoveContactsFromList(ctx context.Context, list types.ContactList, contacts []types.Contact) ([]int64, error) {
	return c.updateMembership(ctx, list, wire.ActionRemove, contacts)
}

func (c *Client) updateMembership(ctx context.Context, list types.ContactList, action string, contacts []types.Contact) ([]int64, error) {
	updated := []int64{}
	for batch := range slices.Chunk(types.ContactVIDs(contacts), c.batchSize) {
		req := types.Request{
			Method: types.MethodPost,
			Path:   wire.ListMembershipPath(list.ID, action),
			Body:   wire.FormatListMembership(batch),
		}
		var result membershipResult
		if err := c.send(ctx, req, &result); err != nil {
			return updated, err
		}
		c.logger.DebugContext(ctx, "updated list membership",
			slog.Int64("list", list.ID),
			slog.String("action", action),
			slog.Int("updated", len(result.Updated)),
			slog.Int("discarded", len(result.Discarded)),
		)
		updated = append(updated, result.Updated...)
	}
	return updated, nil
}
