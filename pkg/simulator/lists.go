package simulator

import (
	"net/url"
	"strconv"

	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

// GetAllContactLists simulates listing contact lists, cfg.PageSize per page.
// The offset cursor is the number of lists returned so far.
func GetAllContactLists(cfg types.Config, lists []types.ContactList, opts ...Option) Simulator {
	o := newOptions(opts)
	return func() ([]types.APICall, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		pages, err := paginateAtLeastOne(lists, cfg.PageSize)
		if err != nil {
			return nil, err
		}

		// ends[k] is the offset returned with page k.
		ends := make([]int, len(pages))
		total := 0
		for k, page := range pages {
			total += len(page)
			ends[k] = total
		}

		return pagedCalls(
			len(pages),
			o.failure,
			true,
			func(k int) types.Request {
				query := url.Values{}
				query.Set(wire.ParamCount, strconv.Itoa(cfg.PageSize))
				if k > 0 {
					query.Set(wire.ParamOffset, strconv.Itoa(ends[k-1]))
				}
				return types.Request{Method: types.MethodGet, Path: wire.PathContactLists, Query: query}
			},
			func(k int, hasMore bool) any {
				listsData := make([]any, 0, len(pages[k]))
				for _, l := range pages[k] {
					listsData = append(listsData, contactListData(l))
				}
				return map[string]any{
					"lists":    listsData,
					"has-more": hasMore,
					"offset":   ends[k],
				}
			},
		)
	}
}

// CreateStaticContactList simulates creating a static list; the portal
// answers with the created list.
func CreateStaticContactList(list types.ContactList) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{
			Request: createStaticContactListRequest(list.Name),
			Outcome: types.Success{Body: contactListData(types.ContactList{ID: list.ID, Name: list.Name})},
		}}
	})
}

// UnsuccessfulCreateStaticContactList simulates a rejected list creation,
// such as a duplicate name.
func UnsuccessfulCreateStaticContactList(name string, err *types.APIError) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{
			Request: createStaticContactListRequest(name),
			Outcome: types.Failure{Err: err},
		}}
	})
}

func createStaticContactListRequest(name string) types.Request {
	return types.Request{
		Method: types.MethodPost,
		Path:   wire.PathContactLists,
		Body:   wire.FormatStaticContactList(name),
	}
}

// DeleteContactList simulates deleting a list.
func DeleteContactList(id int64) Simulator {
	return fromCalls(func() []types.APICall {
		return []types.APICall{{
			Request: types.Request{Method: types.MethodDelete, Path: wire.ContactListPath(id)},
			Outcome: types.Success{},
		}}
	})
}

// AddContactsToList simulates adding contacts to a list in write batches of
// cfg.BatchSize. Each response reports as updated the batch contacts that are
// also in updated; the rest were already members and are discarded.
func AddContactsToList(cfg types.Config, list types.ContactList, contacts, updated []types.Contact, opts ...Option) Simulator {
	return membershipUpdate(cfg, list, wire.ActionAdd, contacts, updated, newOptions(opts))
}

// RemoveContactsFromList simulates removing contacts from a list. updated
// holds the contacts that were members and get removed.
func RemoveContactsFromList(cfg types.Config, list types.ContactList, contacts, updated []types.Contact, opts ...Option) Simulator {
	return membershipUpdate(cfg, list, wire.ActionRemove, contacts, updated, newOptions(opts))
}

func membershipUpdate(cfg types.Config, list types.ContactList, action string, contacts, updated []types.Contact, o options) Simulator {
	return func() ([]types.APICall, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		batches, err := Paginate(types.ContactVIDs(contacts), cfg.BatchSize)
		if err != nil {
			return nil, err
		}

		updatedVIDs := make(map[int64]bool, len(updated))
		for _, c := range updated {
			updatedVIDs[c.VID] = true
		}

		return pagedCalls(
			len(batches),
			o.failure,
			false,
			func(k int) types.Request {
				return types.Request{
					Method: types.MethodPost,
					Path:   wire.ListMembershipPath(list.ID, action),
					Body:   wire.FormatListMembership(batches[k]),
				}
			},
			func(k int, _ bool) any {
				updatedInBatch := []any{}
				discarded := []any{}
				for _, vid := range batches[k] {
					if updatedVIDs[vid] {
						updatedInBatch = append(updatedInBatch, vid)
					} else {
						discarded = append(discarded, vid)
					}
				}
				return map[string]any{
					"updated":       updatedInBatch,
					"discarded":     discarded,
					"invalidVids":   []any{},
					"invalidEmails": []any{},
				}
			},
		)
	}
}

func contactListData(l types.ContactList) map[string]any {
	return map[string]any{
		"listId":   l.ID,
		"name":     l.Name,
		"dynamic":  l.IsDynamic,
		"portalId": stubPortalID,
	}
}
