package simulator

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

const emailPropertyName = "email"

// GetAllContacts simulates retrieving every contact, or every contact of a
// list with ForContactList. The calls are the property listing the client
// needs for type casting, followed by one call per page of cfg.PageSize
// contacts.
func GetAllContacts(cfg types.Config, contacts []types.Contact, available []types.Property, opts ...Option) Simulator {
	o := newOptions(opts)
	path := wire.PathAllContacts
	if o.contactList != nil {
		path = wire.ListContactsPath(o.contactList.ID)
	}
	r := retrieval{cfg: cfg, options: o, path: path}
	return Combine(GetAllProperties(available), r.simulate(contacts))
}

// GetAllContactsByLastUpdate simulates retrieving contacts from the most
// recently updated to the least, or a list's contacts by the date they
// were added with ForContactList. Contact i is stamped AddedAt(cfg, i); with
// WithCutoff only the contacts stamped at or after the cutoff are returned.
func GetAllContactsByLastUpdate(cfg types.Config, contacts []types.Contact, available []types.Property, opts ...Option) Simulator {
	o := newOptions(opts)
	path := wire.PathRecentContacts
	if o.contactList != nil {
		path = wire.ListRecentContactsPath(o.contactList.ID)
	}
	r := retrieval{cfg: cfg, options: o, path: path, byLastUpdate: true}
	return Combine(GetAllProperties(available), r.simulate(FilterByCutoff(cfg, contacts, o.cutoff)))
}

// AddedAtTimestamp returns the synthetic timestamp, in epoch milliseconds,
// of the contact at position index of a recency retrieval.
func AddedAtTimestamp(cfg types.Config, index int) int64 {
	return cfg.MostRecentUpdate.UnixMilli() - int64(index)
}

// AddedAt returns the synthetic update instant of the contact at position
// index of a recency retrieval.
func AddedAt(cfg types.Config, index int) time.Time {
	return time.UnixMilli(AddedAtTimestamp(cfg, index)).UTC()
}

// FilterByCutoff returns the prefix of contacts whose synthetic timestamps
// are at or after cutoff. Timestamps strictly decrease with position, so the
// kept contacts always form a prefix. A nil cutoff keeps everything; a
// cutoff later than cfg.MostRecentUpdate keeps nothing.
func FilterByCutoff(cfg types.Config, contacts []types.Contact, cutoff *time.Time) []types.Contact {
	if cutoff == nil {
		return contacts
	}
	mostRecent := time.UnixMilli(cfg.MostRecentUpdate.UnixMilli())
	if cutoff.After(mostRecent) {
		return []types.Contact{}
	}
	lastIndex := int64(mostRecent.Sub(*cutoff) / time.Millisecond)
	if lastIndex >= int64(len(contacts)) {
		return contacts
	}
	return contacts[:lastIndex+1]
}

// retrieval simulates one paged contact retrieval endpoint.
type retrieval struct {
	cfg          types.Config
	options      options
	path         string
	byLastUpdate bool
}

func (r retrieval) simulate(contacts []types.Contact) Simulator {
	return func() ([]types.APICall, error) {
		if err := r.cfg.Validate(); err != nil {
			return nil, err
		}
		if err := checkEmailConsistency(contacts); err != nil {
			return nil, err
		}
		pages, err := paginateAtLeastOne(contacts, r.cfg.PageSize)
		if err != nil {
			return nil, err
		}
		return pagedCalls(
			len(pages),
			r.options.failure,
			true,
			func(k int) types.Request { return r.pageRequest(pages, k) },
			func(k int, hasMore bool) any { return r.pageResponse(pages[k], k*r.cfg.PageSize, hasMore) },
		)
	}
}

// pageRequest builds the request for page k. Pages after the first echo the
// cursors returned with the previous page.
func (r retrieval) pageRequest(pages [][]types.Contact, k int) types.Request {
	query := url.Values{}
	query.Set(wire.ParamCount, strconv.Itoa(r.cfg.PageSize))
	for _, name := range r.options.propertyNames {
		query.Add(wire.ParamProperty, name)
	}

	if k > 0 {
		previous := pages[k-1]
		var lastVID int64
		if len(previous) > 0 {
			lastVID = previous[len(previous)-1].VID
		}
		query.Set(wire.ParamVIDOffset, strconv.FormatInt(lastVID, 10))

		if r.byLastUpdate && len(previous) > 0 {
			lastPosition := (k-1)*r.cfg.PageSize + len(previous) - 1
			query.Set(wire.ParamTimeOffset, strconv.FormatInt(AddedAtTimestamp(r.cfg, lastPosition), 10))
		}
	}

	return types.Request{Method: types.MethodGet, Path: r.path, Query: query}
}

// pageResponse builds the body of a page whose first contact sits at
// position offset of the retrieval.
func (r retrieval) pageResponse(page []types.Contact, offset int, hasMore bool) map[string]any {
	contactsData := make([]any, 0, len(page))
	for i, c := range page {
		data := r.contactData(c)
		if r.byLastUpdate {
			data["addedAt"] = AddedAtTimestamp(r.cfg, offset+i)
		}
		contactsData = append(contactsData, data)
	}

	var lastVID int64
	if len(page) > 0 {
		lastVID = page[len(page)-1].VID
	}
	body := map[string]any{
		"contacts":   contactsData,
		"has-more":   hasMore,
		"vid-offset": lastVID,
	}
	if r.byLastUpdate && len(page) > 0 {
		body["time-offset"] = AddedAtTimestamp(r.cfg, offset+len(page)-1)
	}
	return body
}

func (r retrieval) contactData(c types.Contact) map[string]any {
	return map[string]any{
		"vid":               c.VID,
		"canonical-vid":     c.VID,
		"properties":        r.propertiesData(c),
		"identity-profiles": identityProfiles(c),
	}
}

// propertiesData renders the requested properties the contact has. Names the
// contact lacks are skipped, as the portal does for unknown names.
func (r retrieval) propertiesData(c types.Contact) map[string]any {
	data := map[string]any{}
	for _, name := range r.options.propertyNames {
		var value string
		if name == emailPropertyName && c.EmailAddress != "" {
			value = c.EmailAddress
		} else {
			v, ok := c.Properties[name]
			if !ok || v == nil {
				continue
			}
			value = wire.FormatRetrievedValue(v)
		}
		data[name] = map[string]any{
			"value":    value,
			"versions": []any{},
		}
	}
	return data
}

// identityProfiles renders the primary profile with a fresh lead GUID and
// the email identity, followed by a stub profile per related contact.
func identityProfiles(c types.Contact) []any {
	identities := []any{
		map[string]any{"type": "LEAD_GUID", "value": uuid.NewString()},
	}
	if c.EmailAddress != "" {
		identities = append(identities, map[string]any{"type": "EMAIL", "value": c.EmailAddress})
	}

	profiles := []any{
		map[string]any{"vid": c.VID, "identities": identities},
	}
	for _, vid := range c.RelatedContactVIDs {
		profiles = append(profiles, map[string]any{"vid": vid, "identities": []any{}})
	}
	return profiles
}

func checkEmailConsistency(contacts []types.Contact) error {
	for _, c := range contacts {
		v, ok := c.Properties[emailPropertyName]
		if !ok {
			continue
		}
		if s, isString := v.(string); !isString || s != c.EmailAddress {
			return fmt.Errorf("%w: contact %d", types.ErrConflictingEmail, c.VID)
		}
	}
	return nil
}
