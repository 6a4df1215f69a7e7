package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

const identityTypeEmail = "EMAIL"

// RetrievalOption configures a contact retrieval.
type RetrievalOption func(*retrievalOptions)

type retrievalOptions struct {
	propertyNames []string
	cutoff        *time.Time
}

// WithPropertyNames requests the named properties. Names the portal does
// not define are dropped from the results.
func WithPropertyNames(names ...string) RetrievalOption {
	return func(o *retrievalOptions) {
		o.propertyNames = append([]string(nil), names...)
	}
}

// WithCutoff stops a recency retrieval at the first contact updated, or
// added to the list, before cutoff. Plain retrievals ignore it.
func WithCutoff(cutoff time.Time) RetrievalOption {
	return func(o *retrievalOptions) {
		o.cutoff = &cutoff
	}
}

// GetAllContacts iterates over every contact of the portal.
func (c *Client) GetAllContacts(ctx context.Context, opts ...RetrievalOption) *Iterator[types.Contact] {
	return c.retrieveContacts(ctx, wire.PathAllContacts, false, opts)
}

// GetAllContactsByLastUpdate iterates over contacts from the most recently
// updated to the least. A contact updated during the iteration may be
// reported twice by the portal; it is yielded once.
func (c *Client) GetAllContactsByLastUpdate(ctx context.Context, opts ...RetrievalOption) *Iterator[types.Contact] {
	return c.retrieveContacts(ctx, wire.PathRecentContacts, true, opts)
}

// GetAllContactsFromList iterates over the contacts of a list.
func (c *Client) GetAllContactsFromList(ctx context.Context, listID int64, opts ...RetrievalOption) *Iterator[types.Contact] {
	return c.retrieveContacts(ctx, wire.ListContactsPath(listID), false, opts)
}

// GetAllContactsFromListByAddedDate iterates over the contacts of a list
// from the most recently added to the least.
func (c *Client) GetAllContactsFromListByAddedDate(ctx context.Context, listID int64, opts ...RetrievalOption) *Iterator[types.Contact] {
	return c.retrieveContacts(ctx, wire.ListRecentContactsPath(listID), true, opts)
}

// contactCursor tracks one paged retrieval: the property definitions used
// for casting and the offsets echoed to the portal.
type contactCursor struct {
	client       *Client
	path         string
	byLastUpdate bool
	options      retrievalOptions

	definitions map[string]types.Property
	page        int
	vidOffset   int64
	timeOffset  *int64
	seen        map[int64]bool
}

func (c *Client) retrieveContacts(ctx context.Context, path string, byLastUpdate bool, opts []RetrievalOption) *Iterator[types.Contact] {
	var o retrievalOptions
	for _, opt := range opts {
		opt(&o)
	}
	cursor := &contactCursor{
		client:       c,
		path:         path,
		byLastUpdate: byLastUpdate,
		options:      o,
		seen:         map[int64]bool{},
	}
	return newIterator(ctx, cursor.next)
}

func (r *contactCursor) next(ctx context.Context) ([]types.Contact, bool, error) {
	if r.definitions == nil {
		properties, err := r.client.GetAllProperties(ctx)
		if err != nil {
			return nil, false, err
		}
		r.definitions = types.PropertiesByName(properties)
	}

	var page contactsPage
	if err := r.client.get(ctx, r.path, r.query(), &page); err != nil {
		return nil, false, err
	}
	r.client.logger.DebugContext(ctx, "fetched contacts page",
		slog.String("path", r.path),
		slog.Int("page", r.page),
		slog.Int("contacts", len(page.Contacts)),
	)
	r.page++
	r.vidOffset = *page.VIDOffset
	r.timeOffset = page.TimeOffset

	contacts := make([]types.Contact, 0, len(page.Contacts))
	for i, rec := range page.Contacts {
		if r.byLastUpdate {
			if rec.AddedAt == nil {
				return nil, false, &types.ResponseSchemaError{
					Endpoint: r.path,
					Field:    fmt.Sprintf("contacts.%d.addedAt", i),
					Reason:   "is required",
				}
			}
			if r.options.cutoff != nil && time.UnixMilli(*rec.AddedAt).Before(*r.options.cutoff) {
				return contacts, false, nil
			}
			if r.seen[*rec.VID] {
				continue
			}
			r.seen[*rec.VID] = true
		}

		contact, err := toContact(r.path, i, rec, r.definitions)
		if err != nil {
			return nil, false, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, *page.HasMore, nil
}

func (r *contactCursor) query() url.Values {
	query := url.Values{}
	query.Set(wire.ParamCount, strconv.Itoa(r.client.pageSize))
	for _, name := range r.options.propertyNames {
		query.Add(wire.ParamProperty, name)
	}
	if r.page > 0 {
		query.Set(wire.ParamVIDOffset, strconv.FormatInt(r.vidOffset, 10))
		if r.timeOffset != nil {
			query.Set(wire.ParamTimeOffset, strconv.FormatInt(*r.timeOffset, 10))
		}
	}
	return query
}

// toContact converts the i-th contact of a page. The EMAIL identity of the
// contact's own profile gives its address; other profiles are related
// contacts. Properties without a definition or without a value are dropped.
func toContact(endpoint string, i int, rec contactRecord, definitions map[string]types.Property) (types.Contact, error) {
	contact := types.Contact{
		VID:        *rec.VID,
		Properties: make(map[string]any, len(rec.Properties)),
	}

	for _, profile := range rec.IdentityProfiles {
		if *profile.VID != contact.VID {
			contact.RelatedContactVIDs = append(contact.RelatedContactVIDs, *profile.VID)
			continue
		}
		for _, id := range profile.Identities {
			if id.Type == identityTypeEmail {
				contact.EmailAddress = id.Value
			}
		}
	}

	for name, pv := range rec.Properties {
		definition, ok := definitions[name]
		if !ok || pv.Value == nil {
			continue
		}
		value, ok, err := wire.CastValue(definition, *pv.Value)
		if err != nil {
			return types.Contact{}, &types.ResponseSchemaError{
				Endpoint: endpoint,
				Field:    fmt.Sprintf("contacts.%d.properties.%s.value", i, name),
				Reason:   err.Error(),
			}
		}
		if ok {
			contact.Properties[name] = value
		}
	}
	return contact, nil
}
