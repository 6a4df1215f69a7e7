package contacts

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// record is implemented by response documents with required fields.
type record interface {
	// missing returns the dotted path of the first absent required field,
	// or "" when the document is complete.
	missing() string
}

// decode unmarshals a response body into out and checks its required
// fields. Every failure is a *types.ResponseSchemaError.
func decode(endpoint string, body json.RawMessage, out any) error {
	if len(body) == 0 {
		return &types.ResponseSchemaError{Endpoint: endpoint, Field: ".", Reason: "is empty"}
	}
	if err := json.Unmarshal(body, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &types.ResponseSchemaError{
				Endpoint: endpoint,
				Field:    typeErr.Field,
				Reason:   fmt.Sprintf("is a JSON %s, not %s", typeErr.Value, typeErr.Type),
			}
		}
		return &types.ResponseSchemaError{Endpoint: endpoint, Field: ".", Reason: "is not valid JSON"}
	}
	if r, ok := out.(record); ok {
		if field := r.missing(); field != "" {
			return &types.ResponseSchemaError{Endpoint: endpoint, Field: field, Reason: "is required"}
		}
	}
	return nil
}

// firstMissing returns the first name whose presence flag is false.
func firstMissing(fields ...field) string {
	for _, f := range fields {
		if !f.present {
			return f.name
		}
	}
	return ""
}

type field struct {
	name    string
	present bool
}

// itemMissing prefixes a missing field of the i-th element of list, which
// is "" when the body itself is the list.
func itemMissing[R record](list string, items []R) string {
	for i, item := range items {
		f := item.missing()
		if f == "" {
			continue
		}
		if list == "" {
			return fmt.Sprintf("%d.%s", i, f)
		}
		return fmt.Sprintf("%s.%d.%s", list, i, f)
	}
	return ""
}

type contactsPage struct {
	Contacts   []contactRecord `json:"contacts"`
	HasMore    *bool           `json:"has-more"`
	VIDOffset  *int64          `json:"vid-offset"`
	TimeOffset *int64          `json:"time-offset"`
}

func (p *contactsPage) missing() string {
	if f := firstMissing(
		field{"contacts", p.Contacts != nil},
		field{"has-more", p.HasMore != nil},
		field{"vid-offset", p.VIDOffset != nil},
	); f != "" {
		return f
	}
	return itemMissing("contacts", p.Contacts)
}

type contactRecord struct {
	VID              *int64                   `json:"vid"`
	Properties       map[string]propertyValue `json:"properties"`
	IdentityProfiles []identityProfile        `json:"identity-profiles"`
	AddedAt          *int64                   `json:"addedAt"`
}

func (r contactRecord) missing() string {
	if f := firstMissing(
		field{"vid", r.VID != nil},
		field{"properties", r.Properties != nil},
		field{"identity-profiles", r.IdentityProfiles != nil},
	); f != "" {
		return f
	}
	return itemMissing("identity-profiles", r.IdentityProfiles)
}

type propertyValue struct {
	Value *string `json:"value"`
}

type identityProfile struct {
	VID        *int64     `json:"vid"`
	Identities []identity `json:"identities"`
}

func (p identityProfile) missing() string {
	return firstMissing(
		field{"vid", p.VID != nil},
		field{"identities", p.Identities != nil},
	)
}

type identity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type contactListsPage struct {
	Lists   []contactListRecord `json:"lists"`
	HasMore *bool               `json:"has-more"`
	Offset  *int                `json:"offset"`
}

func (p *contactListsPage) missing() string {
	if f := firstMissing(
		field{"lists", p.Lists != nil},
		field{"has-more", p.HasMore != nil},
		field{"offset", p.Offset != nil},
	); f != "" {
		return f
	}
	return itemMissing("lists", p.Lists)
}

type contactListRecord struct {
	ListID  *int64  `json:"listId"`
	Name    *string `json:"name"`
	Dynamic *bool   `json:"dynamic"`
}

func (r contactListRecord) missing() string {
	return firstMissing(
		field{"listId", r.ListID != nil},
		field{"name", r.Name != nil},
		field{"dynamic", r.Dynamic != nil},
	)
}

func (r contactListRecord) contactList() types.ContactList {
	return types.ContactList{ID: *r.ListID, Name: *r.Name, IsDynamic: *r.Dynamic}
}

type membershipResult struct {
	Updated   []int64 `json:"updated"`
	Discarded []int64 `json:"discarded"`
}

func (r *membershipResult) missing() string {
	return firstMissing(field{"updated", r.Updated != nil})
}

type propertyRecord struct {
	Name        *string        `json:"name"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	GroupName   string         `json:"groupName"`
	FieldType   string         `json:"fieldType"`
	Type        *string        `json:"type"`
	Options     []optionRecord `json:"options"`
}

func (r propertyRecord) missing() string {
	return firstMissing(
		field{"name", r.Name != nil},
		field{"type", r.Type != nil},
	)
}

func (r propertyRecord) property() types.Property {
	p := types.Property{
		Name:        *r.Name,
		Label:       r.Label,
		Description: r.Description,
		GroupName:   r.GroupName,
		FieldType:   r.FieldType,
		Type:        *r.Type,
	}
	if len(r.Options) > 0 {
		p.Options = make(map[string]string, len(r.Options))
		for _, o := range r.Options {
			p.Options[o.Label] = o.Value
		}
	}
	return p
}

type optionRecord struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// propertyRecords is the body of the property listing.
type propertyRecords []propertyRecord

func (r *propertyRecords) missing() string {
	return itemMissing("", *r)
}

func (r propertyRecords) properties() []types.Property {
	properties := make([]types.Property, 0, len(r))
	for _, p := range r {
		properties = append(properties, p.property())
	}
	return properties
}

type propertyGroupRecord struct {
	Name        *string          `json:"name"`
	DisplayName string           `json:"displayName"`
	Properties  []propertyRecord `json:"properties"`
}

func (r propertyGroupRecord) missing() string {
	if f := firstMissing(field{"name", r.Name != nil}); f != "" {
		return f
	}
	return itemMissing("properties", r.Properties)
}

func (r propertyGroupRecord) propertyGroup() types.PropertyGroup {
	g := types.PropertyGroup{Name: *r.Name, DisplayName: r.DisplayName}
	if len(r.Properties) > 0 {
		g.Properties = propertyRecords(r.Properties).properties()
	}
	return g
}

// propertyGroupRecords is the body of the property group listing.
type propertyGroupRecords []propertyGroupRecord

func (r *propertyGroupRecords) missing() string {
	return itemMissing("", *r)
}
