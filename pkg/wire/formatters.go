package wire

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// FormatContactsForSaving builds the body of a batch create/update call.
// Each contact is identified by vid and/or email; its properties are listed
// in name order and serialized according to their definitions.
// Returns ErrPropertyNotFound if a contact carries a property missing from
// definitions.
func FormatContactsForSaving(contacts []types.Contact, definitions map[string]types.Property) ([]any, error) {
	data := make([]any, 0, len(contacts))
	for _, c := range contacts {
		contactData := map[string]any{}
		if c.VID != 0 {
			contactData["vid"] = c.VID
		}
		if c.EmailAddress != "" {
			contactData["email"] = c.EmailAddress
		}

		properties := make([]any, 0, len(c.Properties))
		for _, name := range slices.Sorted(maps.Keys(c.Properties)) {
			p, ok := definitions[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", types.ErrPropertyNotFound, name)
			}
			value, err := SerializeValue(p, c.Properties[name])
			if err != nil {
				return nil, err
			}
			properties = append(properties, map[string]any{
				"property": name,
				"value":    value,
			})
		}
		contactData["properties"] = properties
		data = append(data, contactData)
	}
	return data, nil
}

// FormatProperty renders a property definition. The same document is the
// request body of a create call and an element of the listing response.
func FormatProperty(p types.Property) map[string]any {
	options := make([]any, 0, len(p.Options))
	for _, label := range slices.Sorted(maps.Keys(p.Options)) {
		options = append(options, map[string]any{
			"label": label,
			"value": p.Options[label],
		})
	}
	return map[string]any{
		"name":        p.Name,
		"label":       p.Label,
		"description": p.Description,
		"groupName":   p.GroupName,
		"fieldType":   p.EffectiveFieldType(),
		"type":        p.Type,
		"options":     options,
	}
}

// FormatPropertyGroup renders the body of a property group create call.
func FormatPropertyGroup(g types.PropertyGroup) map[string]any {
	return map[string]any{
		"name":        g.Name,
		"displayName": g.DisplayName,
	}
}

// FormatStaticContactList renders the body of a static list create call.
func FormatStaticContactList(name string) map[string]any {
	return map[string]any{
		"name":    name,
		"dynamic": false,
	}
}

// FormatListMembership renders the body of a list add/remove call.
func FormatListMembership(vids []int64) map[string]any {
	items := make([]any, 0, len(vids))
	for _, vid := range vids {
		items = append(items, vid)
	}
	return map[string]any{"vids": items}
}
