package simulator

import (
	"fmt"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// MakeContact returns a contact with a derived email address and a copy of
// properties.
func MakeContact(vid int64, properties map[string]any) types.Contact {
	props := make(map[string]any, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	return types.Contact{
		VID:          vid,
		EmailAddress: fmt.Sprintf("contact%d@example.com", vid),
		Properties:   props,
	}
}

// MakeContacts returns n contacts with vids 1 through n.
func MakeContacts(n int) []types.Contact {
	contacts := make([]types.Contact, 0, n)
	for i := 1; i <= n; i++ {
		contacts = append(contacts, MakeContact(int64(i), nil))
	}
	return contacts
}
