package types

import "maps"

// Contact is a HubSpot contact as supplied by a test fixture.
// Simulators never modify a Contact; they only read it.
type Contact struct {
	VID                int64          // Contact identifier (vid).
	EmailAddress       string         // Primary email address; empty when unknown.
	Properties         map[string]any // Property values keyed by property name.
	RelatedContactVIDs []int64        // Identifiers of merged or related contacts.
}

// Copy returns a deep copy of the contact so callers can derive expected
// values without aliasing the fixture's maps and slices.
func (c Contact) Copy() Contact {
	cp := Contact{
		VID:          c.VID,
		EmailAddress: c.EmailAddress,
	}
	if c.Properties != nil {
		cp.Properties = maps.Clone(c.Properties)
	}
	if c.RelatedContactVIDs != nil {
		cp.RelatedContactVIDs = append([]int64(nil), c.RelatedContactVIDs...)
	}
	return cp
}

// ContactVIDs returns the identifiers of the given contacts, in order.
func ContactVIDs(contacts []Contact) []int64 {
	vids := make([]int64, 0, len(contacts))
	for _, c := range contacts {
		vids = append(vids, c.VID)
	}
	return vids
}

// ContactList is a HubSpot contact list.
type ContactList struct {
	ID        int64  // List identifier.
	Name      string // Unique list name.
	IsDynamic bool   // Dynamic (smart) lists cannot be updated manually.
}
