// Package contacts is a client for the HubSpot Contacts API (v1) that talks
// to a portal.Connection.
//
// Collections are read through an Iterator, which fetches a page only when
// the previous one has been consumed and stops for good on the first error.
// Contact property values are cast according to the portal's property
// definitions, which every contact retrieval and save fetches first.
// Responses are checked against the shape the client relies on; a response
// that does not match yields an error matching types.ErrInvalidResponse.
package contacts
