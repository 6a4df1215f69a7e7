// Package simulator builds the sequences of API calls a HubSpot portal would
// answer for the Contacts API, so client code can be exercised against a
// mock connection instead of a live endpoint.
//
// A Simulator is a pure function producing an ordered list of calls, each an
// expected request paired with its outcome. Paged retrievals reproduce the
// portal's cursor protocol: the first page request carries no offset, and
// each subsequent request echoes the cursor the previous response returned.
// Recency retrievals add a time cursor built from synthetic timestamps that
// decrease by one millisecond per position, starting at
// Config.MostRecentUpdate.
//
// Failures are injected per call with WithFailureAt: earlier calls succeed
// and the failing call surfaces its error when the client reaches it.
package simulator
