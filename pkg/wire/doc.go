// Package wire converts contactsim entities to and from the JSON
// representation the Contacts API uses for request bodies and property
// values, and names the API's endpoints and query parameters.
//
// Property values travel as strings. Booleans use their JSON literal, dates
// and datetimes use epoch milliseconds, numbers use their decimal form, and
// enumerations and strings are sent unchanged. An empty raw value means the
// property is not set.
package wire
