package wire

import "fmt"

// Contacts API endpoint paths.
const (
	apiRoot = "/contacts/v1"

	PathProperties     = apiRoot + "/properties"
	PathPropertyGroups = apiRoot + "/groups"
	PathAllContacts    = apiRoot + "/lists/all/contacts/all"
	PathRecentContacts = apiRoot + "/lists/recently_updated/contacts/recent"
	PathContactsBatch  = apiRoot + "/contact/batch/"
	PathContactLists   = apiRoot + "/lists"
)

// Query parameters of the paged retrieval endpoints.
const (
	ParamCount      = "count"
	ParamProperty   = "property"
	ParamVIDOffset  = "vidOffset"
	ParamTimeOffset = "timeOffset"
	ParamOffset     = "offset"
)

// List membership actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// PropertyPath returns the path of a single property definition.
func PropertyPath(name string) string {
	return PathProperties + "/" + name
}

// PropertyGroupPath returns the path of a single property group.
func PropertyGroupPath(name string) string {
	return PathPropertyGroups + "/" + name
}

// ContactListPath returns the path of a single contact list.
func ContactListPath(id int64) string {
	return fmt.Sprintf("%s/%d", PathContactLists, id)
}

// ListContactsPath returns the path listing all contacts of a list.
func ListContactsPath(id int64) string {
	return ContactListPath(id) + "/contacts/all"
}

// ListRecentContactsPath returns the path listing a list's contacts by
// the date they were added.
func ListRecentContactsPath(id int64) string {
	return ContactListPath(id) + "/contacts/recent"
}

// ListMembershipPath returns the path adding (ActionAdd) or removing
// (ActionRemove) contacts of a list.
func ListMembershipPath(id int64, action string) string {
	return ContactListPath(id) + "/" + action
}
