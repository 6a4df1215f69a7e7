// Package types defines the entities, simulated call model, configuration,
// and standard errors shared by the contactsim simulators, the mock portal
// connection, and the contacts client.
package types
