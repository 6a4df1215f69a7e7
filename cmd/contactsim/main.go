// Command contactsim simulates HubSpot Contacts API traffic for client tests.
package main

import "github.com/mesh-intelligence/contactsim/internal/cli"

func main() {
	cli.Execute()
}
