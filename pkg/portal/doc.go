// Package portal defines the connection the contacts client talks to and a
// mock implementation that replays simulated API calls in order.
package portal
