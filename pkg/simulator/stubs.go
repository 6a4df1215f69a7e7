package simulator

// Fixed values the simulated portal reports for fields the harness does
// not model.
const (
	stubPortalID          = 1
	stubGroupDisplayOrder = 1
)
