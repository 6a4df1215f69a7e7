package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contactsim/pkg/portal"
	"github.com/mesh-intelligence/contactsim/pkg/simulator"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

var (
	emailProperty = types.Property{
		Name: "email", Label: "Email", GroupName: "contactinformation",
		FieldType: "text", Type: types.PropertyTypeString,
	}
	stringProperty = types.Property{
		Name: "firstname", Label: "First name", GroupName: "contactinformation",
		FieldType: "text", Type: types.PropertyTypeString,
	}
	booleanProperty = types.Property{
		Name: "subscribed", Label: "Subscribed", GroupName: "contactinformation",
		FieldType: "booleancheckbox", Type: types.PropertyTypeBoolean,
	}
	dateProperty = types.Property{
		Name: "birthday", Label: "Birthday", GroupName: "contactinformation",
		FieldType: "date", Type: types.PropertyTypeDate,
	}
	datetimeProperty = types.Property{
		Name: "lastvisit", Label: "Last visit", GroupName: "contactinformation",
		FieldType: "date", Type: types.PropertyTypeDatetime,
	}
	enumerationProperty = types.Property{
		Name: "tier", Label: "Tier", GroupName: "contactinformation",
		FieldType: "select", Type: types.PropertyTypeEnumeration,
		Options: map[string]string{"Gold": "gold", "Silver": "silver"},
	}
	numberProperty = types.Property{
		Name: "score", Label: "Score", GroupName: "contactinformation",
		FieldType: "number", Type: types.PropertyTypeNumber,
	}
)

var testAnchor = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig(pageSize, batchSize int) types.Config {
	cfg := types.NewConfig(testAnchor)
	cfg.PageSize = pageSize
	cfg.BatchSize = batchSize
	return cfg
}

// connect builds a mock connection replaying sims and checks on cleanup
// that every simulated call was made.
func connect(t *testing.T, sims ...simulator.Simulator) *portal.MockConnection {
	t.Helper()
	calls, err := simulator.Simulate(sims...)
	require.NoError(t, err)
	conn := portal.NewMockConnection(calls)
	t.Cleanup(func() {
		assert.NoError(t, conn.Close())
	})
	return conn
}

func newTestClient(t *testing.T, conn portal.Connection, cfg types.Config) *Client {
	t.Helper()
	client, err := NewClient(conn, WithPageSize(cfg.PageSize), WithBatchSize(cfg.BatchSize))
	require.NoError(t, err)
	return client
}
