package contacts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contactsim/pkg/simulator"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

func TestSaveContactsBatches(t *testing.T) {
	cfg := testConfig(10, 2)
	contacts := []types.Contact{
		simulator.MakeContact(1, map[string]any{"firstname": "Ada", "subscribed": true}),
		simulator.MakeContact(2, map[string]any{"lastvisit": time.UnixMilli(1396607280140)}),
		{EmailAddress: "new@example.com", Properties: map[string]any{"score": 42}},
	}
	available := []types.Property{stringProperty, booleanProperty, datetimeProperty, numberProperty}
	conn := connect(t, simulator.SaveContacts(cfg, contacts, available))

	require.NoError(t, newTestClient(t, conn, cfg).SaveContacts(context.Background(), contacts))

	dispatched := conn.Dispatched()
	require.Len(t, dispatched, 3)
	for i, size := range []int{2, 1} {
		batch := dispatched[i+1]
		assert.Len(t, batch.Body, size)
		assert.Nil(t, batch.ResponseBody())
	}
}

func TestSaveContactsEmpty(t *testing.T) {
	cfg := testConfig(10, 2)
	conn := connect(t, simulator.SaveContacts(cfg, nil, []types.Property{stringProperty}))

	require.NoError(t, newTestClient(t, conn, cfg).SaveContacts(context.Background(), nil))
	assert.Len(t, conn.Dispatched(), 1)
}

func TestSaveContactsFailedBatch(t *testing.T) {
	cfg := testConfig(10, 2)
	contacts := simulator.MakeContacts(5)
	conn := connect(t, simulator.SaveContacts(cfg, contacts, []types.Property{stringProperty},
		simulator.WithFailureAt(1, types.NewClientError("invalid email", 400))))

	err := newTestClient(t, conn, cfg).SaveContacts(context.Background(), contacts)
	assert.ErrorIs(t, err, types.ErrClientError)
	assert.Len(t, conn.Dispatched(), 3)
}

func TestSaveContactsUndefinedProperty(t *testing.T) {
	cfg := testConfig(10, 2)
	conn := connect(t, simulator.GetAllProperties([]types.Property{stringProperty}))
	contacts := []types.Contact{simulator.MakeContact(1, map[string]any{"undefined": "x"})}

	err := newTestClient(t, conn, cfg).SaveContacts(context.Background(), contacts)
	assert.ErrorIs(t, err, types.ErrPropertyNotFound)
}
