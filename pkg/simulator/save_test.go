package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contactsim/pkg/types"
	"github.com/mesh-intelligence/contactsim/pkg/wire"
)

func batchConfig(batchSize int) types.Config {
	cfg := types.NewConfig(testAnchor)
	cfg.BatchSize = batchSize
	return cfg
}

func TestSaveContactsBatches(t *testing.T) {
	calls, err := SaveContacts(batchConfig(2), MakeContacts(3), testProperties)()
	require.NoError(t, err)
	require.Len(t, calls, 3)

	assert.Equal(t, wire.PathProperties, calls[0].Path)
	wantSizes := []int{2, 1}
	for k, call := range calls[1:] {
		assert.Equal(t, types.MethodPost, call.Method)
		assert.Equal(t, wire.PathContactsBatch, call.Path)
		body, ok := call.Body.([]any)
		require.True(t, ok)
		assert.Len(t, body, wantSizes[k])
		assert.True(t, call.Succeeded())
		assert.Nil(t, call.ResponseBody())
	}
}

func TestSaveContactsEmpty(t *testing.T) {
	calls, err := SaveContacts(batchConfig(2), nil, testProperties)()
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, wire.PathProperties, calls[0].Path)
}

func TestSaveContactsUnknownProperty(t *testing.T) {
	contacts := []types.Contact{MakeContact(1, map[string]any{"undefined": "x"})}
	_, err := SaveContacts(batchConfig(2), contacts, testProperties)()
	assert.ErrorIs(t, err, types.ErrPropertyNotFound)
}

func TestSaveContactsFailure(t *testing.T) {
	clientErr := types.NewClientError("invalid email", 400)

	calls, err := SaveContacts(batchConfig(2), MakeContacts(5), testProperties, WithFailureAt(1, clientErr))()
	require.NoError(t, err)
	require.Len(t, calls, 3)
	assert.True(t, calls[1].Succeeded())
	assert.Same(t, clientErr, calls[2].Err())

	calls, err = SaveContacts(batchConfig(2), MakeContacts(5), testProperties, WithFailure(clientErr))()
	require.NoError(t, err)
	require.Len(t, calls, 4)
	assert.Same(t, clientErr, calls[3].Err())

	_, err = SaveContacts(batchConfig(2), MakeContacts(5), testProperties, WithFailureAt(3, clientErr))()
	assert.ErrorIs(t, err, types.ErrFailureIndexInvalid)
}
