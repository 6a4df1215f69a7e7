package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

var (
	booleanProperty     = types.Property{Name: "subscribed", Type: types.PropertyTypeBoolean}
	dateProperty        = types.Property{Name: "birthday", Type: types.PropertyTypeDate}
	datetimeProperty    = types.Property{Name: "lastvisit", Type: types.PropertyTypeDatetime}
	enumerationProperty = types.Property{Name: "tier", Type: types.PropertyTypeEnumeration, Options: map[string]string{"Gold": "gold"}}
	numberProperty      = types.Property{Name: "score", Type: types.PropertyTypeNumber}
	stringProperty      = types.Property{Name: "firstname", Type: types.PropertyTypeString}
)

func TestFormatRetrievedValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"true", true, "true"},
		{"false", false, "false"},
		{"datetime", time.Date(2014, 4, 4, 10, 28, 0, 140_000_000, time.UTC), "1396607280140"},
		{"string", "value", "value"},
		{"int", 42, "42"},
		{"decimal", decimal.RequireFromString("1.01"), "1.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRetrievedValue(tt.value))
		})
	}
}

func TestCastValue(t *testing.T) {
	tests := []struct {
		prop types.Property
		raw  string
		want any
	}{
		{booleanProperty, "true", true},
		{booleanProperty, "false", false},
		{dateProperty, "1396569600000", time.Date(2014, 4, 4, 0, 0, 0, 0, time.UTC)},
		{datetimeProperty, "1396607280140", time.Date(2014, 4, 4, 10, 28, 0, 140_000_000, time.UTC)},
		{enumerationProperty, "value1", "value1"},
		{stringProperty, "value", "value"},
	}
	for _, tt := range tests {
		t.Run(tt.prop.Type, func(t *testing.T) {
			got, ok, err := CastValue(tt.prop, tt.raw)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("number", func(t *testing.T) {
		got, ok, err := CastValue(numberProperty, "1.01")
		require.NoError(t, err)
		require.True(t, ok)
		d, isDecimal := got.(decimal.Decimal)
		require.True(t, isDecimal, "expected decimal.Decimal, got %T", got)
		assert.True(t, d.Equal(decimal.RequireFromString("1.01")))
	})
}

func TestCastValueEmptyIsAbsent(t *testing.T) {
	for _, p := range []types.Property{booleanProperty, dateProperty, datetimeProperty, enumerationProperty, numberProperty, stringProperty} {
		t.Run(p.Type, func(t *testing.T) {
			got, ok, err := CastValue(p, "")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestCastValueRejectsMalformedRaw(t *testing.T) {
	tests := []struct {
		prop types.Property
		raw  string
	}{
		{booleanProperty, "yes"},
		{dateProperty, "2014-04-04"},
		{datetimeProperty, "now"},
		{numberProperty, "one"},
	}
	for _, tt := range tests {
		t.Run(tt.prop.Type, func(t *testing.T) {
			_, _, err := CastValue(tt.prop, tt.raw)
			assert.True(t, errors.Is(err, types.ErrInvalidValue), "got %v", err)
		})
	}
}

func TestBooleanRoundTrip(t *testing.T) {
	raw, err := SerializeValue(booleanProperty, true)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	got, ok, err := CastValue(booleanProperty, raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, true, got)
}

func TestSerializeValue(t *testing.T) {
	moment := time.Date(2014, 1, 1, 7, 57, 0, 0, time.UTC)

	tests := []struct {
		name  string
		prop  types.Property
		value any
		want  string
	}{
		{"bool", booleanProperty, false, "false"},
		{"date drops the time of day", dateProperty, moment, "1388534400000"},
		{"datetime", datetimeProperty, moment, "1388563020000"},
		{"int number", numberProperty, 42, "42"},
		{"decimal number", numberProperty, decimal.RequireFromString("1.50"), "1.5"},
		{"enumeration", enumerationProperty, "gold", "gold"},
		{"string", stringProperty, "Ada", "Ada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializeValue(tt.prop, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("wrong Go type", func(t *testing.T) {
		_, err := SerializeValue(booleanProperty, "true")
		assert.ErrorIs(t, err, types.ErrInvalidValue)
	})
	t.Run("unknown property type", func(t *testing.T) {
		_, err := SerializeValue(types.Property{Name: "x", Type: "integer"}, 1)
		assert.ErrorIs(t, err, types.ErrInvalidPropertyType)
	})
}
