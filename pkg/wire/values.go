package wire

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// FormatRetrievedValue renders a fixture value the way the API returns it
// in a retrieval response. The rule depends only on the Go value: bool
// becomes its JSON literal, time.Time becomes epoch milliseconds, and
// anything else becomes its string form.
func FormatRetrievedValue(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return strconv.FormatInt(x.UnixMilli(), 10)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// SerializeValue renders v for property p in a write request.
// Returns ErrInvalidValue if v cannot represent a value of p's type.
func SerializeValue(p types.Property, v any) (string, error) {
	switch p.Type {
	case types.PropertyTypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return "", invalidValue(p, v)
		}
		return strconv.FormatBool(b), nil
	case types.PropertyTypeDate:
		t, ok := v.(time.Time)
		if !ok {
			return "", invalidValue(p, v)
		}
		return strconv.FormatInt(midnightUTC(t).UnixMilli(), 10), nil
	case types.PropertyTypeDatetime:
		t, ok := v.(time.Time)
		if !ok {
			return "", invalidValue(p, v)
		}
		return strconv.FormatInt(t.UnixMilli(), 10), nil
	case types.PropertyTypeNumber:
		d, err := toDecimal(v)
		if err != nil {
			return "", invalidValue(p, v)
		}
		return d.String(), nil
	case types.PropertyTypeEnumeration, types.PropertyTypeString:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrInvalidPropertyType, p.Type)
	}
}

// CastValue converts a raw retrieved value into the Go value for property
// p. The boolean result is false when raw is empty, meaning the property is
// absent. Dates are returned as midnight UTC, datetimes as UTC instants, and
// numbers as decimal.Decimal.
func CastValue(p types.Property, raw string) (any, bool, error) {
	if raw == "" {
		return nil, false, nil
	}

	switch p.Type {
	case types.PropertyTypeBoolean:
		switch raw {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
		return nil, false, invalidRaw(p, raw)
	case types.PropertyTypeDate:
		t, err := parseMillis(raw)
		if err != nil {
			return nil, false, invalidRaw(p, raw)
		}
		return midnightUTC(t), true, nil
	case types.PropertyTypeDatetime:
		t, err := parseMillis(raw)
		if err != nil {
			return nil, false, invalidRaw(p, raw)
		}
		return t, true, nil
	case types.PropertyTypeNumber:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, false, invalidRaw(p, raw)
		}
		return d, true, nil
	case types.PropertyTypeEnumeration, types.PropertyTypeString:
		return raw, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", types.ErrInvalidPropertyType, p.Type)
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		return decimal.NewFromString(x)
	}
	return decimal.Decimal{}, fmt.Errorf("unsupported number type %T", v)
}

func parseMillis(raw string) (time.Time, error) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func invalidValue(p types.Property, v any) error {
	return fmt.Errorf("%w: %T for %s property %q", types.ErrInvalidValue, v, p.Type, p.Name)
}

func invalidRaw(p types.Property, raw string) error {
	return fmt.Errorf("%w: %q for %s property %q", types.ErrInvalidValue, raw, p.Type, p.Name)
}
