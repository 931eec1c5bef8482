package graphql

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	apierrors "github.com/ispcore/ipam/internal/api/shared/errors"
)

// Uint64 arguments arrive as string or int literals, or as json.Number variables
func toUint64(name string, v interface{}) (uint64, error) {
	switch v := v.(type) {
	case string:
		u, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: %q is not an unsigned integer", name, v))
		}
		return u, nil
	case json.Number:
		return toUint64(name, v.String())
	case int64:
		if v < 0 {
			return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: %d is negative", name, v))
		}
		return uint64(v), nil
	case int:
		return toUint64(name, int64(v))
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxUint64 {
			return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: %v is not an unsigned integer", name, v))
		}
		return uint64(v), nil
	default:
		return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: unsupported value %v", name, v))
	}
}

func toInt(name string, v interface{}) (int, error) {
	switch v := v.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: %s is not an integer", name, v))
		}
		return int(i), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: %v is not an integer", name, v))
		}
		return int(v), nil
	default:
		return 0, apierrors.NewBadRequestError("Invalid argument", fmt.Sprintf("%s: unsupported value %v", name, v))
	}
}

// args reads typed values out of a field's argument map
type args map[string]interface{}

func (a args) requiredUint64(name string) (uint64, error) {
	return toUint64(name, a[name])
}

// optionalUint64 is nil when the argument is absent or null
func (a args) optionalUint64(name string) (*uint64, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, nil
	}
	u, err := toUint64(name, v)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a args) integer(name string) (int, error) {
	return toInt(name, a[name])
}

func (a args) text(name string) string {
	s, _ := a[name].(string)
	return s
}

func (a args) optionalText(name string) *string {
	s, ok := a[name].(string)
	if !ok {
		return nil
	}
	return &s
}

// writeScalar renders a leaf value. Uint64 and ID are quoted to survive JavaScript number precision.
func writeScalar(typeName string, v interface{}) ([]byte, error) {
	switch typeName {
	case "Uint64", "ID":
		switch v := v.(type) {
		case json.Number:
			return []byte(strconv.Quote(v.String())), nil
		case string:
			return []byte(strconv.Quote(v)), nil
		default:
			return nil, fmt.Errorf("cannot serialize %T as %s", v, typeName)
		}
	default:
		return json.Marshal(v)
	}
}
