// Package object implements attribute extraction from stored collection
// members: a computed-attribute getter map, native struct field access via
// reflection, and raw JSON document access for []byte members, the same
// three layers chai's query engine composes when resolving a column
// reference against a stored row.
package object

import (
	"reflect"
	"time"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"

	"github.com/chaisql/indexset/internal/types"
)

// ErrNoSuchAttribute is returned when none of the attribute-resolution
// layers can produce a value for the requested name.
var ErrNoSuchAttribute = errors.New("object: no such attribute")

// Getter resolves a computed attribute for an object of type T.
type Getter[T any] func(obj T) (types.Value, error)

// GetAttr resolves attribute `name` on `obj`, consulting `attrs` first and
// otherwise falling back to the object's native representation: a struct
// field (methods are not consulted) for ordinary Go values, or a JSON field
// lookup when obj is a raw JSON-encoded []byte record.
func GetAttr[T any](obj T, name string, attrs map[string]Getter[T]) (types.Value, error) {
	if get, ok := attrs[name]; ok {
		return get(obj)
	}

	if raw, ok := any(obj).([]byte); ok {
		return getAttrJSON(raw, name)
	}

	return getAttrReflect(obj, name)
}

func getAttrReflect(obj any, name string) (types.Value, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return types.Value{}, errors.Wrapf(ErrNoSuchAttribute, "%s on nil pointer", name)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return types.Value{}, errors.Wrapf(ErrNoSuchAttribute, "%s (not a struct)", name)
	}
	field := v.FieldByName(name)
	if !field.IsValid() {
		return types.Value{}, errors.Wrapf(ErrNoSuchAttribute, "%s", name)
	}
	return reflectToValue(field)
}

func reflectToValue(v reflect.Value) (types.Value, error) {
	switch v.Kind() {
	case reflect.Bool:
		return types.NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.NewInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return types.NewInt(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return types.NewFloat(v.Float()), nil
	case reflect.String:
		return types.NewString(v.String()), nil
	case reflect.Slice, reflect.Array:
		items := make([]types.Value, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := reflectToValue(v.Index(i))
			if err != nil {
				return types.Value{}, err
			}
			items[i] = item
		}
		return types.NewArray(items), nil
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return types.NewTimestamp(t), nil
		}
	case reflect.Invalid:
		return types.Null(), nil
	}
	return types.Value{}, errors.Newf("object: unsupported field kind %s", v.Kind())
}

func getAttrJSON(raw []byte, name string) (types.Value, error) {
	data, dataType, _, err := jsonparser.Get(raw, name)
	if err != nil {
		if err == jsonparser.KeyPathNotFoundError {
			return types.Value{}, errors.Wrapf(ErrNoSuchAttribute, "%s", name)
		}
		return types.Value{}, errors.Wrapf(err, "parsing JSON attribute %s", name)
	}
	return parseJSONValue(dataType, data)
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (types.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return types.Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewBool(b), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err == nil {
			return types.NewInt(i), nil
		}
		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewFloat(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewString(s), nil
	case jsonparser.Array:
		var items []types.Value
		var parseErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dt jsonparser.ValueType, offset int, err error) {
			if parseErr != nil {
				return
			}
			v, e := parseJSONValue(dt, value)
			if e != nil {
				parseErr = e
				return
			}
			items = append(items, v)
		})
		if err != nil {
			return types.Value{}, err
		}
		if parseErr != nil {
			return types.Value{}, parseErr
		}
		return types.NewArray(items), nil
	default:
		return types.Value{}, errors.Newf("object: unsupported JSON value type %v", dataType)
	}
}
