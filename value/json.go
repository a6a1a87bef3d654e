package value

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FromJSON builds a Value from an already-decoded JSON tree (the output of
// json.Unmarshal into interface{}). This is the "try_from_json" half of the
// JSON bridge described in the value model.
func FromJSON(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return None, nil
	case bool:
		return NewBool(v), nil
	case float64:
		return NewF64(v), nil
	case string:
		return NewText(v), nil
	case []interface{}:
		items := make([]Value, len(v))
		for i, item := range v {
			converted, err := FromJSON(item)
			if err != nil {
				return nil, err
			}
			items[i] = converted
		}
		return NewArray(items), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make(map[string]Value, len(v))
		for _, k := range keys {
			converted, err := FromJSON(v[k])
			if err != nil {
				return nil, err
			}
			fields[k] = converted
		}
		return NewObject(keys, fields), nil
	default:
		return nil, fmt.Errorf("unsupported decoded JSON type %T", raw)
	}
}

// FromJSONBytes decodes raw JSON bytes directly into a Value.
func FromJSONBytes(data []byte) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return FromJSON(raw)
}

// ToJSONBytes serializes v through its TryJSON bridge into JSON text.
func ToJSONBytes(v Value) ([]byte, error) {
	bridged, err := v.TryJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(bridged)
}
