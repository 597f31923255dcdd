package toolset

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// EncodeQuery renders a payload as query parameters. Booleans become
// true/false, integral numbers carry no decimal part and arrays repeat the
// key. Null values are skipped.
func EncodeQuery(payload map[string]any) url.Values {
	if len(payload) == 0 {
		return nil
	}
	values := make(url.Values, len(payload))
	for key, value := range payload {
		switch v := value.(type) {
		case nil:
		case []any:
			for _, item := range v {
				if item == nil {
					continue
				}
				values.Add(key, FormatValue(item))
			}
		default:
			values.Set(key, FormatValue(v))
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// FormatValue renders a scalar argument for a path segment or query value.
func FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
