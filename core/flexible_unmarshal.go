package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FlexibleUnmarshal unmarshals a JSON object into a struct, tolerating the loose
// typing catalog backends are known for: numbers or booleans arriving for string
// fields are stringified, and numeric strings arriving for integer fields are parsed.
func FlexibleUnmarshal(data []byte, target any) error {
	var rawData map[string]any
	if err := json.Unmarshal(data, &rawData); err != nil {
		return err
	}

	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer")
	}
	targetElem := targetValue.Elem()
	if targetElem.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct")
	}

	convertedJSON, err := json.Marshal(convertMapToStruct(rawData, targetElem.Type()))
	if err != nil {
		return err
	}
	return json.Unmarshal(convertedJSON, target)
}

// convertMapToStruct converts map values to match struct field types
func convertMapToStruct(data map[string]any, structType reflect.Type) map[string]any {
	result := make(map[string]any, len(data))
	for key, value := range data {
		field, found := findFieldByJSONTag(structType, key)
		if !found {
			result[key] = value
			continue
		}
		result[key] = convertValue(value, field.Type)
	}
	return result
}

func convertValue(value any, targetType reflect.Type) any {
	if value == nil {
		return nil
	}
	if targetType.Kind() == reflect.Ptr {
		targetType = targetType.Elem()
	}

	switch targetType.Kind() {
	case reflect.String:
		return convertToString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s, ok := value.(string); ok {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return n
			}
		}
	case reflect.Bool:
		if s, ok := value.(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return b
			}
		}
	case reflect.Slice:
		if arr, ok := value.([]any); ok {
			result := make([]any, len(arr))
			for i, item := range arr {
				result[i] = convertValue(item, targetType.Elem())
			}
			return result
		}
	case reflect.Struct:
		if m, ok := value.(map[string]any); ok {
			return convertMapToStruct(m, targetType)
		}
	}
	return value
}

// convertToString converts any value to a string
func convertToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	case map[string]any, []any:
		b, _ := json.Marshal(v)
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// findFieldByJSONTag finds a struct field by its JSON tag, descending into embedded structs.
func findFieldByJSONTag(structType reflect.Type, jsonTag string) (reflect.StructField, bool) {
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" {
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				if f, ok := findFieldByJSONTag(field.Type, jsonTag); ok {
					return f, true
				}
			}
			continue
		}
		if name, _ := parseJSONTag(tag); name == jsonTag {
			return field, true
		}
	}
	return reflect.StructField{}, false
}
