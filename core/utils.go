package core

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// JoinPath escapes each segment and joins them under the given root path.
// Empty segments are rejected so "/resource/" is never produced by accident,
// and so are "." and ".." since they would address another endpoint.
func JoinPath(root string, segments ...string) (string, error) {
	path := strings.TrimRight(root, "/")
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return "", &ValidationError{Field: "path", Message: fmt.Sprintf("empty path segment under %s", root)}
		}
		if segment == "." || segment == ".." {
			return "", &ValidationError{Field: "path", Message: fmt.Sprintf("dot segment %q under %s", segment, root)}
		}
		path += "/" + url.PathEscape(segment)
	}
	return path, nil
}

// requireFields returns a ValidationError naming the first field whose value is blank.
// Pairs are given as name, value, name, value, ...
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return &ValidationError{Field: pairs[i], Message: "is required"}
		}
	}
	return nil
}

// RequireFields is the exported form of requireFields for resource packages.
func RequireFields(pairs ...string) error {
	return requireFields(pairs...)
}

// structToMap converts a struct to a map[string]any using reflection,
// respecting json tags (including omitempty) and handling nested structs recursively.
func structToMap(item any) map[string]any {
	res := map[string]any{}
	if item == nil {
		return res
	}

	v := reflect.TypeOf(item)
	reflectValue := reflect.Indirect(reflect.ValueOf(item))
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	for i := 0; i < v.NumField(); i++ {
		field := reflectValue.Field(i)
		if !field.CanInterface() {
			continue
		}
		tagName, omitEmpty := parseJSONTag(v.Field(i).Tag.Get("json"))
		if tagName == "" || tagName == "-" {
			continue
		}

		switch {
		case field.Kind() == reflect.Ptr:
			if field.IsNil() {
				if omitEmpty {
					continue
				}
				res[tagName] = nil
			} else if field.Elem().Kind() == reflect.Struct {
				res[tagName] = structToMap(field.Interface())
			} else {
				// omitempty drops nil pointers only, never pointers to zero values
				res[tagName] = field.Elem().Interface()
			}

		case field.Kind() == reflect.Struct:
			res[tagName] = structToMap(field.Interface())

		case field.Kind() == reflect.Slice || field.Kind() == reflect.Map:
			if omitEmpty && (field.IsNil() || field.Len() == 0) {
				continue
			}
			if field.IsNil() {
				res[tagName] = nil
				continue
			}
			res[tagName] = field.Interface()

		default:
			if omitEmpty && field.IsZero() {
				continue
			}
			res[tagName] = field.Interface()
		}
	}
	return res
}

// parseJSONTag parses a JSON struct tag and returns the field name and whether omitempty is specified.
//   - `json:"name"` returns ("name", false)
//   - `json:"name,omitempty"` returns ("name", true)
//   - `json:"-"` returns ("-", false)
func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "omitempty" {
			omitEmpty = true
			break
		}
	}
	return name, omitEmpty
}
