package openapi_schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// IsObject returns true if the given OpenAPI schema represents an object type
func IsObject(prop *openapi3.Schema) bool {
	return GetSchemaType(prop) == openapi3.TypeObject
}

// IsPrimitive returns true if the given OpenAPI schema represents a primitive type
// (string, integer, number, or boolean).
func IsPrimitive(prop *openapi3.Schema) bool {
	switch GetSchemaType(prop) {
	case openapi3.TypeString,
		openapi3.TypeInteger,
		openapi3.TypeNumber,
		openapi3.TypeBoolean:
		return true
	default:
		return false
	}
}

// GetSchemaType returns the type string of the given OpenAPI schema
func GetSchemaType(s *openapi3.Schema) string {
	if s == nil || s.Type == nil || len(*s.Type) == 0 {
		return ""
	}
	return (*s.Type)[0]
}
