package openapi_schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a parsed OpenAPI v3 description of the EP service.
type Document struct {
	doc *openapi3.T
}

// Load parses an OpenAPI v3 document from JSON or YAML bytes.
func Load(data []byte) (*Document, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if doc.Paths == nil {
		return nil, fmt.Errorf("OpenAPI document has no paths")
	}
	return &Document{doc: doc}, nil
}

// Raw exposes the underlying kin-openapi document.
func (d *Document) Raw() *openapi3.T {
	return d.doc
}

func (d *Document) Title() string {
	if d.doc.Info == nil {
		return ""
	}
	return d.doc.Info.Title
}

func (d *Document) Version() string {
	if d.doc.Info == nil {
		return ""
	}
	return d.doc.Info.Version
}

// Paths returns all documented paths in sorted order.
func (d *Document) Paths() []string {
	paths := make([]string, 0, d.doc.Paths.Len())
	for path := range d.doc.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// pathItem accepts both forms of a path: with and without trailing slash.
func (d *Document) pathItem(resourcePath string) (*openapi3.PathItem, bool) {
	base := "/" + strings.Trim(strings.TrimSpace(resourcePath), "/")
	paths := d.doc.Paths.Map()
	if item := paths[base]; item != nil {
		return item, true
	}
	if item := paths[base+"/"]; item != nil {
		return item, true
	}
	return nil, false
}

// Operation returns the operation documented for method on resourcePath.
func (d *Document) Operation(httpMethod, resourcePath string) (*openapi3.Operation, error) {
	item, ok := d.pathItem(resourcePath)
	if !ok {
		return nil, fmt.Errorf("path not found in OpenAPI schema: %s", resourcePath)
	}
	method := strings.ToUpper(httpMethod)
	operation := item.GetOperation(method)
	if operation == nil {
		return nil, fmt.Errorf(
			"method %s not found for path %s (available methods: %v)",
			method, resourcePath, availableMethods(item),
		)
	}
	return operation, nil
}

// HasOperation reports whether method on resourcePath is documented.
func (d *Document) HasOperation(httpMethod, resourcePath string) bool {
	_, err := d.Operation(httpMethod, resourcePath)
	return err == nil
}

func (d *Document) OperationSummary(httpMethod, resourcePath string) (string, error) {
	operation, err := d.Operation(httpMethod, resourcePath)
	if err != nil {
		return "", err
	}
	return operation.Summary, nil
}

// QueryParameters returns the names of the query parameters of an operation, sorted.
func (d *Document) QueryParameters(httpMethod, resourcePath string) ([]string, error) {
	operation, err := d.Operation(httpMethod, resourcePath)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ref := range operation.Parameters {
		if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
			continue
		}
		names = append(names, ref.Value.Name)
	}
	sort.Strings(names)
	return names, nil
}

// RequestBodySchema returns the resolved JSON request body schema of an operation,
// or an empty schema when the operation takes no body.
func (d *Document) RequestBodySchema(httpMethod, resourcePath string) (*openapi3.Schema, error) {
	operation, err := d.Operation(httpMethod, resourcePath)
	if err != nil {
		return nil, err
	}
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return &openapi3.Schema{}, nil
	}
	content := operation.RequestBody.Value.Content.Get("application/json")
	if content == nil {
		content = operation.RequestBody.Value.Content.Get("*/*")
	}
	if content == nil || content.Schema == nil {
		return &openapi3.Schema{}, nil
	}
	return d.resolveComposedSchema(d.resolveRefs(content.Schema)), nil
}

// RequiredFields returns the required properties of an operation's request body.
func (d *Document) RequiredFields(httpMethod, resourcePath string) ([]string, error) {
	schema, err := d.RequestBodySchema(httpMethod, resourcePath)
	if err != nil {
		return nil, err
	}
	required := append([]string(nil), schema.Required...)
	sort.Strings(required)
	return required, nil
}

func (d *Document) componentSchema(ref string) *openapi3.SchemaRef {
	if d.doc.Components == nil {
		return nil
	}
	name := ref[strings.LastIndex(ref, "/")+1:]
	return d.doc.Components.Schemas[name]
}

func (d *Document) resolveRefs(ref *openapi3.SchemaRef) *openapi3.Schema {
	seen := map[string]bool{}
	for ref != nil && ref.Value == nil && ref.Ref != "" && !seen[ref.Ref] {
		seen[ref.Ref] = true
		ref = d.componentSchema(ref.Ref)
	}
	if ref == nil || ref.Value == nil {
		return &openapi3.Schema{}
	}
	return ref.Value
}

// resolveComposedSchema merges allOf parts and picks the first typed oneOf/anyOf branch.
func (d *Document) resolveComposedSchema(schema *openapi3.Schema) *openapi3.Schema {
	if len(schema.AllOf) > 0 {
		merged := &openapi3.Schema{
			Properties:  openapi3.Schemas{},
			Title:       schema.Title,
			Description: schema.Description,
			Type:        schema.Type,
		}
		for name, prop := range schema.Properties {
			merged.Properties[name] = prop
		}
		merged.Required = append(merged.Required, schema.Required...)
		for _, subRef := range schema.AllOf {
			sub := d.resolveComposedSchema(d.resolveRefs(subRef))
			for name, prop := range sub.Properties {
				merged.Properties[name] = prop
			}
			merged.Required = append(merged.Required, sub.Required...)
			if GetSchemaType(sub) != "" {
				merged.Type = sub.Type
			}
		}
		return merged
	}
	if GetSchemaType(schema) != "" {
		return schema
	}
	for _, refList := range [][]*openapi3.SchemaRef{schema.OneOf, schema.AnyOf} {
		for _, subRef := range refList {
			if sub := d.resolveRefs(subRef); GetSchemaType(sub) != "" {
				return sub
			}
		}
	}
	return schema
}

func availableMethods(item *openapi3.PathItem) []string {
	var methods []string
	for method := range item.Operations() {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}
