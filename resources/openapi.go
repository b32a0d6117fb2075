package resources

import (
	"context"
	"net/http"

	"github.com/national-data-platform/ndp-ep-go-client/core"
	"github.com/national-data-platform/ndp-ep-go-client/openapi_schema"
)

// OpenAPI reads the service's own OpenAPI description. Every call fetches it anew.
type OpenAPI struct {
	*core.EPResource
}

func (o *OpenAPI) SchemaWithContext(ctx context.Context) (*openapi_schema.Document, error) {
	raw, url, err := core.RequestRaw(core.WithOperation(ctx, "fetching OpenAPI schema"), o, http.MethodGet, o.GetResourcePath(), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	doc, err := openapi_schema.Load(raw)
	if err != nil {
		return nil, &core.ApiError{
			Operation: "fetching OpenAPI schema",
			Method:    http.MethodGet,
			URL:       url,
			Detail:    "invalid response format: " + err.Error(),
			Body:      string(raw),
		}
	}
	return doc, nil
}

func (o *OpenAPI) Schema() (*openapi_schema.Document, error) {
	return o.SchemaWithContext(o.Ctx())
}

// SupportsOperationWithContext reports whether the service documents method on path.
func (o *OpenAPI) SupportsOperationWithContext(ctx context.Context, method, path string) (bool, error) {
	doc, err := o.SchemaWithContext(ctx)
	if err != nil {
		return false, err
	}
	return doc.HasOperation(method, path), nil
}

func (o *OpenAPI) SupportsOperation(method, path string) (bool, error) {
	return o.SupportsOperationWithContext(o.Ctx(), method, path)
}
