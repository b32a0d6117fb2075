package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

//  ######################################################
//              EP RESOURCES BASE OPS
//  ######################################################

// EPResource implements EPResourceAPI and provides common behavior for EP resource groups.
type EPResource struct {
	resourcePath string
	resourceType string
	Rest         RestAPI
}

func NewEPResource(resourcePath string, resourceType string, rest RestAPI) *EPResource {
	return &EPResource{
		resourcePath: resourcePath,
		resourceType: resourceType,
		Rest:         rest,
	}
}

// Session returns the session associated with the resource.
func (e *EPResource) Session() RESTSession {
	return e.Rest.GetSession()
}

// Ctx returns the client-level context used by methods without a context argument.
func (e *EPResource) Ctx() context.Context {
	if ctx := e.Rest.GetCtx(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (e *EPResource) GetResourceType() string {
	return e.resourceType
}

func (e *EPResource) GetResourcePath() string {
	return "/" + strings.Trim(e.resourcePath, "/")
}

// Path joins escaped segments under the resource path.
func (e *EPResource) Path(segments ...string) (string, error) {
	return JoinPath(e.GetResourcePath(), segments...)
}

// ServerQuery is the `?server=` query shared by most endpoints.
type ServerQuery struct {
	Server Server `url:"server,omitempty"`
}

// NewServerQuery resolves server against def and wraps it for query encoding.
func NewServerQuery(server, def Server) (*ServerQuery, error) {
	resolved, err := server.Resolve(def)
	if err != nil {
		return nil, err
	}
	return &ServerQuery{Server: resolved}, nil
}

//  ######################################################
//              RESOURCE KINDS
//  ######################################################

// ResourceKind describes one registrable entry type: where it lives and which fields it needs.
type ResourceKind struct {
	Name     string   // human-readable name used in operation messages, e.g. "URL resource"
	Path     string   // collection path, e.g. "/url"
	Required []string // json keys that must be present and non-blank
	Hints    []DetailHint
}

var (
	hintMissingOrg   = DetailHint{Contains: "Organization does not exist", Detail: "organization (owner_org) does not exist"}
	hintUnconfigured = DetailHint{Contains: "Server is not configured", Detail: "server is not configured or unreachable"}
	hintNameExists   = DetailHint{Contains: "Group name already exists in database", Detail: "name already exists"}
	hintReservedKey  = DetailHint{Contains: "Reserved key error", Detail: "reserved key conflict"}
	hintServiceOwner = DetailHint{Contains: "owner_org must be 'services'", Detail: "owner_org must be 'services' for service registration"}
	hintDupService   = DetailHint{Contains: "Duplicate Service", Detail: "a service with the given name or URL already exists"}
	hintDupDataset   = DetailHint{Contains: "Duplicate Dataset", Detail: "a dataset with the given name already exists"}
)

var (
	KindURL = ResourceKind{
		Name:     "URL resource",
		Path:     "/url",
		Required: []string{"resource_name", "resource_title", "owner_org", "resource_url"},
		Hints:    []DetailHint{hintMissingOrg, hintNameExists},
	}
	KindS3 = ResourceKind{
		Name:     "S3 resource",
		Path:     "/s3",
		Required: []string{"resource_name", "resource_title", "owner_org", "resource_s3"},
		Hints:    []DetailHint{hintMissingOrg, hintReservedKey},
	}
	KindKafka = ResourceKind{
		Name:     "Kafka topic",
		Path:     "/kafka",
		Required: []string{"dataset_name", "dataset_title", "owner_org", "kafka_topic", "kafka_host", "kafka_port"},
		Hints:    []DetailHint{hintMissingOrg},
	}
	KindService = ResourceKind{
		Name:     "service",
		Path:     "/services",
		Required: []string{"service_name", "service_title", "owner_org", "service_url"},
		Hints:    []DetailHint{hintServiceOwner, hintUnconfigured, hintDupService},
	}
	KindDataset = ResourceKind{
		Name:     "dataset",
		Path:     "/dataset",
		Required: []string{"name", "title", "owner_org"},
		Hints:    []DetailHint{hintUnconfigured, hintDupDataset},
	}
)

// ResourceKinds lists every registrable kind.
var ResourceKinds = []ResourceKind{KindURL, KindS3, KindKafka, KindService, KindDataset}

// Validate checks that every required key is present in body and not blank.
// The error names all missing fields, in table order.
func (k ResourceKind) Validate(body Params) error {
	var missing []string
	for _, key := range k.Required {
		value, ok := body[key]
		if !ok || value == nil || strings.TrimSpace(fmt.Sprint(value)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Field:   strings.Join(missing, ", "),
			Message: fmt.Sprintf("missing required field(s) for %s", k.Name),
		}
	}
	return nil
}

// KindResource is an EPResource bound to a ResourceKind. It implements
// register (POST), update (PUT) and patch (PATCH) uniformly across kinds.
type KindResource struct {
	*EPResource
	Kind ResourceKind
}

func NewKindResource(kind ResourceKind, resourceType string, rest RestAPI) *KindResource {
	return &KindResource{
		EPResource: NewEPResource(kind.Path, resourceType, rest),
		Kind:       kind,
	}
}

// RegisterWithContext validates body against the kind and POSTs it to the collection path.
func (k *KindResource) RegisterWithContext(ctx context.Context, body Params, server Server) (Record, error) {
	if err := k.Kind.Validate(body); err != nil {
		return nil, err
	}
	query, err := NewServerQuery(server, ServerLocal)
	if err != nil {
		return nil, err
	}
	result, err := Request[Record](ctx, k, "registering "+k.Kind.Name, http.MethodPost, k.GetResourcePath(), query, body)
	return result, RewriteDetail(err, k.Kind.Hints...)
}

// UpdateWithContext replaces the entry with a full payload (PUT).
func (k *KindResource) UpdateWithContext(ctx context.Context, id string, body Params, server Server) (Record, error) {
	if err := RequireFields("id", id); err != nil {
		return nil, err
	}
	if err := k.Kind.Validate(body); err != nil {
		return nil, err
	}
	path, err := k.Path(id)
	if err != nil {
		return nil, err
	}
	query, err := NewServerQuery(server, ServerLocal)
	if err != nil {
		return nil, err
	}
	result, err := Request[Record](ctx, k, "updating "+k.Kind.Name, http.MethodPut, path, query, body)
	return result, RewriteDetail(err, k.Kind.Hints...)
}

// PatchWithContext sends exactly the supplied keys (PATCH). No required-field check is applied.
func (k *KindResource) PatchWithContext(ctx context.Context, id string, params Params, server Server) (Record, error) {
	if err := RequireFields("id", id); err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, &ValidationError{Field: "params", Message: "nothing to update"}
	}
	path, err := k.Path(id)
	if err != nil {
		return nil, err
	}
	query, err := NewServerQuery(server, ServerLocal)
	if err != nil {
		return nil, err
	}
	return Request[Record](ctx, k, "patching "+k.Kind.Name, http.MethodPatch, path, query, params)
}
