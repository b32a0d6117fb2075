package resources

import (
	"context"
	"net/http"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

type Organization struct {
	*core.EPResource
}

type organizationQuery struct {
	Server core.Server `url:"server,omitempty"`
	Name   string      `url:"name,omitempty"`
}

// ListWithContext returns organization names, optionally filtered by a name fragment.
// The server defaults to global.
func (o *Organization) ListWithContext(ctx context.Context, name string, server core.Server) ([]string, error) {
	resolved, err := server.Resolve(core.ServerGlobal)
	if err != nil {
		return nil, err
	}
	query := organizationQuery{Server: resolved, Name: name}
	names, err := core.Request[[]string](ctx, o, "listing organizations", http.MethodGet, o.GetResourcePath(), query, nil)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (o *Organization) List(name string, server core.Server) ([]string, error) {
	return o.ListWithContext(o.Ctx(), name, server)
}

// RegisterWithContext creates an organization. Name and title are required.
func (o *Organization) RegisterWithContext(ctx context.Context, req OrganizationRequest, server core.Server) (core.Record, error) {
	if err := core.RequireFields("name", req.Name, "title", req.Title); err != nil {
		return nil, err
	}
	query, err := core.NewServerQuery(server, core.ServerLocal)
	if err != nil {
		return nil, err
	}
	body, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	result, err := core.Request[core.Record](ctx, o, "registering organization", http.MethodPost, o.GetResourcePath(), query, body)
	return result, core.RewriteDetail(err, core.DetailHint{
		Contains: "Group name already exists in database",
		Detail:   "organization name already exists",
	})
}

func (o *Organization) Register(req OrganizationRequest, server core.Server) (core.Record, error) {
	return o.RegisterWithContext(o.Ctx(), req, server)
}

// DeleteWithContext removes an organization by name.
func (o *Organization) DeleteWithContext(ctx context.Context, name string, server core.Server) (core.Record, error) {
	path, err := o.Path(name)
	if err != nil {
		return nil, err
	}
	query, err := core.NewServerQuery(server, core.ServerLocal)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, o, "deleting organization", http.MethodDelete, path, query, nil)
}

func (o *Organization) Delete(name string, server core.Server) (core.Record, error) {
	return o.DeleteWithContext(o.Ctx(), name, server)
}
