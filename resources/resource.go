package resources

import (
	"context"
	"net/http"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

// DefaultSearchLimit is used by resource search when no limit is given.
const DefaultSearchLimit = 100

// Resource works on single catalog resources regardless of the dataset that holds them.
type Resource struct {
	*core.EPResource
}

type resourceNameQuery struct {
	Name   string      `url:"name"`
	Server core.Server `url:"server,omitempty"`
}

func (r *Resource) byID(id string, server core.Server) (string, *core.ServerQuery, error) {
	path, err := r.Path(id)
	if err != nil {
		return "", nil, err
	}
	query, err := core.NewServerQuery(server, core.ServerLocal)
	if err != nil {
		return "", nil, err
	}
	return path, query, nil
}

func (r *Resource) GetWithContext(ctx context.Context, id string, server core.Server) (core.Record, error) {
	path, query, err := r.byID(id, server)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, r, "getting resource", http.MethodGet, path, query, nil)
}

func (r *Resource) Get(id string, server core.Server) (core.Record, error) {
	return r.GetWithContext(r.Ctx(), id, server)
}

// PatchWithContext sends only the fields of patch that are set.
func (r *Resource) PatchWithContext(ctx context.Context, id string, patch ResourcePatch, server core.Server) (core.Record, error) {
	body, err := core.NewParamsFromStruct(patch)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &core.ValidationError{Field: "patch", Message: "nothing to update"}
	}
	path, query, err := r.byID(id, server)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, r, "updating resource", http.MethodPatch, path, query, body)
}

func (r *Resource) Patch(id string, patch ResourcePatch, server core.Server) (core.Record, error) {
	return r.PatchWithContext(r.Ctx(), id, patch, server)
}

// DeleteByIDWithContext removes a resource by id.
func (r *Resource) DeleteByIDWithContext(ctx context.Context, id string, server core.Server) (core.Record, error) {
	path, query, err := r.byID(id, server)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, r, "deleting resource", http.MethodDelete, path, query, nil)
}

func (r *Resource) DeleteByID(id string, server core.Server) (core.Record, error) {
	return r.DeleteByIDWithContext(r.Ctx(), id, server)
}

// DeleteByNameWithContext removes a resource by name.
func (r *Resource) DeleteByNameWithContext(ctx context.Context, name string, server core.Server) (core.Record, error) {
	if err := core.RequireFields("name", name); err != nil {
		return nil, err
	}
	resolved, err := server.Resolve(core.ServerLocal)
	if err != nil {
		return nil, err
	}
	query := resourceNameQuery{Name: name, Server: resolved}
	return core.Request[core.Record](ctx, r, "deleting resource", http.MethodDelete, r.GetResourcePath(), query, nil)
}

func (r *Resource) DeleteByName(name string, server core.Server) (core.Record, error) {
	return r.DeleteByNameWithContext(r.Ctx(), name, server)
}

// SearchWithContext finds resources across all datasets. The result holds
// "count" and "results". A zero Limit means DefaultSearchLimit.
func (r *Resource) SearchWithContext(ctx context.Context, q ResourceSearchQuery) (core.Record, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, &core.ValidationError{Field: "limit/offset", Message: "must not be negative"}
	}
	if q.Limit == 0 {
		q.Limit = DefaultSearchLimit
	}
	resolved, err := core.Server(q.Server).Resolve(core.ServerLocal)
	if err != nil {
		return nil, err
	}
	q.Server = resolved.String()
	return core.Request[core.Record](ctx, r, "searching resources", http.MethodGet, "/resources/search", q, nil)
}

func (r *Resource) Search(q ResourceSearchQuery) (core.Record, error) {
	return r.SearchWithContext(r.Ctx(), q)
}
