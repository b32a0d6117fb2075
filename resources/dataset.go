package resources

import (
	"context"
	"net/http"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

// Datasets registers general datasets and manages resources attached to them.
type Datasets struct {
	*core.KindResource
}

func (d *Datasets) RegisterWithContext(ctx context.Context, req DatasetRequest, server core.Server) (core.Record, error) {
	return register(ctx, d.KindResource, req, server)
}

func (d *Datasets) Register(req DatasetRequest, server core.Server) (core.Record, error) {
	return d.RegisterWithContext(d.Ctx(), req, server)
}

func (d *Datasets) UpdateWithContext(ctx context.Context, id string, req DatasetRequest, server core.Server) (core.Record, error) {
	return update(ctx, d.KindResource, id, req, server)
}

func (d *Datasets) Update(id string, req DatasetRequest, server core.Server) (core.Record, error) {
	return d.UpdateWithContext(d.Ctx(), id, req, server)
}

func (d *Datasets) Patch(id string, params core.Params, server core.Server) (core.Record, error) {
	return d.PatchWithContext(d.Ctx(), id, params, server)
}

func (d *Datasets) resourcePath(datasetID, resourceID string) (string, error) {
	if err := core.RequireFields("dataset_id", datasetID, "resource_id", resourceID); err != nil {
		return "", err
	}
	return d.Path(datasetID, "resource", resourceID)
}

// PatchResourceWithContext updates the given fields of one resource inside a dataset.
// The dataset itself is left untouched.
func (d *Datasets) PatchResourceWithContext(ctx context.Context, datasetID, resourceID string, params core.Params, server core.Server) (core.Record, error) {
	if len(params) == 0 {
		return nil, &core.ValidationError{Field: "params", Message: "nothing to update"}
	}
	path, err := d.resourcePath(datasetID, resourceID)
	if err != nil {
		return nil, err
	}
	query, err := core.NewServerQuery(server, core.ServerLocal)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, d, "updating dataset resource", http.MethodPatch, path, query, params)
}

func (d *Datasets) PatchResource(datasetID, resourceID string, params core.Params, server core.Server) (core.Record, error) {
	return d.PatchResourceWithContext(d.Ctx(), datasetID, resourceID, params, server)
}

// DeleteResourceWithContext removes one resource from a dataset.
func (d *Datasets) DeleteResourceWithContext(ctx context.Context, datasetID, resourceID string, server core.Server) (core.Record, error) {
	path, err := d.resourcePath(datasetID, resourceID)
	if err != nil {
		return nil, err
	}
	query, err := core.NewServerQuery(server, core.ServerLocal)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, d, "deleting dataset resource", http.MethodDelete, path, query, nil)
}

func (d *Datasets) DeleteResource(datasetID, resourceID string, server core.Server) (core.Record, error) {
	return d.DeleteResourceWithContext(d.Ctx(), datasetID, resourceID, server)
}
