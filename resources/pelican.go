package resources

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

const (
	DefaultFederation = "osdf"
	pelicanScheme     = "pelican://"
)

// Pelican browses Pelican data federations and imports their files into the catalog.
type Pelican struct {
	*core.EPResource
}

type pelicanQuery struct {
	Path       string `url:"path"`
	Federation string `url:"federation"`
	Detail     string `url:"detail,omitempty"`
}

func newPelicanQuery(path, federation string) (*pelicanQuery, error) {
	if err := core.RequireFields("path", path); err != nil {
		return nil, err
	}
	if federation == "" {
		federation = DefaultFederation
	}
	return &pelicanQuery{Path: path, Federation: federation}, nil
}

func (p *Pelican) FederationsWithContext(ctx context.Context) (core.Record, error) {
	path, err := p.Path("federations")
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, p, "listing Pelican federations", http.MethodGet, path, nil, nil)
}

func (p *Pelican) Federations() (core.Record, error) {
	return p.FederationsWithContext(p.Ctx())
}

// BrowseWithContext lists files under a namespace path. federation defaults to "osdf".
func (p *Pelican) BrowseWithContext(ctx context.Context, path, federation string, detail bool) (core.Record, error) {
	query, err := newPelicanQuery(path, federation)
	if err != nil {
		return nil, err
	}
	query.Detail = strconv.FormatBool(detail)
	endpoint, err := p.Path("browse")
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, p, "browsing Pelican", http.MethodGet, endpoint, query, nil)
}

func (p *Pelican) Browse(path, federation string, detail bool) (core.Record, error) {
	return p.BrowseWithContext(p.Ctx(), path, federation, detail)
}

// InfoWithContext returns file metadata without downloading the file.
func (p *Pelican) InfoWithContext(ctx context.Context, path, federation string) (core.Record, error) {
	query, err := newPelicanQuery(path, federation)
	if err != nil {
		return nil, err
	}
	endpoint, err := p.Path("info")
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, p, "getting Pelican info", http.MethodGet, endpoint, query, nil)
}

func (p *Pelican) Info(path, federation string) (core.Record, error) {
	return p.InfoWithContext(p.Ctx(), path, federation)
}

// ImportMetadataWithContext registers a Pelican file as a resource of an existing dataset.
func (p *Pelican) ImportMetadataWithContext(ctx context.Context, req PelicanImportRequest) (core.Record, error) {
	if err := core.RequireFields("pelican_url", req.PelicanURL, "package_id", req.PackageID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(req.PelicanURL, pelicanScheme) {
		return nil, &core.ValidationError{Field: "pelican_url", Message: "URL must start with " + pelicanScheme}
	}
	body, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	endpoint, err := p.Path("import-metadata")
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, p, "importing Pelican metadata", http.MethodPost, endpoint, nil, body)
}

func (p *Pelican) ImportMetadata(req PelicanImportRequest) (core.Record, error) {
	return p.ImportMetadataWithContext(p.Ctx(), req)
}
