package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

// nullKey is sent in place of a missing key so terms and keys stay aligned.
const nullKey = "null"

type Search struct {
	*core.EPResource
}

func searchQuery(terms []string, keys []*string, server core.Server) (core.Params, error) {
	if len(terms) == 0 {
		return nil, &core.ValidationError{Field: "terms", Message: "at least one search term is required"}
	}
	if keys != nil && len(keys) != len(terms) {
		return nil, &core.ValidationError{
			Field:   "keys",
			Message: fmt.Sprintf("expected %d keys to match terms, got %d", len(terms), len(keys)),
		}
	}
	resolved, err := server.Resolve(core.ServerGlobal)
	if err != nil {
		return nil, err
	}
	query := core.Params{"terms": terms, "server": resolved}
	if keys != nil {
		encoded := make([]string, len(keys))
		for i, key := range keys {
			if key == nil {
				encoded[i] = nullKey
			} else {
				encoded[i] = *key
			}
		}
		query["keys"] = encoded
	}
	return query, nil
}

// DatasetsWithContext runs a simple term search. keys, when given, restricts
// each term to a field; a nil entry searches all fields. The server defaults to global.
func (s *Search) DatasetsWithContext(ctx context.Context, terms []string, keys []*string, server core.Server) (core.RecordSet, error) {
	query, err := searchQuery(terms, keys, server)
	if err != nil {
		return nil, err
	}
	result, err := core.Request[core.RecordSet](ctx, s, "searching datasets", http.MethodGet, s.GetResourcePath(), query, nil)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = core.RecordSet{}
	}
	return result, nil
}

func (s *Search) Datasets(terms []string, keys []*string, server core.Server) (core.RecordSet, error) {
	return s.DatasetsWithContext(s.Ctx(), terms, keys, server)
}

// DatasetsTypedWithContext is DatasetsWithContext decoded into Dataset values.
func (s *Search) DatasetsTypedWithContext(ctx context.Context, terms []string, keys []*string, server core.Server) ([]Dataset, error) {
	result, err := s.DatasetsWithContext(ctx, terms, keys, server)
	if err != nil {
		return nil, err
	}
	datasets := make([]Dataset, 0, len(result))
	if err = result.Fill(&datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (s *Search) DatasetsTyped(terms []string, keys []*string, server core.Server) ([]Dataset, error) {
	return s.DatasetsTypedWithContext(s.Ctx(), terms, keys, server)
}

// AdvancedWithContext posts a structured search. Server is required.
func (s *Search) AdvancedWithContext(ctx context.Context, req AdvancedSearchRequest) (core.RecordSet, error) {
	if err := core.RequireFields("server", req.Server); err != nil {
		return nil, err
	}
	if _, err := core.Server(req.Server).Resolve(""); err != nil {
		return nil, err
	}
	body, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	result, err := core.Request[core.RecordSet](ctx, s, "searching datasets", http.MethodPost, s.GetResourcePath(), nil, body)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = core.RecordSet{}
	}
	return result, nil
}

func (s *Search) Advanced(req AdvancedSearchRequest) (core.RecordSet, error) {
	return s.AdvancedWithContext(s.Ctx(), req)
}
