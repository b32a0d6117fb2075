package resources

import (
	"context"
	"fmt"

	"github.com/national-data-platform/ndp-ep-go-client/core"
)

// register converts a typed request into Params and posts it through the kind table.
func register(ctx context.Context, k *core.KindResource, req any, server core.Server) (core.Record, error) {
	body, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	return k.RegisterWithContext(ctx, body, server)
}

func update(ctx context.Context, k *core.KindResource, id string, req any, server core.Server) (core.Record, error) {
	body, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	return k.UpdateWithContext(ctx, id, body, server)
}

// ######################################################
//
//	URL RESOURCES
//
// ######################################################

type URLResource struct {
	*core.KindResource
}

func (u *URLResource) RegisterWithContext(ctx context.Context, req URLResourceRequest, server core.Server) (core.Record, error) {
	return register(ctx, u.KindResource, req, server)
}

func (u *URLResource) Register(req URLResourceRequest, server core.Server) (core.Record, error) {
	return u.RegisterWithContext(u.Ctx(), req, server)
}

func (u *URLResource) UpdateWithContext(ctx context.Context, id string, req URLResourceRequest, server core.Server) (core.Record, error) {
	return update(ctx, u.KindResource, id, req, server)
}

func (u *URLResource) Update(id string, req URLResourceRequest, server core.Server) (core.Record, error) {
	return u.UpdateWithContext(u.Ctx(), id, req, server)
}

func (u *URLResource) Patch(id string, params core.Params, server core.Server) (core.Record, error) {
	return u.PatchWithContext(u.Ctx(), id, params, server)
}

// ######################################################
//
//	S3 RESOURCES
//
// ######################################################

type S3Resource struct {
	*core.KindResource
}

func (s *S3Resource) RegisterWithContext(ctx context.Context, req S3ResourceRequest, server core.Server) (core.Record, error) {
	return register(ctx, s.KindResource, req, server)
}

func (s *S3Resource) Register(req S3ResourceRequest, server core.Server) (core.Record, error) {
	return s.RegisterWithContext(s.Ctx(), req, server)
}

func (s *S3Resource) UpdateWithContext(ctx context.Context, id string, req S3ResourceRequest, server core.Server) (core.Record, error) {
	return update(ctx, s.KindResource, id, req, server)
}

func (s *S3Resource) Update(id string, req S3ResourceRequest, server core.Server) (core.Record, error) {
	return s.UpdateWithContext(s.Ctx(), id, req, server)
}

func (s *S3Resource) Patch(id string, params core.Params, server core.Server) (core.Record, error) {
	return s.PatchWithContext(s.Ctx(), id, params, server)
}

// ######################################################
//
//	KAFKA TOPICS
//
// ######################################################

type KafkaTopic struct {
	*core.KindResource
}

func (k *KafkaTopic) RegisterWithContext(ctx context.Context, req KafkaTopicRequest, server core.Server) (core.Record, error) {
	return register(ctx, k.KindResource, req, server)
}

func (k *KafkaTopic) Register(req KafkaTopicRequest, server core.Server) (core.Record, error) {
	return k.RegisterWithContext(k.Ctx(), req, server)
}

func (k *KafkaTopic) UpdateWithContext(ctx context.Context, id string, req KafkaTopicRequest, server core.Server) (core.Record, error) {
	return update(ctx, k.KindResource, id, req, server)
}

func (k *KafkaTopic) Update(id string, req KafkaTopicRequest, server core.Server) (core.Record, error) {
	return k.UpdateWithContext(k.Ctx(), id, req, server)
}

func (k *KafkaTopic) Patch(id string, params core.Params, server core.Server) (core.Record, error) {
	return k.PatchWithContext(k.Ctx(), id, params, server)
}

// ######################################################
//
//	SERVICES
//
// ######################################################

type Service struct {
	*core.KindResource
}

// checkServiceOwner rejects any owner other than ServicesOrg. An empty owner is
// left for the required-field check to report.
func checkServiceOwner(req ServiceRequest) error {
	if req.OwnerOrg != "" && req.OwnerOrg != ServicesOrg {
		return &core.ValidationError{
			Field:   "owner_org",
			Message: fmt.Sprintf("must be %q for service registration, got %q", ServicesOrg, req.OwnerOrg),
		}
	}
	return nil
}

func (s *Service) RegisterWithContext(ctx context.Context, req ServiceRequest, server core.Server) (core.Record, error) {
	if err := checkServiceOwner(req); err != nil {
		return nil, err
	}
	return register(ctx, s.KindResource, req, server)
}

func (s *Service) Register(req ServiceRequest, server core.Server) (core.Record, error) {
	return s.RegisterWithContext(s.Ctx(), req, server)
}

func (s *Service) UpdateWithContext(ctx context.Context, id string, req ServiceRequest, server core.Server) (core.Record, error) {
	if err := checkServiceOwner(req); err != nil {
		return nil, err
	}
	return update(ctx, s.KindResource, id, req, server)
}

func (s *Service) Update(id string, req ServiceRequest, server core.Server) (core.Record, error) {
	return s.UpdateWithContext(s.Ctx(), id, req, server)
}

func (s *Service) Patch(id string, params core.Params, server core.Server) (core.Record, error) {
	return s.PatchWithContext(s.Ctx(), id, params, server)
}
