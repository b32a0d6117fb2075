package rest

import (
	"context"

	"github.com/national-data-platform/ndp-ep-go-client/core"
	"github.com/national-data-platform/ndp-ep-go-client/resources"
)

// EPRest is the NDP EP client. Every resource group shares one session.
type EPRest struct {
	ctx         context.Context
	Session     core.RESTSession
	resourceMap map[string]core.EPResourceAPI // resources by resourceType

	Organizations *resources.Organization
	URLResources  *resources.URLResource
	S3Resources   *resources.S3Resource
	KafkaTopics   *resources.KafkaTopic
	Services      *resources.Service
	Datasets      *resources.Datasets
	Resources     *resources.Resource
	Search        *resources.Search
	Status        *resources.Status
	Users         *resources.User
	S3Buckets     *resources.S3Bucket
	S3Objects     *resources.S3Object
	Pelican       *resources.Pelican
	OpenAPI       *resources.OpenAPI
}

// NewEPRest validates config, authenticates (token or a single login) and
// wires every resource group. Login failures are returned here.
func NewEPRest(config *core.EPConfig) (*EPRest, error) {
	session, err := core.NewEPSession(config)
	if err != nil {
		return nil, err
	}
	rest := &EPRest{
		Session:     session,
		resourceMap: make(map[string]core.EPResourceAPI),
	}
	if config.Context != nil {
		rest.SetCtx(config.Context)
	} else {
		rest.SetCtx(context.Background())
	}

	rest.Organizations = &resources.Organization{EPResource: newResource(rest, "organization", "Organization")}
	rest.URLResources = &resources.URLResource{KindResource: newKindResource(rest, core.KindURL, "URLResource")}
	rest.S3Resources = &resources.S3Resource{KindResource: newKindResource(rest, core.KindS3, "S3Resource")}
	rest.KafkaTopics = &resources.KafkaTopic{KindResource: newKindResource(rest, core.KindKafka, "KafkaTopic")}
	rest.Services = &resources.Service{KindResource: newKindResource(rest, core.KindService, "Service")}
	rest.Datasets = &resources.Datasets{KindResource: newKindResource(rest, core.KindDataset, "Dataset")}
	rest.Resources = &resources.Resource{EPResource: newResource(rest, "resource", "Resource")}
	rest.Search = &resources.Search{EPResource: newResource(rest, "search", "Search")}
	rest.Status = &resources.Status{EPResource: newResource(rest, "status", "Status")}
	rest.Users = &resources.User{EPResource: newResource(rest, "user", "User")}
	rest.S3Buckets = &resources.S3Bucket{EPResource: newResource(rest, "s3/buckets", "S3Bucket")}
	rest.S3Objects = &resources.S3Object{EPResource: newResource(rest, "s3/objects", "S3Object")}
	rest.Pelican = &resources.Pelican{EPResource: newResource(rest, "pelican", "Pelican")}
	rest.OpenAPI = &resources.OpenAPI{EPResource: newResource(rest, "openapi.json", "OpenAPI")}

	return rest, nil
}

func (rest *EPRest) GetSession() core.RESTSession {
	return rest.Session
}

func (rest *EPRest) GetResourceMap() map[string]core.EPResourceAPI {
	return rest.resourceMap
}

func (rest *EPRest) GetCtx() context.Context {
	return rest.ctx
}

// SetCtx replaces the context used by methods without a context argument.
// Call it before sharing the client between goroutines.
func (rest *EPRest) SetCtx(ctx context.Context) {
	rest.ctx = ctx
}

func newResource(rest *EPRest, resourcePath, resourceType string) *core.EPResource {
	resource := core.NewEPResource(resourcePath, resourceType, rest)
	rest.resourceMap[resourceType] = resource
	return resource
}

func newKindResource(rest *EPRest, kind core.ResourceKind, resourceType string) *core.KindResource {
	resource := core.NewKindResource(kind, resourceType, rest)
	rest.resourceMap[resourceType] = resource
	return resource
}
