package core

import (
	"context"
)

// RestAPI is implemented by the top-level client that owns the session.
type RestAPI interface {
	GetSession() RESTSession
	GetCtx() context.Context
}

// EPResourceAPI is the minimal surface Request needs from a resource group.
type EPResourceAPI interface {
	Session() RESTSession
	Ctx() context.Context
	GetResourceType() string
	GetResourcePath() string
}
