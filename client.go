package ndp_ep

import (
	"github.com/national-data-platform/ndp-ep-go-client/core"
	"github.com/national-data-platform/ndp-ep-go-client/rest"
)

type (
	EPConfig      = core.EPConfig
	Params        = core.Params
	Record        = core.Record
	RecordSet     = core.RecordSet
	Renderable    = core.Renderable
	Server        = core.Server
	EPRest        = rest.EPRest
	EPResourceAPI = core.EPResourceAPI
	ApiError      = core.ApiError
	TransportErr  = core.TransportError
	ValidationErr = core.ValidationError
)

const (
	ServerLocal   = core.ServerLocal
	ServerGlobal  = core.ServerGlobal
	ServerPreCkan = core.ServerPreCkan
)

func NewEPRest(config *EPConfig) (*EPRest, error) {
	return rest.NewEPRest(config)
}
