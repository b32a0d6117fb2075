/*
Package ndp_ep provides a Go client for the National Data Platform EP REST API,
a CKAN-like catalog front end.

The client builds requests for each endpoint, attaches a bearer token (given
directly or obtained by a single login during construction) and turns every
failure into one of three error kinds: *core.ValidationError for arguments
rejected locally, *core.TransportError when the service cannot be reached and
*core.ApiError for non-2xx responses.

The main entry point is EPRest, created from an EPConfig. Each resource group
(Organizations, URLResources, S3Resources, KafkaTopics, Services, Datasets,
Resources, Search, Status, Users, S3Buckets, S3Objects, Pelican, OpenAPI) is a
field of EPRest. Every method has a WithContext variant; the plain form uses
the client-level context.

	client, err := ndp_ep.NewEPRest(&ndp_ep.EPConfig{
		BaseURL: "http://localhost:8002",
		Token:   os.Getenv("NDP_EP_TOKEN"),
	})
	if err != nil {
		log.Fatal(err)
	}
	orgs, err := client.Organizations.List("", ndp_ep.ServerGlobal)
*/
package ndp_ep
