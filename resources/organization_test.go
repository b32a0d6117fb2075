package resources_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/national-data-platform/ndp-ep-go-client/core"
	"github.com/national-data-platform/ndp-ep-go-client/resources"
)

func TestOrganization_List(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `["a","b","c"]`)

	names, err := client.Organizations.List("", core.ServerGlobal)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	req := rec.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/organization", req.Path)
	assert.Equal(t, "global", req.Query.Get("server"))
	assert.False(t, req.Query.Has("name"))
	assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
}

func TestOrganization_ListDefaults(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `[]`)

	names, err := client.Organizations.List("clim", "")
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)

	req := rec.last(t)
	assert.Equal(t, "global", req.Query.Get("server"))
	assert.Equal(t, "clim", req.Query.Get("name"))
}

func TestOrganization_ListRejectsUnknownServer(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `[]`)

	_, err := client.Organizations.List("", core.Server("elsewhere"))
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	assert.Empty(t, rec.all())
}

func TestOrganization_Register(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `{"id":"org-1","name":"a","title":"B"}`)

	result, err := client.Organizations.Register(resources.OrganizationRequest{Name: "a", Title: "B"}, "")
	require.NoError(t, err)
	assert.Equal(t, core.Record{"id": "org-1", "name": "a", "title": "B"}, result)

	req := rec.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/organization", req.Path)
	assert.Equal(t, "local", req.Query.Get("server"))
	assert.Equal(t, map[string]any{"name": "a", "title": "B"}, req.JSON(t))
}

func TestOrganization_RegisterValidation(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `{}`)

	_, err := client.Organizations.Register(resources.OrganizationRequest{Name: "a"}, "")
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	assert.Contains(t, err.Error(), "title")
	assert.Empty(t, rec.all())
}

func TestOrganization_RegisterDuplicate(t *testing.T) {
	client, _ := newClient(t, http.StatusBadRequest, `{"detail":"Error creating organization: Group name already exists in database"}`)

	_, err := client.Organizations.Register(resources.OrganizationRequest{Name: "a", Title: "B"}, "")
	require.Error(t, err)
	assert.True(t, core.IsApiError(err))
	assert.Contains(t, err.Error(), "organization name already exists")
	assert.Contains(t, err.Error(), "error registering organization")
}

func TestOrganization_Delete(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `{"message":"Organization deleted successfully"}`)

	result, err := client.Organizations.Delete("my org", core.ServerPreCkan)
	require.NoError(t, err)
	assert.Equal(t, "Organization deleted successfully", result.Message())

	req := rec.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/organization/my%20org", req.Path)
	assert.Equal(t, "pre_ckan", req.Query.Get("server"))
}

func TestOrganization_DeleteNotFound(t *testing.T) {
	client, _ := newClient(t, http.StatusNotFound, `{"detail":"Organization not found"}`)

	_, err := client.Organizations.Delete("ghost", "")
	require.Error(t, err)
	assert.True(t, core.IsNotFoundErr(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestOrganization_DeleteRejectsDotSegments(t *testing.T) {
	client, rec := newClient(t, http.StatusOK, `{"message":"deleted"}`)

	for _, name := range []string{".", ".."} {
		_, err := client.Organizations.Delete(name, "")
		assert.True(t, core.IsValidationError(err), "name %q", name)
	}
	_, err := client.Resources.DeleteByID("..", "")
	assert.True(t, core.IsValidationError(err))
	assert.Empty(t, rec.all())

	_, err = client.Organizations.Delete("a..b", "")
	require.NoError(t, err)
	assert.Equal(t, "/organization/a..b", rec.last(t).Path)
}
