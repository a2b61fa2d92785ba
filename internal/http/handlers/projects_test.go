package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestCreateProjectThenList(t *testing.T) {
	st := &fakeStore{}

	body := []byte(`{"name":"Checkout","slug":"checkout","description":"payment APIs"}`)
	ctx := doRequest(CreateProject(st), "POST", "/api/projects", body, nil)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &created))
	assert.NotEmpty(t, created.ID)

	ctx = doRequest(ListProjects(st), "GET", "/api/projects", nil, nil)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var projects []struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Slug        string  `json:"slug"`
		Description *string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, created.ID, projects[0].ID)
	assert.Equal(t, "Checkout", projects[0].Name)
	assert.Equal(t, "checkout", projects[0].Slug)
	require.NotNil(t, projects[0].Description)
	assert.Equal(t, "payment APIs", *projects[0].Description)
}

func TestCreateProjectValidation(t *testing.T) {
	st := &fakeStore{}

	ctx := doRequest(CreateProject(st), "POST", "/api/projects", []byte(`{"name":"No Slug"}`), nil)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	ctx = doRequest(CreateProject(st), "POST", "/api/projects", []byte(`{"slug":"no-name"}`), nil)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	ctx = doRequest(CreateProject(st), "POST", "/api/projects", []byte(`not json`), nil)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	assert.Empty(t, st.projects)
}

func TestCreateProjectAllowsDuplicateSlugs(t *testing.T) {
	st := &fakeStore{}

	for i := 0; i < 2; i++ {
		ctx := doRequest(CreateProject(st), "POST", "/api/projects", []byte(`{"name":"Dup","slug":"dup"}`), nil)
		require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	}
	assert.Len(t, st.projects, 2)
}

func TestListProjectsEmptyIsArray(t *testing.T) {
	ctx := doRequest(ListProjects(&fakeStore{}), "GET", "/api/projects", nil, nil)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `[]`, string(ctx.Response.Body()))
}
