package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/valyala/fasthttp"

	"apimon/internal/store"
)

const listProjectsLimit = 50

type createProjectRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

func (r *createProjectRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Slug) == "" {
		return errors.New("slug is required")
	}
	return nil
}

// CreateProject registers a new project and returns its generated id.
// Slug uniqueness is intentionally not enforced; ingest resolves duplicate
// slugs to the most recently created project.
func CreateProject(st Store) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload createProjectRequest
		if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := payload.Validate(); err != nil {
			errResponse(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
			return
		}

		p := &store.Project{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
		}
		if err := st.CreateProject(p); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create project")
			return
		}

		jsonResponse(ctx, map[string]any{"id": p.ID.String()})
	}
}

// ListProjects returns up to 50 projects, ids rendered as plain strings.
func ListProjects(st Store) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		projects, err := st.ListProjects(listProjectsLimit)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to list projects")
			return
		}
		if projects == nil {
			projects = []store.Project{}
		}
		jsonResponse(ctx, projects)
	}
}
