package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"apimon/internal/store"
)

const listKeysLimit = 100

type createKeyRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

func (r *createKeyRequest) Validate() error {
	if strings.TrimSpace(r.ProjectID) == "" {
		return errors.New("project_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreateAPIKey issues a new key for an existing project. The response is
// the only place the plaintext key value is ever returned.
func CreateAPIKey(st Store) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload createKeyRequest
		if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := payload.Validate(); err != nil {
			errResponse(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
			return
		}

		projectID, err := uuid.Parse(payload.ProjectID)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid project id")
			return
		}

		if _, err := st.GetProjectByID(projectID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				errResponse(ctx, fasthttp.StatusNotFound, "project not found")
				return
			}
			errResponse(ctx, fasthttp.StatusInternalServerError, "database error")
			return
		}

		key, err := store.GenerateKey()
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to generate API key")
			return
		}

		apiKey := &store.APIKey{
			ProjectID: projectID.String(),
			Name:      payload.Name,
			Key:       key,
			Active:    true,
		}
		if err := st.CreateAPIKey(apiKey); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to create API key")
			return
		}

		jsonResponse(ctx, map[string]any{"id": apiKey.ID.String(), "key": key})
	}
}

// ListAPIKeys returns up to 100 keys for the project id given as a query
// parameter, matched as an exact string. Key values are never included.
func ListAPIKeys(st Store) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		projectID := string(ctx.QueryArgs().Peek("project_id"))

		keys, err := st.ListAPIKeys(projectID, listKeysLimit)
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to list API keys")
			return
		}
		if keys == nil {
			keys = []store.APIKey{}
		}
		jsonResponse(ctx, keys)
	}
}
