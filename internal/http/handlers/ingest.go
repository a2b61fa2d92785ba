package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/datatypes"

	"apimon/internal/store"
)

var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "OPTIONS": true, "HEAD": true,
}

type ingestRequest struct {
	ProjectSlug  string         `json:"project_slug"`
	APIKey       string         `json:"api_key"`
	Method       string         `json:"method"`
	Path         string         `json:"path"`
	Status       int            `json:"status"`
	LatencyMs    float64        `json:"latency_ms"`
	IP           *string        `json:"ip"`
	UserAgent    *string        `json:"user_agent"`
	RequestSize  *int64         `json:"request_size"`
	ResponseSize *int64         `json:"response_size"`
	ErrorMessage *string        `json:"error_message"`
	Attributes   map[string]any `json:"attributes"`
}

// Validate checks field-level constraints only; project and key resolution
// happen before this is called.
func (r *ingestRequest) Validate() error {
	if !validMethods[r.Method] {
		return fmt.Errorf("invalid method %q", r.Method)
	}
	if r.Status < 100 || r.Status > 599 {
		return fmt.Errorf("status must be between 100 and 599, got %d", r.Status)
	}
	if r.LatencyMs < 0 {
		return errors.New("latency_ms must be non-negative")
	}
	if r.RequestSize != nil && *r.RequestSize < 0 {
		return errors.New("request_size must be non-negative")
	}
	if r.ResponseSize != nil && *r.ResponseSize < 0 {
		return errors.New("response_size must be non-negative")
	}
	return nil
}

// Ingest accepts one request-telemetry event. The project is resolved from
// the submitted slug; the optional api_key only associates when it matches
// an active key on that same project, otherwise the event is still
// ingested without a key association.
func Ingest(st Store) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload ingestRequest
		if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		proj, err := st.GetProjectBySlug(payload.ProjectSlug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				errResponse(ctx, fasthttp.StatusNotFound, "project not found")
				return
			}
			errResponse(ctx, fasthttp.StatusInternalServerError, "database error")
			return
		}

		var apiKeyID *string
		if payload.APIKey != "" {
			key, err := st.FindActiveKey(payload.APIKey, proj.ID.String())
			switch {
			case err == nil:
				id := key.ID.String()
				apiKeyID = &id
			case errors.Is(err, store.ErrNotFound):
				// Not an authentication gate: an unknown or cross-project
				// key leaves the event unassociated.
			default:
				errResponse(ctx, fasthttp.StatusInternalServerError, "database error")
				return
			}
		}

		ip := resolveIP(payload.IP, ctx.Request.Header.Peek("X-Forwarded-For"))
		ua := resolveUserAgent(payload.UserAgent, ctx.Request.Header.UserAgent())

		if err := payload.Validate(); err != nil {
			errResponse(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
			return
		}

		var attrs datatypes.JSONMap
		if len(payload.Attributes) > 0 {
			attrs = datatypes.JSONMap{}
			for k, v := range payload.Attributes {
				attrs[k] = v
			}
		}

		event := &store.Event{
			ProjectID:    proj.ID.String(),
			APIKeyID:     apiKeyID,
			Method:       payload.Method,
			Path:         payload.Path,
			Status:       payload.Status,
			LatencyMs:    payload.LatencyMs,
			IP:           ip,
			UserAgent:    ua,
			RequestSize:  payload.RequestSize,
			ResponseSize: payload.ResponseSize,
			ErrorMessage: payload.ErrorMessage,
			Attributes:   attrs,
			CreatedAt:    time.Now().UTC(),
		}
		if err := st.InsertEvent(event); err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to persist event")
			return
		}

		observeEvent(proj.Slug, payload.Method, payload.Status, payload.LatencyMs)

		jsonResponse(ctx, map[string]any{"id": event.ID.String()})
	}
}

// resolveIP prefers the explicit payload field, then the first entry of
// the forwarded-for header, then nothing.
func resolveIP(explicit *string, forwardedFor []byte) *string {
	if explicit != nil && *explicit != "" {
		return explicit
	}
	if len(forwardedFor) > 0 {
		first := strings.TrimSpace(strings.SplitN(string(forwardedFor), ",", 2)[0])
		if first != "" {
			return &first
		}
	}
	return nil
}

// resolveUserAgent prefers the explicit payload field over the request header.
func resolveUserAgent(explicit *string, header []byte) *string {
	if explicit != nil && *explicit != "" {
		return explicit
	}
	if len(header) > 0 {
		ua := string(header)
		return &ua
	}
	return nil
}
