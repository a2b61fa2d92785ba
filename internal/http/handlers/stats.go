package handlers

import (
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// ProjectStats returns aggregate counters for one project. The id must be
// well-formed, but the project is not required to exist: a well-formed
// unknown id yields zero-valued stats rather than a 404.
func ProjectStats(st Store) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		raw, _ := ctx.UserValue("project_id").(string)
		projectID, err := uuid.Parse(raw)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid project id")
			return
		}

		stats, err := st.Stats(projectID.String())
		if err != nil {
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to query stats")
			return
		}
		jsonResponse(ctx, stats)
	}
}
