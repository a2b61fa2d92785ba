package handlers

import (
	"github.com/valyala/fasthttp"
)

// Root answers the bare service banner.
func Root() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		jsonResponse(ctx, map[string]any{"message": "apimon backend running"})
	}
}

// TestDatabase is a connectivity probe: it reports backend and database
// status plus the table names. It never fails; store errors are captured
// into the response text instead of surfacing as a 5xx.
func TestDatabase(st Store) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		info := map[string]any{
			"backend":     "running",
			"database":    "not available",
			"collections": []string{},
		}

		if err := st.Ping(); err != nil {
			info["database"] = truncate(err.Error(), 80)
			jsonResponse(ctx, info)
			return
		}

		info["database"] = "connected"
		if tables, err := st.Tables(); err == nil {
			info["collections"] = tables
		} else {
			info["database"] = truncate(err.Error(), 80)
		}
		jsonResponse(ctx, info)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
