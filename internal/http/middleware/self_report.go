package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"apimon/internal/config"
)

// SelfReporting feeds this instance's own request telemetry back through
// its ingest pipeline, against the project slug from config. If
// APP_SELF_REPORT_SLUG is not set, this middleware does nothing.
func SelfReporting(cfg *config.Config, ingestURL string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if cfg.SelfReportSlug == "" {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return next
		}
	}

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)
			duration := time.Since(start)

			path := string(ctx.Path())
			if path == "/ingest" || path == "/metrics" || path == "/healthz" {
				return
			}

			status := ctx.Response.StatusCode()
			method := string(ctx.Method())
			remoteAddr := ctx.RemoteAddr().String()

			go func() {
				event := map[string]any{
					"project_slug": cfg.SelfReportSlug,
					"method":       method,
					"path":         path,
					"status":       status,
					"latency_ms":   float64(duration.Microseconds()) / 1000.0,
					"ip":           remoteAddr,
					"attributes": map[string]any{
						"source": "self-report",
					},
				}
				if cfg.SelfReportAPIKey != "" {
					event["api_key"] = cfg.SelfReportAPIKey
				}
				body, _ := json.Marshal(event)
				req, _ := http.NewRequest("POST", ingestURL, bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				client := &http.Client{Timeout: 2 * time.Second}
				_, _ = client.Do(req)
			}()
		}
	}
}
