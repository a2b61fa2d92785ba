package main

import (
	"log"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"apimon/internal/config"
	"apimon/internal/http/handlers"
	appmw "apimon/internal/http/middleware"
	"apimon/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	st, err := store.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	handlers.InitPrometheusMetrics()

	r := router.New()

	ingestURL := "http://localhost" + cfg.ListenAddr + "/ingest"
	if cfg.ListenAddr != "" && cfg.ListenAddr[0] != ':' {
		ingestURL = "http://" + cfg.ListenAddr + "/ingest"
	}

	// Global middleware chain: request logger, then CORS, then
	// self-reporting, then router.
	handler := handlers.RequestLogger(appmw.CORS(appmw.SelfReporting(cfg, ingestURL)(r.Handler)))

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})

	r.GET("/", handlers.Root())
	r.GET("/test", handlers.TestDatabase(st))

	r.POST("/api/projects", handlers.CreateProject(st))
	r.GET("/api/projects", handlers.ListProjects(st))

	r.POST("/api/keys", handlers.CreateAPIKey(st))
	r.GET("/api/keys", handlers.ListAPIKeys(st))

	r.POST("/ingest", handlers.Ingest(st))

	r.GET("/api/projects/{project_id}/stats", handlers.ProjectStats(st))

	r.GET("/metrics", handlers.PrometheusMetrics())

	log.Printf("apimon listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
