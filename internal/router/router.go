package router

import (
	"bytes"
	"net/http"
	"path/filepath"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/pprofhandler"

	apiHandler "github.com/fastygo/taskboard/api/handler"
	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/internal/metrics"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

// Options toggles the optional surfaces.
type Options struct {
	// Metrics instruments every route and exposes /metrics when set.
	Metrics     *metrics.Metrics
	EnablePprof bool
	// StaticDir serves a prebuilt client with an index.html fallback when set.
	StaticDir string
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler, opts Options) *router.Router {
	r := router.New()
	m := opts.Metrics

	handle := func(method, path string, h fasthttp.RequestHandler) {
		r.Handle(method, path, m.Instrument(path, h))
	}

	handle(fasthttp.MethodGet, "/health", handlers.Health.Check)

	// Auth routes
	handle(fasthttp.MethodPost, "/api/auth/signup", handlers.Auth.Signup)
	handle(fasthttp.MethodPost, "/api/auth/login", handlers.Auth.Login)

	// Protected routes
	handle(fasthttp.MethodGet, "/api/profile", authMiddleware(handlers.Profile.GetProfile))

	handle(fasthttp.MethodGet, "/api/tasks", authMiddleware(handlers.Task.GetTasks))
	handle(fasthttp.MethodPost, "/api/tasks", authMiddleware(handlers.Task.CreateTask))
	handle(fasthttp.MethodGet, "/api/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	handle(fasthttp.MethodPut, "/api/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	handle(fasthttp.MethodDelete, "/api/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	if m != nil {
		r.GET("/metrics", m.Handler())
	}
	if opts.EnablePprof {
		r.GET("/debug/pprof/{profile:*}", pprofhandler.PprofHandler)
	}

	r.NotFound = notFound(opts.StaticDir)
	return r
}

var apiPrefix = []byte("/api/")

func notFound(staticDir string) fasthttp.RequestHandler {
	apiNotFound := func(ctx *fasthttp.RequestCtx) {
		apiHandler.RespondJSON(ctx, http.StatusNotFound, transport.NewError("Route not found"))
	}
	if staticDir == "" {
		return apiNotFound
	}

	index := filepath.Join(staticDir, "index.html")
	fs := &fasthttp.FS{
		Root:               staticDir,
		IndexNames:         []string{"index.html"},
		Compress:           true,
		AcceptByteRange:    true,
		PathNotFound:       func(ctx *fasthttp.RequestCtx) { ctx.SendFile(index) },
		GenerateIndexPages: false,
	}
	static := fs.NewRequestHandler()

	return func(ctx *fasthttp.RequestCtx) {
		if bytes.HasPrefix(ctx.Path(), apiPrefix) || !ctx.IsGet() {
			apiNotFound(ctx)
			return
		}
		static(ctx)
	}
}
