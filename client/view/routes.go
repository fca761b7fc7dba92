package view

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// Screen names.
const (
	ScreenHome     = "home"
	ScreenLogin    = "login"
	ScreenSignup   = "signup"
	ScreenTask     = "task"
	ScreenNotFound = "not_found"
)

const screenKey = "screen"

// Route is a resolved client path.
type Route struct {
	Screen string
	// TaskID is empty for a new task.
	TaskID string
}

// Protected reports whether the route needs a logged-in user.
func (r Route) Protected() bool {
	return r.Screen == ScreenTask
}

// routeTable resolves client paths with the same matcher the server uses.
type routeTable struct {
	r *router.Router
}

func newRouteTable() *routeTable {
	r := router.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	mark := func(screen string) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) { ctx.SetUserValue(screenKey, screen) }
	}
	r.GET("/", mark(ScreenHome))
	r.GET("/login", mark(ScreenLogin))
	r.GET("/signup", mark(ScreenSignup))
	r.GET("/tasks/{id}", mark(ScreenTask))
	r.NotFound = mark(ScreenNotFound)

	return &routeTable{r: r}
}

func (t *routeTable) match(path string) Route {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI(path)
	t.r.Handler(&ctx)

	screen, _ := ctx.UserValue(screenKey).(string)
	if screen == "" {
		screen = ScreenNotFound
	}
	route := Route{Screen: screen}
	if screen == ScreenTask {
		if id, _ := ctx.UserValue("id").(string); id != "add" {
			route.TaskID = id
		}
	}
	return route
}
