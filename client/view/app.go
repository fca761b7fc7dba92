package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/client/store"
)

// ErrLoginRequired is returned by actions that need a session when there is none.
var ErrLoginRequired = errors.New("login required")

// API is the gateway surface used by the screens.
type API interface {
	store.AuthAPI
	Signup(ctx context.Context, req transport.SignupRequest) (*transport.StatusResponse, error)
	ListTasks(ctx context.Context, token string) (*transport.TaskListResponse, error)
	GetTask(ctx context.Context, token, id string) (*transport.TaskResponse, error)
	CreateTask(ctx context.Context, token string, req transport.TaskRequest) (*transport.TaskResponse, error)
	UpdateTask(ctx context.Context, token, id string, req transport.TaskRequest) (*transport.TaskResponse, error)
	DeleteTask(ctx context.Context, token, id string) (*transport.StatusResponse, error)
}

// TaskForm is the task editor input.
type TaskForm struct {
	Description string
	DueDate     string
	DueTime     string
	Priority    string
}

type Option func(*App)

// WithClock overrides the time source used for task statuses.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLocation sets the zone dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(a *App) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// App is the client shell: it resolves paths, guards protected screens and renders
// them to out.
type App struct {
	api     API
	session *store.Session
	out     io.Writer
	routes  *routeTable
	now     func() time.Time
	loc     *time.Location

	path     string
	redirect string

	tasks  *store.Fetcher[transport.TaskListResponse]
	task   *store.Fetcher[transport.TaskResponse]
	status *store.Fetcher[transport.StatusResponse]
}

func NewApp(api API, session *store.Session, out io.Writer, notify store.Notifier, opts ...Option) *App {
	a := &App{
		api:     api,
		session: session,
		out:     out,
		routes:  newRouteTable(),
		now:     time.Now,
		loc:     time.UTC,
		path:    "/",
		tasks:   store.NewFetcher[transport.TaskListResponse](notify),
		task:    store.NewFetcher[transport.TaskResponse](notify),
		status:  store.NewFetcher[transport.StatusResponse](notify),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Path is the location of the screen rendered last.
func (a *App) Path() string {
	return a.path
}

// RedirectURL is where a successful login will land.
func (a *App) RedirectURL() string {
	return a.redirect
}

// Navigate resolves path and renders the screen it leads to.
func (a *App) Navigate(ctx context.Context, path string) error {
	route := a.routes.match(path)
	state := a.session.Store().State()

	if route.Protected() && !state.IsLoggedIn {
		a.redirect = path
		a.path = "/login"
		return a.render(func(b *strings.Builder) { a.loginScreen(b, state, nil) })
	}

	switch route.Screen {
	case ScreenLogin:
		if state.IsLoggedIn {
			return a.Navigate(ctx, a.takeRedirect())
		}
		a.path = path
		return a.render(func(b *strings.Builder) { a.loginScreen(b, state, nil) })
	case ScreenSignup:
		if state.IsLoggedIn {
			return a.Navigate(ctx, "/")
		}
		a.path = path
		return a.render(func(b *strings.Builder) { a.signupScreen(b, nil, "") })
	case ScreenHome:
		a.path = path
		return a.renderHome(ctx, state)
	case ScreenTask:
		a.path = path
		return a.renderTask(ctx, state, route.TaskID)
	default:
		a.path = path
		return a.render(notFoundScreen)
	}
}

// SubmitLogin validates the form, logs in and follows the pending redirect.
func (a *App) SubmitLogin(ctx context.Context, email, password string) error {
	if err := ValidateLogin(email, password); err != nil {
		var verr ValidationError
		errors.As(err, &verr)
		return a.renderErr(err, func(b *strings.Builder) {
			a.loginScreen(b, a.session.Store().State(), verr)
		})
	}
	if err := a.session.Login(ctx, email, password); err != nil {
		return a.renderErr(err, func(b *strings.Builder) {
			a.loginScreen(b, a.session.Store().State(), nil)
		})
	}
	return a.Navigate(ctx, a.takeRedirect())
}

// SubmitSignup validates the form, creates the account and moves to the login screen.
func (a *App) SubmitSignup(ctx context.Context, name, email, password string) error {
	if err := ValidateSignup(name, email, password); err != nil {
		var verr ValidationError
		errors.As(err, &verr)
		return a.renderErr(err, func(b *strings.Builder) { a.signupScreen(b, verr, "") })
	}

	req := transport.SignupRequest{Name: name, Email: email, Password: password}
	_, err := a.status.Fetch(ctx, func(ctx context.Context) (*transport.StatusResponse, error) {
		return a.api.Signup(ctx, req)
	}, statusMsg, store.FetchOptions{})
	if err != nil {
		msg := a.status.State().ErrorMsg
		return a.renderErr(err, func(b *strings.Builder) { a.signupScreen(b, nil, msg) })
	}
	return a.Navigate(ctx, "/login")
}

// SubmitTask creates a task when id is empty and updates it otherwise, then
// returns to the task list.
func (a *App) SubmitTask(ctx context.Context, id string, form TaskForm) error {
	state := a.session.Store().State()
	if !state.IsLoggedIn {
		_ = a.Navigate(ctx, editorPath(id))
		return ErrLoginRequired
	}
	if err := ValidateTask(form.Description); err != nil {
		var verr ValidationError
		errors.As(err, &verr)
		return a.renderErr(err, func(b *strings.Builder) { a.editorScreen(b, id, form, verr) })
	}

	req := transport.TaskRequest{
		Description: form.Description,
		DueDate:     form.DueDate,
		DueTime:     form.DueTime,
		Priority:    form.Priority,
	}
	_, err := a.task.Fetch(ctx, func(ctx context.Context) (*transport.TaskResponse, error) {
		if id == "" {
			return a.api.CreateTask(ctx, state.Token, req)
		}
		return a.api.UpdateTask(ctx, state.Token, id, req)
	}, taskMsg, store.FetchOptions{})
	if err != nil {
		return a.renderErr(err, func(b *strings.Builder) { a.editorScreen(b, id, form, nil) })
	}
	return a.Navigate(ctx, "/")
}

// DeleteTask removes a task and re-renders the list.
func (a *App) DeleteTask(ctx context.Context, id string) error {
	state := a.session.Store().State()
	if !state.IsLoggedIn {
		_ = a.Navigate(ctx, "/login")
		return ErrLoginRequired
	}
	_, err := a.status.Fetch(ctx, func(ctx context.Context) (*transport.StatusResponse, error) {
		return a.api.DeleteTask(ctx, state.Token, id)
	}, statusMsg, store.FetchOptions{})
	if err != nil {
		return err
	}
	return a.Navigate(ctx, "/")
}

// Logout ends the session and shows the home screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	return a.Navigate(ctx, "/")
}

func (a *App) takeRedirect() string {
	target := a.redirect
	a.redirect = ""
	if target == "" {
		return "/"
	}
	return target
}

func (a *App) render(fn func(b *strings.Builder)) error {
	var b strings.Builder
	fn(&b)
	_, err := io.WriteString(a.out, b.String())
	return err
}

func (a *App) renderErr(cause error, fn func(b *strings.Builder)) error {
	if err := a.render(fn); err != nil {
		return err
	}
	return cause
}

func (a *App) renderHome(ctx context.Context, state store.State) error {
	if !state.IsLoggedIn {
		return a.render(welcomeScreen)
	}

	res, err := a.tasks.Fetch(ctx, func(ctx context.Context) (*transport.TaskListResponse, error) {
		return a.api.ListTasks(ctx, state.Token)
	}, nil, store.FetchOptions{HideSuccess: true})

	return a.render(func(b *strings.Builder) {
		fmt.Fprintf(b, "Welcome %s\n\n", state.Account.Name)
		if err != nil {
			fmt.Fprintf(b, "Error: %s\n", a.tasks.State().ErrorMsg)
			return
		}
		a.taskList(b, res.Tasks)
	})
}

func (a *App) renderTask(ctx context.Context, state store.State, id string) error {
	if id == "" {
		return a.render(func(b *strings.Builder) { a.editorScreen(b, "", TaskForm{}, nil) })
	}

	res, err := a.task.Fetch(ctx, func(ctx context.Context) (*transport.TaskResponse, error) {
		return a.api.GetTask(ctx, state.Token, id)
	}, nil, store.FetchOptions{HideSuccess: true})
	if err != nil {
		return a.render(func(b *strings.Builder) {
			fmt.Fprintf(b, "== Edit task ==\nError: %s\n", a.task.State().ErrorMsg)
		})
	}

	due := res.Task.DueDate.In(a.loc)
	form := TaskForm{
		Description: res.Task.Description,
		DueDate:     due.Format("2006-01-02"),
		DueTime:     due.Format("15:04"),
		Priority:    res.Task.Priority,
	}
	return a.render(func(b *strings.Builder) { a.editorScreen(b, id, form, nil) })
}

func (a *App) taskList(b *strings.Builder, tasks []transport.Task) {
	fmt.Fprintf(b, "Your tasks (%d)\n", len(tasks))
	if len(tasks) == 0 {
		b.WriteString("No tasks found\n")
		return
	}
	now := a.now().In(a.loc)
	for i, t := range tasks {
		due := t.DueDate.In(a.loc)
		fmt.Fprintf(b, "\nTask #%d [%s] %s\n", i+1, TaskStatus(due, now), t.ID)
		fmt.Fprintf(b, "  %s\n", t.Description)
		fmt.Fprintf(b, "  Priority: %s | Due: %s\n", t.Priority, due.Format("2006-01-02 15:04"))
	}
}

func (a *App) loginScreen(b *strings.Builder, state store.State, errs ValidationError) {
	b.WriteString("== Login ==\n")
	writeFieldErrors(b, errs, "email", "password")
	if state.ErrorMsg != "" && errs == nil {
		fmt.Fprintf(b, "Error: %s\n", state.ErrorMsg)
	}
	b.WriteString("Don't have an account? /signup\n")
}

func (a *App) signupScreen(b *strings.Builder, errs ValidationError, msg string) {
	b.WriteString("== Signup ==\n")
	writeFieldErrors(b, errs, "name", "email", "password")
	if msg != "" {
		fmt.Fprintf(b, "Error: %s\n", msg)
	}
	b.WriteString("Already have an account? /login\n")
}

func (a *App) editorScreen(b *strings.Builder, id string, form TaskForm, errs ValidationError) {
	if id == "" {
		b.WriteString("== Add task ==\n")
	} else {
		fmt.Fprintf(b, "== Edit task %s ==\n", id)
	}
	fmt.Fprintf(b, "description: %s\n", form.Description)
	fmt.Fprintf(b, "due date: %s\n", form.DueDate)
	fmt.Fprintf(b, "due time: %s\n", form.DueTime)
	fmt.Fprintf(b, "priority: %s\n", form.Priority)
	writeFieldErrors(b, errs, "description")
}

func welcomeScreen(b *strings.Builder) {
	b.WriteString("Welcome to Task Manager App\n")
	b.WriteString("Login to manage your tasks: /login\n")
}

func notFoundScreen(b *strings.Builder) {
	b.WriteString("404 Page not found\n")
	b.WriteString("Back to home: /\n")
}

func writeFieldErrors(b *strings.Builder, errs ValidationError, fields ...string) {
	for _, field := range fields {
		if msg := errs.Msg(field); msg != "" {
			fmt.Fprintf(b, "%s: %s\n", field, msg)
		}
	}
}

func editorPath(id string) string {
	if id == "" {
		return "/tasks/add"
	}
	return "/tasks/" + id
}

func statusMsg(r *transport.StatusResponse) string { return r.Msg }

func taskMsg(r *transport.TaskResponse) string { return r.Msg }
