package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/client/gateway"
	"github.com/fastygo/taskboard/client/store"
	"github.com/fastygo/taskboard/client/view"
)

type cliNotifier struct {
	w io.Writer
}

func (n cliNotifier) Success(msg string) { fmt.Fprintf(n.w, "ok: %s\n", msg) }
func (n cliNotifier) Error(msg string)   { fmt.Fprintf(n.w, "error: %s\n", msg) }

type cli struct {
	server    string
	tokenFile string
	timeout   time.Duration
	timezone  string

	session *store.Session
	app     *view.App
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".taskboard-token"
	}
	return filepath.Join(dir, "taskboard", "token")
}

// apiBaseURL mounts the API prefix on a server address. An address that already
// ends in /api is kept.
func apiBaseURL(server string) string {
	base := strings.TrimRight(server, "/")
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Terminal client for the taskboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.server, "server", envOr("TASKBOARD_URL", "http://localhost:8080"), "server address, the API is served under /api")
	flags.StringVar(&c.tokenFile, "token-file", envOr("TASKBOARD_TOKEN_FILE", defaultTokenFile()), "where the session token is kept")
	flags.DurationVar(&c.timeout, "timeout", 10*time.Second, "request timeout")
	flags.StringVar(&c.timezone, "timezone", envOr("APP_TIMEZONE", "UTC"), "zone used to show due dates")

	root.AddCommand(
		c.signupCommand(),
		c.loginCommand(),
		c.logoutCommand(),
		c.profileCommand(),
		c.tasksCommand(),
		c.openCommand(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	loc, err := time.LoadLocation(c.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.timezone, err)
	}

	api := gateway.New(apiBaseURL(c.server), gateway.WithTimeout(c.timeout))
	notify := cliNotifier{w: cmd.ErrOrStderr()}
	c.session = store.NewSession(store.New(store.State{}), api, store.NewFileTokens(c.tokenFile), notify)
	c.session.Restore(cmd.Context())
	c.app = view.NewApp(api, c.session, cmd.OutOrStdout(), notify, view.WithLocation(loc))
	return nil
}

func (c *cli) signupCommand() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.SubmitSignup(cmd.Context(), name, email, password)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 4 characters")
	return cmd
}

func (c *cli) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.SubmitLogin(cmd.Context(), email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Logout(cmd.Context())
		},
	}
}

func (c *cli) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := c.session.Store().State()
			if !state.IsLoggedIn {
				return view.ErrLoginRequired
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id: %s\nname: %s\nemail: %s\n", state.Account.ID, state.Account.Name, state.Account.Email)
			if !state.Account.CreatedAt.IsZero() {
				fmt.Fprintf(out, "joined: %s\n", state.Account.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func (c *cli) tasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Navigate(cmd.Context(), "/")
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks with their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Navigate(cmd.Context(), "/")
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Navigate(cmd.Context(), "/tasks/"+args[0])
		},
	}

	var form view.TaskForm
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.SubmitTask(cmd.Context(), "", form)
		},
	}
	taskFlags(add, &form)

	var editForm view.TaskForm
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.SubmitTask(cmd.Context(), args[0], editForm)
		},
	}
	taskFlags(edit, &editForm)

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.DeleteTask(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, show, add, edit, del)
	return cmd
}

func taskFlags(cmd *cobra.Command, form *view.TaskForm) {
	cmd.Flags().StringVar(&form.Description, "description", "", "what needs doing, up to 100 characters")
	cmd.Flags().StringVar(&form.DueDate, "date", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.DueTime, "time", "", "due time, HH:MM")
	cmd.Flags().StringVar(&form.Priority, "priority", "", "Low, Medium or High")
}

func (c *cli) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Render the screen at a client path such as / or /tasks/add",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Navigate(cmd.Context(), args[0])
		},
	}
}
