// Package cli implements the folioadmin command line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folioadmin/folioadmin-go/internal/admin"
	"github.com/folioadmin/folioadmin-go/internal/client"
	"github.com/folioadmin/folioadmin-go/internal/config"
	"github.com/folioadmin/folioadmin-go/internal/localstore"
	"github.com/folioadmin/folioadmin-go/internal/logger"
	"github.com/folioadmin/folioadmin-go/internal/notify"
	"github.com/folioadmin/folioadmin-go/internal/session"
)

// app holds what every command needs once the root pre-run has finished.
type app struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer

	cfg      config.Client
	store    *localstore.SQLite
	client   *client.Client
	sessions *session.Holder
	deps     admin.Deps
}

// Execute runs the folioadmin command line with args. in is read for
// prompts; results go to out and notifications and logs to errOut.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	a := &app{in: bufio.NewReader(in), out: out, err: errOut}
	defer a.close()

	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	var (
		server  string
		storage string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "folioadmin",
		Short:         "Manage the projects shown on a portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.BackendURL = strings.TrimRight(server, "/")
			}
			if cmd.Flags().Changed("storage") {
				cfg.StoragePath = storage
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger.InitWriter(a.err, cfg.LogLevel, cfg.Env)
			return a.open(cfg)
		},
	}

	cmd.SetOut(a.out)
	cmd.SetErr(a.err)

	cmd.PersistentFlags().StringVar(&server, "server", "", "projects API base URL (overrides BACKEND_SERVER)")
	cmd.PersistentFlags().StringVar(&storage, "storage", "", "local storage file (overrides FOLIOADMIN_STORAGE)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	cmd.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newImageCmd(a),
		newShellCmd(a),
	)
	return cmd
}

func (a *app) open(cfg config.Client) error {
	store, err := localstore.OpenSQLite(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}

	a.cfg = cfg
	a.store = store
	a.client = client.New(cfg.BackendURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		client.WithLogger(logger.Component("client")),
	)
	a.sessions = session.NewHolder(store, logger.Component("session"))
	a.deps = admin.Deps{
		API:       a.client,
		Sessions:  a.sessions,
		Notifier:  notify.NewConsole(a.err, logger.Component("notify")),
		Navigator: admin.NavigatorFunc(a.navigate),
		Log:       logger.Component("admin"),
	}
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) navigate(route admin.Route) {
	if route == admin.RouteLogin {
		fmt.Fprintln(a.err, "run `folioadmin login` to sign in")
	}
	a.deps.Log.Debug().Str("route", string(route)).Msg("navigate")
}

// prompt writes label and reads one trimmed line of input.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
