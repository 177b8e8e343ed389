package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/config"
	"weighttrack/internal/domain"
)

// newRootCmd builds the command tree. The returned func releases whatever
// the executed command opened and must run after Execute, even on error.
func newRootCmd() (*cobra.Command, func()) {
	cfg := config.Load()
	var svc *services

	root := &cobra.Command{
		Use:           "weighttrack",
		Short:         "Track body weight against a goal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			svc, err = wire(cmd.Context(), cfg)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Driver, "driver", cfg.Driver, "store driver: sqlite, mysql, postgres or memory")
	pf.StringVar(&cfg.DSN, "dsn", cfg.DSN, "store data source name")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	pf.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "emit JSON logs")
	pf.StringVar(&cfg.GoalRule, "goal-rule", cfg.GoalRule, "goal rule: exact or at-or-below")

	get := func() *services { return svc }
	root.AddCommand(
		newAccountCmd(get),
		newLoginCmd(get),
		newWeightCmd(get),
		newGoalCmd(get),
		newServeCmd(get, &cfg),
		newStatusCmd(get),
	)

	cleanup := func() {
		if svc != nil {
			svc.close()
			svc = nil
		}
	}
	return root, cleanup
}

type credentialFlags struct {
	username string
	password string
}

func (c *credentialFlags) bind(cmd *cobra.Command, persistent bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	fs.StringVarP(&c.username, "username", "u", "", "account username")
	fs.StringVarP(&c.password, "password", "p", "", "account password")
}

// login resolves the credentials to a user or fails the command.
func (c *credentialFlags) login(ctx context.Context, s *services) (*domain.User, error) {
	user, err := s.accounts.Login(ctx, c.username, c.password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return nil, errors.New("invalid username or password")
	}
	return user, err
}

func newAccountCmd(get func() *services) *cobra.Command {
	cmd := &cobra.Command{Use: "account", Short: "Manage accounts"}

	var creds credentialFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := get().accounts.CreateAccount(cmd.Context(), creds.username, creds.password)
			if errors.Is(err, domain.ErrUsernameTaken) {
				return fmt.Errorf("username %q already exists", creds.username)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account %q created (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	creds.bind(create, false)
	cmd.AddCommand(create)
	return cmd
}

func newLoginCmd(get func() *services) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print the user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := creds.login(cmd.Context(), get())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	creds.bind(cmd, false)
	return cmd
}

func newWeightCmd(get func() *services) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{Use: "weight", Short: "Record and edit weight entries"}
	creds.bind(cmd, true)

	var value float64
	var day string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			user, err := creds.login(cmd.Context(), s)
			if err != nil {
				return err
			}
			if day == "" {
				day = s.weights.Today()
			}
			res, err := s.weights.RecordWeightOn(cmd.Context(), user.ID, day, value)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "recorded %.1f on %s (entry %d)\n", res.Entry.Value, res.Entry.Day, res.Entry.ID)
			if res.GoalReached {
				fmt.Fprintln(out, domain.GoalMessage)
			}
			return nil
		},
	}
	add.Flags().Float64Var(&value, "weight", 0, "weight value")
	add.Flags().StringVar(&day, "date", "", "entry date (YYYY-MM-DD), defaults to today")
	_ = add.MarkFlagRequired("weight")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the ten most recent entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			user, err := creds.login(cmd.Context(), s)
			if err != nil {
				return err
			}
			items, err := s.weights.ListRecent(cmd.Context(), user.ID, domain.RecentLimit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Date", "Weight"})
			for _, e := range items {
				t.AppendRow(table.Row{e.ID, e.Day, strconv.FormatFloat(e.Value, 'f', 1, 64)})
			}
			t.Render()
			return nil
		},
	}

	var id int64
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change the weight of an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			user, err := creds.login(cmd.Context(), s)
			if err != nil {
				return err
			}
			if err := s.weights.UpdateOwnWeight(cmd.Context(), user.ID, id, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "entry %d updated\n", id)
			return nil
		},
	}
	edit.Flags().Int64Var(&id, "id", 0, "entry id")
	edit.Flags().Float64Var(&value, "weight", 0, "new weight value")
	_ = edit.MarkFlagRequired("id")
	_ = edit.MarkFlagRequired("weight")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			user, err := creds.login(cmd.Context(), s)
			if err != nil {
				return err
			}
			if err := s.weights.DeleteOwnWeight(cmd.Context(), user.ID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "entry %d deleted\n", id)
			return nil
		},
	}
	del.Flags().Int64Var(&id, "id", 0, "entry id")
	_ = del.MarkFlagRequired("id")

	cmd.AddCommand(add, list, edit, del)
	return cmd
}

func newGoalCmd(get func() *services) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{Use: "goal", Short: "Set or show the goal weight"}
	creds.bind(cmd, true)

	var goal float64
	set := &cobra.Command{
		Use:   "set",
		Short: "Set the goal weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			user, err := creds.login(cmd.Context(), s)
			if err != nil {
				return err
			}
			if err := s.goals.SetGoal(cmd.Context(), user.ID, goal); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "goal set to %.1f\n", goal)
			return nil
		},
	}
	set.Flags().Float64Var(&goal, "weight", 0, "goal weight")
	_ = set.MarkFlagRequired("weight")

	show := &cobra.Command{
		Use:   "get",
		Short: "Show the goal weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			user, err := creds.login(cmd.Context(), s)
			if err != nil {
				return err
			}
			g, err := s.goals.Goal(cmd.Context(), user.ID)
			if errors.Is(err, domain.ErrGoalNotSet) {
				fmt.Fprintln(cmd.OutOrStdout(), "no goal set")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "goal: %.1f\n", g)
			return nil
		},
	}

	cmd.AddCommand(set, show)
	return cmd
}

func newServeCmd(get func() *services, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			h := adapthttp.New(s.accounts, s.weights, s.goals, s.log).Handler()
			srv := &http.Server{
				Addr:              s.cfg.Addr,
				Handler:           h,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				s.log.Info("listening", zap.String("addr", srv.Addr), zap.String("driver", s.store.Driver()))
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.log.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	return cmd
}

func newStatusCmd(get func() *services) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store driver, schema version and account count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get()
			ctx := cmd.Context()
			n, err := s.accounts.Count(ctx)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendRow(table.Row{"driver", s.store.Driver()})
			if v, ok := s.store.(versioned); ok {
				ver, err := v.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{"schema version", ver})
			}
			t.AppendRow(table.Row{"accounts", n})
			t.Render()
			return nil
		},
	}
}
