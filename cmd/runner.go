package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/recipes/internal/repositories"
	"github.com/desertthunder/recipes/internal/server"
	"github.com/desertthunder/recipes/internal/services"
	"github.com/desertthunder/recipes/internal/session"
	"github.com/desertthunder/recipes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config        *shared.Config
	resolveConfig bool
	session       *session.Session
	api           *services.APIService
	client        services.RecipeClient
	db            *sql.DB
	logger        *log.Logger
	output        io.Writer
	login         func(ctx context.Context, prompt func(string)) (string, error)
	open          func(url string) error
	getenv        func(string) string
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Dependencies left nil are built from the configuration in [Runner.Before].
type RunnerOpts struct {
	Config  *shared.Config
	Session *session.Session
	API     *services.APIService
	Client  services.RecipeClient
	Logger  *log.Logger
	Output  io.Writer
	// Login runs an interactive sign-in and returns an ID token. prompt, when
	// set, receives the consent URL. Defaults to the Google loopback flow.
	Login  func(ctx context.Context, prompt func(string)) (string, error)
	Open   func(url string) error
	Getenv func(string) string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	r := &Runner{
		config:        opts.Config,
		resolveConfig: opts.Config == nil,
		session:       opts.Session,
		api:           opts.API,
		client:        opts.Client,
		logger:        opts.Logger,
		output:        opts.Output,
		login:         opts.Login,
		open:          opts.Open,
		getenv:        opts.Getenv,
	}

	if r.config == nil {
		r.config = shared.DefaultConfig()
	}
	if r.logger == nil {
		r.logger = shared.NewLogger(nil)
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.open == nil {
		r.open = shared.OpenBrowser
	}
	if r.getenv == nil {
		r.getenv = os.Getenv
	}
	if r.login == nil {
		r.login = r.googleLogin
	}
	return r
}

// App returns the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "recipes",
		Usage:   "Summarize recipes from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars(shared.EnvConfig),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.Before,
		After:    r.After,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, showCommand, recentCommand, favoritesCommand, searchCommand,
		openCommand, shareCommand, hitCommand, apiCommand, authCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration and builds the session and backend client.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if r.resolveConfig {
		config, err := shared.ResolveConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	if r.session == nil {
		s, err := r.openSession(ctx)
		if err != nil {
			return ctx, err
		}
		r.session = s
	}
	r.session.OnReset(func(reason string) {
		if reason == logoutReason {
			return
		}
		r.logger.Warn("signed out", "reason", reason, "hint", "run `recipes auth login`")
	})

	if r.api == nil {
		r.api = services.NewAPIService(services.APIOpts{
			BaseURL: r.config.API.BaseURL,
			Client:  services.NewHTTPClient(r.config.API.Timeout()),
			Auth:    r.session,
			Logger:  r.logger,
		})
	}
	if r.client == nil {
		r.client = services.NewRecipeService(r.api)
	}
	return ctx, nil
}

// After releases the database.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// openSession restores the persisted session. A token in RECIPES_TOKEN takes
// precedence and is kept in memory only.
func (r *Runner) openSession(ctx context.Context) (*session.Session, error) {
	if token := r.getenv(shared.EnvToken); token != "" {
		s := session.New(nil)
		if _, err := s.Login(ctx, token); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", shared.EnvToken, err)
		}
		return s, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db

	s := session.New(repositories.NewSessionRepository(db))
	if err := s.Restore(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// googleLogin runs the loopback OAuth flow configured in [auth].
func (r *Runner) googleLogin(ctx context.Context, prompt func(string)) (string, error) {
	if !r.config.Auth.Configured() {
		return "", fmt.Errorf("%w: set client_id and client_secret under [auth] in your config", shared.ErrMissingCredentials)
	}

	flow := &server.LoginFlow{
		Config: server.GoogleConfig(r.config.Auth),
		Open:   r.open,
		Prompt: prompt,
		Logger: r.logger,
	}
	return flow.Run(ctx)
}

// SetLogger replaces the logger used by the runner and the backend client.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if r.api != nil {
		r.api.SetLogger(l)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(b []byte) error {
	if _, err := r.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
