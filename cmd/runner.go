package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nobarhq/nobarctl/internal/api"
	"github.com/nobarhq/nobarctl/internal/auth"
	"github.com/nobarhq/nobarctl/internal/guard"
	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
	"github.com/nobarhq/nobarctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	store      *session.Store
	client     *api.Client
	controller *auth.Controller
	engine     *tasks.Engine
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Store      *session.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Store == nil {
		opts.Store = session.NewStore(session.NewMemoryStorage(), opts.Logger)
	}
	if opts.HTTPClient == nil && opts.Config.API.TimeoutSeconds > 0 {
		opts.HTTPClient = &http.Client{Timeout: time.Duration(opts.Config.API.TimeoutSeconds) * time.Second}
	}

	client := api.NewClient(api.ClientOpts{
		BaseURL:    opts.Config.API.BaseURL,
		HTTPClient: opts.HTTPClient,
		Store:      opts.Store,
		RateLimit:  opts.Config.API.RateLimit,
		Logger:     opts.Logger,
	})

	return &Runner{
		config:     opts.Config,
		store:      opts.Store,
		client:     client,
		controller: auth.NewController(client, opts.Store, opts.Logger),
		engine:     tasks.NewEngine(client, opts.Logger),
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, favoritesCommand, tayanganCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger (used when the TUI takes over the
// terminal).
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// requireSession settles the session via bootstrap and applies the route
// guard. Protected commands call this before issuing any authorized
// request; an unauthenticated session prints the login hint and stops the
// command without a single network call to a protected endpoint.
func (r *Runner) requireSession(ctx context.Context) error {
	if err := r.controller.Bootstrap(ctx); err != nil {
		return err
	}

	nav := guard.NavigatorFunc(func(path string) error {
		return r.writePlain("Not logged in. Run `nobarctl auth login` first.\n")
	})

	if guard.New(r.store, nav, r.logger).Check() != guard.DecisionAllow {
		return shared.ErrNotAuthenticated
	}

	return nil
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
