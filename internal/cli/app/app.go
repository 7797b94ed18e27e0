// Package app wires the CLI together: one token store, one API client, one
// session and one router per process.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/flightdeck360/flightdeck/internal/cli/auth"
	"github.com/flightdeck360/flightdeck/internal/cli/client"
	"github.com/flightdeck360/flightdeck/internal/cli/router"
	"github.com/flightdeck360/flightdeck/internal/cli/session"
	"github.com/flightdeck360/flightdeck/internal/cli/views"
	"github.com/flightdeck360/flightdeck/internal/config"
)

// SessionExpiredMessage is printed when the backend rejects the stored token
const SessionExpiredMessage = "Your session has expired. Please log in again."

// Options configures New. Zero values select production defaults.
type Options struct {
	Config   *config.ClientConfig
	BaseURL  string
	Logger   zerolog.Logger
	Tokens   auth.TokenStore
	Prompter views.Prompter
	Prefs    views.Preferences
	Out      io.Writer
	Err      io.Writer
}

// App holds the long-lived CLI components
type App struct {
	Config  *config.ClientConfig
	Logger  zerolog.Logger
	Tokens  auth.TokenStore
	Client  *client.Client
	Session *session.Store
	Router  *router.Router
	Views   *views.Views
	Prompt  views.Prompter
	Out     io.Writer
	Err     io.Writer
}

// New builds every component and subscribes the router to auth loss
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Prompter == nil {
		opts.Prompter = views.NewTerminalPrompter()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = opts.Config.BaseURL("")
	}

	tokens := opts.Tokens
	if tokens == nil {
		var err error
		if tokens, err = OpenTokenStore(opts.Config.TokenStore, opts.Logger); err != nil {
			return nil, err
		}
	}

	a := &App{
		Config: opts.Config,
		Logger: opts.Logger,
		Tokens: tokens,
		Prompt: opts.Prompter,
		Out:    opts.Out,
		Err:    opts.Err,
	}

	a.Client = client.New(opts.BaseURL, tokens,
		client.WithTimeout(opts.Config.RequestTimeout),
		client.WithLogger(opts.Logger.With().Str("component", "api").Logger()),
	)
	a.Session = session.New(a.Client.Auth, tokens, opts.Logger.With().Str("component", "session").Logger())
	a.Router = router.New(a.Session, opts.Err, opts.Logger.With().Str("component", "router").Logger())
	a.Views = views.New(a.Client, a.Session, a.Router, opts.Prompter, opts.Prefs, opts.Out, opts.Logger)
	a.Views.Mount(a.Router)

	a.Client.OnAuthLost(a.authLost)

	return a, nil
}

// authLost runs after the client has dropped a rejected token
func (a *App) authLost() {
	a.Session.Invalidate()
	if a.Router.Interrupt(router.PathLogin) {
		fmt.Fprintln(a.Err, SessionExpiredMessage)
	}
}

// Start resolves the stored token in the background
func (a *App) Start(ctx context.Context) {
	go a.Session.CheckAuth(ctx)
}

// Interactive reports whether the prompter can ask the user for input
func (a *App) Interactive() bool {
	ip, ok := a.Prompt.(interface{ Interactive() bool })
	return ok && ip.Interactive()
}

// WaitReady blocks until the startup session check has finished
func (a *App) WaitReady(ctx context.Context) error {
	select {
	case <-a.Session.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Navigate is a shorthand for the router's Navigate
func (a *App) Navigate(ctx context.Context, path string, params router.Params) error {
	return a.Router.Navigate(ctx, path, params)
}

// OpenTokenStore opens the configured token store. An unusable keyring falls
// back to the token file.
func OpenTokenStore(kind string, log zerolog.Logger) (auth.TokenStore, error) {
	if kind == config.TokenStoreKeyring {
		store := auth.NewKeyringStore(auth.Service)
		_, err := auth.Peek(store)
		if err == nil {
			return store, nil
		}
		log.Warn().Err(err).Msg("Keyring unavailable, storing token in a file instead")
	}

	path, err := auth.DefaultTokenPath()
	if err != nil {
		return nil, err
	}
	return auth.NewFileStore(path), nil
}
