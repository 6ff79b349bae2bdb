// Command catalogctl is the terminal console for the IA-Technology
// publication catalog. Every protected command is mediated by the route
// guard, so role handling lives in one place instead of per command.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ia-technology/catalog-console/internal/apiclient"
	"github.com/ia-technology/catalog-console/internal/core/ports"
	"github.com/ia-technology/catalog-console/internal/core/service"
	"github.com/ia-technology/catalog-console/internal/infrastructure/config"
	filestorage "github.com/ia-technology/catalog-console/internal/infrastructure/storage/file"
	redisstorage "github.com/ia-technology/catalog-console/internal/infrastructure/storage/redis"
	"github.com/ia-technology/catalog-console/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, true, os.Stderr)

	ctx := context.Background()
	app, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles the wired core: storage, client, session store and guard.
type app struct {
	client  *apiclient.Client
	session *service.SessionService
	guard   *service.GuardService
	routes  []service.Route
	log     zerolog.Logger
}

// consoleNavigator implements the soft navigation the session store
// performs on forced logout. In a terminal there is nothing to re-render;
// the redirect is surfaced as a message.
type consoleNavigator struct{}

func (consoleNavigator) NavigateTo(route string) {
	fmt.Fprintf(os.Stderr, "session expired, redirected to %s: please sign in again\n", route)
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	storage, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := apiclient.New(cfg.APIBaseURL, cfg.RequestTimeout, storage, log)
	if err != nil {
		return nil, err
	}

	session := service.NewSessionService(storage, client, consoleNavigator{}, log)
	client.SetObserver(session)

	if err := session.Initialize(ctx); err != nil {
		return nil, err
	}
	if err := session.StartWatch(ctx); err != nil {
		return nil, err
	}

	return &app{
		client:  client,
		session: session,
		guard:   service.NewGuardService(session),
		routes:  service.DefaultRoutes(),
		log:     log,
	}, nil
}

// openStorage selects redis-backed shared storage when configured, and
// the per-user session file otherwise.
func openStorage(ctx context.Context, cfg *config.Config) (ports.CredentialStorage, error) {
	if cfg.Redis.Addr != "" {
		client, err := redisstorage.Connect(ctx, redisstorage.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return redisstorage.New(client), nil
	}
	return filestorage.New(cfg.StateDir)
}

// guardRoute runs the route guard for the named route and returns an
// error unless the decision is allow.
func (a *app) guardRoute(name string) error {
	route, ok := service.FindRoute(a.routes, name)
	if !ok {
		return fmt.Errorf("unknown route %q", name)
	}

	decision := a.guard.Evaluate(route)
	switch decision.Outcome {
	case service.OutcomeAllow:
		return nil
	case service.OutcomeRedirectToLogin:
		return fmt.Errorf("not signed in (wanted %s): run 'catalogctl login <email>' first", decision.From)
	case service.OutcomeRedirectToUnauthorized:
		return fmt.Errorf("your role does not allow access to %s", decision.From)
	default:
		return fmt.Errorf("session still initializing, try again")
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `catalogctl - IA-Technology publication catalog console

Usage:
  catalogctl login <email>             sign in (password read from stdin or CATALOG_PASSWORD)
  catalogctl logout                    sign out
  catalogctl register <nom> <prenom> <email>
  catalogctl whoami                    show the current session

  catalogctl publications [search <keyword>]
  catalogctl publication <id>
  catalogctl researchers [search <keyword>]
  catalogctl researcher <id>
  catalogctl domains [roots]
  catalogctl actualites
  catalogctl highlights                (moderator)
  catalogctl home-content              (moderator)
  catalogctl users                     (admin)
  catalogctl set-role <id> <role>      (admin)
  catalogctl audit                     (admin)

Environment: API_BASE_URL, REQUEST_TIMEOUT, STATE_DIR, REDIS_ADDR, LOG_LEVEL
`)
}
