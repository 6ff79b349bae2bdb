package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ia-technology/catalog-console/internal/apiclient"
	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.session.Logout(ctx)
	case "register":
		return a.cmdRegister(ctx, args)
	case "whoami":
		return a.cmdWhoami()

	case "publications":
		return a.cmdPublications(ctx, args)
	case "publication":
		return a.cmdPublication(ctx, args)
	case "researchers":
		return a.cmdResearchers(ctx, args)
	case "researcher":
		return a.cmdResearcher(ctx, args)
	case "domains":
		return a.cmdDomains(ctx, args)
	case "actualites":
		return a.withRoute(ctx, "dashboard", func(ctx context.Context) (any, error) {
			return a.client.Actualites(ctx)
		})
	case "highlights":
		return a.withRoute(ctx, "moderator", func(ctx context.Context) (any, error) {
			return a.client.Highlights(ctx)
		})
	case "home-content":
		return a.withRoute(ctx, "moderator", func(ctx context.Context) (any, error) {
			return a.client.HomeContents(ctx)
		})
	case "users":
		return a.withRoute(ctx, "admin", func(ctx context.Context) (any, error) {
			return a.client.Users(ctx)
		})
	case "set-role":
		return a.cmdSetRole(ctx, args)
	case "audit":
		return a.withRoute(ctx, "admin", func(ctx context.Context) (any, error) {
			return a.client.AuditEntries(ctx)
		})

	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// withRoute guards the named route, runs fn and prints its result.
func (a *app) withRoute(ctx context.Context, route string, fn func(context.Context) (any, error)) error {
	if err := a.guardRoute(route); err != nil {
		return err
	}
	out, err := fn(ctx)
	if err != nil {
		return err
	}
	return printJSON(out)
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: catalogctl login <email>")
	}
	password, err := readPassword()
	if err != nil {
		return err
	}

	cred, err := a.session.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", cred.DisplayName(), cred.Role)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: catalogctl register <nom> <prenom> <email>")
	}
	password, err := readPassword()
	if err != nil {
		return err
	}

	user, err := a.session.Register(ctx, ports.SignUpInput{
		Nom:      args[0],
		Prenom:   args[1],
		Email:    args[2],
		Password: password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("account created for %s %s, sign in with 'catalogctl login %s'\n", user.Prenom, user.Nom, user.Email)
	return nil
}

func (a *app) cmdWhoami() error {
	snap := a.session.Snapshot()
	if !snap.Authenticated() {
		fmt.Println("not signed in")
		return nil
	}

	cred := snap.Credential
	fmt.Printf("%s <%s> role=%s\n", cred.DisplayName(), cred.Email, cred.Role)
	if exp, ok := apiclient.TokenExpiry(cred.Token); ok {
		fmt.Printf("token expires %s\n", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *app) cmdPublications(ctx context.Context, args []string) error {
	// Public listing needs no session; keyword search included.
	if len(args) == 2 && args[0] == "search" {
		pubs, err := a.client.SearchPublicPublications(ctx, apiclient.PublicationSearch{Keyword: args[1]})
		if err != nil {
			return err
		}
		return printJSON(pubs)
	}
	pubs, err := a.client.PublicPublications(ctx)
	if err != nil {
		return err
	}
	return printJSON(pubs)
}

func (a *app) cmdPublication(ctx context.Context, args []string) error {
	id, err := parseID(args, "catalogctl publication <id>")
	if err != nil {
		return err
	}
	pub, err := a.client.PublicPublication(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(pub)
}

func (a *app) cmdResearchers(ctx context.Context, args []string) error {
	if len(args) == 2 && args[0] == "search" {
		rs, err := a.client.SearchPublicResearchers(ctx, apiclient.ResearcherSearch{Keyword: args[1]})
		if err != nil {
			return err
		}
		return printJSON(rs)
	}
	rs, err := a.client.PublicResearchers(ctx)
	if err != nil {
		return err
	}
	return printJSON(rs)
}

func (a *app) cmdResearcher(ctx context.Context, args []string) error {
	id, err := parseID(args, "catalogctl researcher <id>")
	if err != nil {
		return err
	}
	r, err := a.client.PublicResearcher(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(r)
}

func (a *app) cmdDomains(ctx context.Context, args []string) error {
	return a.withRoute(ctx, "dashboard", func(ctx context.Context) (any, error) {
		if len(args) == 1 && args[0] == "roots" {
			return a.client.DomainRoots(ctx)
		}
		return a.client.Domains(ctx)
	})
}

func (a *app) cmdSetRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: catalogctl set-role <id> <role>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	role := domain.ParseRole(args[1])
	if !role.Valid() {
		return fmt.Errorf("invalid role %q (UTILISATEUR, MODERATEUR, ADMIN)", args[1])
	}

	return a.withRoute(ctx, "admin", func(ctx context.Context) (any, error) {
		return a.client.UpdateUserRole(ctx, id, role)
	})
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// readPassword takes CATALOG_PASSWORD when set, otherwise reads one line
// from stdin.
func readPassword() (string, error) {
	if p := os.Getenv("CATALOG_PASSWORD"); p != "" {
		return p, nil
	}
	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
