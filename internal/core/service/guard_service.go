package service

import (
	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

// Well-known route paths used by guard redirects and soft navigation.
const (
	PathHome         = "/"
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
)

// Route declares a navigable destination and its access requirement.
// An empty Roles list on a protected route means "any authenticated
// user"; the user side is always a single scalar role.
type Route struct {
	Name      string
	Path      string
	Protected bool
	Roles     []domain.Role
}

// Outcome is the result category of a guard evaluation.
type Outcome int

const (
	// OutcomePending means session initialization has not completed yet.
	// Render a neutral loading state and re-evaluate; deciding before the
	// store is ready is a race.
	OutcomePending Outcome = iota
	// OutcomeAllow lets the destination render.
	OutcomeAllow
	// OutcomeRedirectToLogin means no credential is present. From carries
	// the originally requested path so login can return the user there.
	OutcomeRedirectToLogin
	// OutcomeRedirectToUnauthorized means the credential's role does not
	// match the destination's requirement.
	OutcomeRedirectToUnauthorized
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllow:
		return "allow"
	case OutcomeRedirectToLogin:
		return "redirect_to_login"
	case OutcomeRedirectToUnauthorized:
		return "redirect_to_unauthorized"
	default:
		return "pending"
	}
}

// Decision is the per-navigation access verdict. It is recomputed on
// every navigation and never cached.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	From       string
}

// GuardService decides, per navigation attempt, whether a destination
// may render. It is the single place role requirements are compared,
// replacing ad-hoc role checks scattered across views.
type GuardService struct {
	session ports.SessionReader
}

func NewGuardService(session ports.SessionReader) *GuardService {
	return &GuardService{session: session}
}

// Evaluate computes the decision for one navigation to route.
func (g *GuardService) Evaluate(route Route) Decision {
	if !route.Protected {
		return Decision{Outcome: OutcomeAllow}
	}

	if !g.session.Ready() {
		return Decision{Outcome: OutcomePending, From: route.Path}
	}

	snap := g.session.Snapshot()
	if !snap.Authenticated() {
		return Decision{
			Outcome:    OutcomeRedirectToLogin,
			RedirectTo: PathLogin,
			From:       route.Path,
		}
	}

	if len(route.Roles) > 0 && !roleAccepted(snap.Role(), route.Roles) {
		return Decision{
			Outcome:    OutcomeRedirectToUnauthorized,
			RedirectTo: PathUnauthorized,
			From:       route.Path,
		}
	}

	return Decision{Outcome: OutcomeAllow}
}

// roleAccepted reports whether the single user role matches any of the
// roles the destination accepts.
func roleAccepted(role domain.Role, accepted []domain.Role) bool {
	for _, r := range accepted {
		if role == r {
			return true
		}
	}
	return false
}

// DefaultRoutes is the application route table. Public pages carry no
// guard; the dashboard and profile only require a session; the moderator
// and admin panels declare explicit role lists.
func DefaultRoutes() []Route {
	return []Route{
		{Name: "home", Path: PathHome},
		{Name: "login", Path: PathLogin},
		{Name: "register", Path: "/register"},
		{Name: "publications", Path: "/publications"},
		{Name: "researchers", Path: "/researchers"},
		{Name: "search", Path: "/search"},
		{Name: "unauthorized", Path: PathUnauthorized},
		{Name: "dashboard", Path: "/dashboard", Protected: true,
			Roles: []domain.Role{domain.RoleUtilisateur, domain.RoleModerateur, domain.RoleAdmin}},
		{Name: "profile", Path: "/profile", Protected: true,
			Roles: []domain.Role{domain.RoleUtilisateur, domain.RoleModerateur, domain.RoleAdmin}},
		{Name: "moderator", Path: "/moderator", Protected: true,
			Roles: []domain.Role{domain.RoleModerateur, domain.RoleAdmin}},
		{Name: "admin", Path: "/admin", Protected: true,
			Roles: []domain.Role{domain.RoleAdmin}},
	}
}

// FindRoute looks a route up by name in a table. The second return value
// reports whether it exists.
func FindRoute(routes []Route, name string) (Route, bool) {
	for _, r := range routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}
