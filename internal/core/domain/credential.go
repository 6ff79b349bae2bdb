package domain

import "strings"

// Role is the single access level attached to a user. A user always has
// exactly one role; routes may accept several.
type Role string

const (
	RoleUtilisateur Role = "UTILISATEUR"
	RoleModerateur  Role = "MODERATEUR"
	RoleAdmin       Role = "ADMIN"
)

// roleRank orders roles from least to most privileged.
var roleRank = map[Role]int{
	RoleUtilisateur: 1,
	RoleModerateur:  2,
	RoleAdmin:       3,
}

// Valid reports whether r is one of the known role values.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// ParseRole normalises a wire value into a Role. Unknown values are
// returned as-is and fail Valid().
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Credential is the persisted proof of authentication: the bearer token
// together with the profile returned by the signin exchange. A Credential
// is either fully present or fully absent; stored state that fails
// Complete() is treated as no session at all.
type Credential struct {
	Token  string `json:"token"`
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Role   Role   `json:"role"`
}

// Complete reports whether the credential carries everything a session
// needs. Partial or corrupt stored values must not be promoted to a
// live session.
func (c *Credential) Complete() bool {
	return c != nil && c.Token != "" && c.Email != "" && c.Role.Valid()
}

// DisplayName returns "Prenom Nom", falling back to the email address.
func (c *Credential) DisplayName() string {
	if c == nil {
		return ""
	}
	name := strings.TrimSpace(c.Prenom + " " + c.Nom)
	if name == "" {
		return c.Email
	}
	return name
}

// Snapshot is the live, read-only projection of the Credential handed out
// to callers. The zero value means "no session".
type Snapshot struct {
	Credential *Credential
}

// Authenticated reports whether a complete credential is present.
func (s Snapshot) Authenticated() bool {
	return s.Credential.Complete()
}

// CanModerate reports whether the session role is MODERATEUR or higher.
func (s Snapshot) CanModerate() bool {
	return s.Authenticated() && s.Credential.Role.AtLeast(RoleModerateur)
}

// IsAdmin reports whether the session role is exactly ADMIN.
func (s Snapshot) IsAdmin() bool {
	return s.Authenticated() && s.Credential.Role == RoleAdmin
}

// Role returns the session role, or the empty Role when unauthenticated.
func (s Snapshot) Role() Role {
	if !s.Authenticated() {
		return ""
	}
	return s.Credential.Role
}
