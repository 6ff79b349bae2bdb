package domain

import (
	"encoding/json"
	"testing"
)

func TestRole_AtLeast(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleModerateur) {
		t.Fatalf("admin should satisfy moderator")
	}
	if !RoleModerateur.AtLeast(RoleModerateur) {
		t.Fatalf("moderator should satisfy moderator")
	}
	if RoleUtilisateur.AtLeast(RoleModerateur) {
		t.Fatalf("utilisateur should not satisfy moderator")
	}
	if Role("GUEST").AtLeast(RoleUtilisateur) {
		t.Fatalf("unknown role should not satisfy anything")
	}
}

func TestParseRole(t *testing.T) {
	if got := ParseRole("  admin "); got != RoleAdmin {
		t.Fatalf("unexpected role: %q", got)
	}
	if ParseRole("superuser").Valid() {
		t.Fatalf("unknown role should not be valid")
	}
}

func TestCredential_Complete(t *testing.T) {
	full := &Credential{Token: "tok", ID: 1, Email: "a@b.fr", Nom: "N", Prenom: "P", Role: RoleAdmin}
	if !full.Complete() {
		t.Fatalf("expected complete credential")
	}

	cases := map[string]*Credential{
		"nil":          nil,
		"no token":     {Email: "a@b.fr", Role: RoleAdmin},
		"no email":     {Token: "tok", Role: RoleAdmin},
		"bad role":     {Token: "tok", Email: "a@b.fr", Role: "ROOT"},
		"missing role": {Token: "tok", Email: "a@b.fr"},
	}
	for name, c := range cases {
		if c.Complete() {
			t.Fatalf("%s: expected incomplete", name)
		}
	}
}

func TestCredential_JSONRoundTrip(t *testing.T) {
	in := Credential{Token: "tok-1", ID: 42, Email: "marie@ia.fr", Nom: "Curie", Prenom: "Marie", Role: RoleModerateur}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Credential
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestSnapshot_Predicates(t *testing.T) {
	none := Snapshot{}
	if none.Authenticated() || none.CanModerate() || none.IsAdmin() {
		t.Fatalf("empty snapshot should have no privileges")
	}
	if none.Role() != "" {
		t.Fatalf("empty snapshot should have empty role")
	}

	mod := Snapshot{Credential: &Credential{Token: "t", Email: "m@x.fr", Role: RoleModerateur}}
	if !mod.Authenticated() || !mod.CanModerate() || mod.IsAdmin() {
		t.Fatalf("moderator predicates wrong")
	}

	admin := Snapshot{Credential: &Credential{Token: "t", Email: "a@x.fr", Role: RoleAdmin}}
	if !admin.CanModerate() || !admin.IsAdmin() {
		t.Fatalf("admin predicates wrong")
	}
}

func TestCredential_DisplayName(t *testing.T) {
	c := &Credential{Prenom: "Marie", Nom: "Curie", Email: "m@x.fr"}
	if got := c.DisplayName(); got != "Marie Curie" {
		t.Fatalf("unexpected display name: %q", got)
	}
	c = &Credential{Email: "m@x.fr"}
	if got := c.DisplayName(); got != "m@x.fr" {
		t.Fatalf("expected email fallback, got %q", got)
	}
}
