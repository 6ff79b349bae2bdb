// Package mockcatalog is an in-memory double of the catalog backend used
// for development and integration tests. It implements the real wire
// contract (signin/signup, public and protected catalog routes, 401 on
// bad or expired tokens, 403 on insufficient role) over seeded data.
package mockcatalog

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

type account struct {
	domain.User
	passwordHash []byte
}

// Store holds the seeded catalog data. All access is mutex-guarded; the
// double has no persistence by design.
type Store struct {
	mu           sync.Mutex
	nextID       int64
	accounts     map[string]*account // keyed by email
	publications map[int64]*domain.Publication
	researchers  map[int64]*domain.Researcher
	domains      map[int64]*domain.DomainNode
	actualites   map[int64]*domain.Actualite
	highlights   map[int64]*domain.Highlight
	homeContents map[int64]*domain.HomeContent
	audit        []domain.AuditEntry
}

// NewStore returns a Store seeded with one account per role and a small
// catalog sample.
func NewStore() *Store {
	s := &Store{
		nextID:       1,
		accounts:     make(map[string]*account),
		publications: make(map[int64]*domain.Publication),
		researchers:  make(map[int64]*domain.Researcher),
		domains:      make(map[int64]*domain.DomainNode),
		actualites:   make(map[int64]*domain.Actualite),
		highlights:   make(map[int64]*domain.Highlight),
		homeContents: make(map[int64]*domain.HomeContent),
	}
	s.seed()
	return s
}

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) seed() {
	seedAccounts := []struct {
		nom, prenom, email, password string
		role                         domain.Role
	}{
		{"Admin", "Alice", "admin@ia-technology.test", "admin123", domain.RoleAdmin},
		{"Moderateur", "Marc", "moderator@ia-technology.test", "moder123", domain.RoleModerateur},
		{"Utilisateur", "Ulysse", "user@ia-technology.test", "user123", domain.RoleUtilisateur},
	}
	for _, a := range seedAccounts {
		hash, _ := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.MinCost)
		s.accounts[a.email] = &account{
			User: domain.User{
				ID: s.id(), Nom: a.nom, Prenom: a.prenom, Email: a.email, Role: a.role,
			},
			passwordHash: hash,
		}
	}

	root := &domain.DomainNode{ID: s.id(), Nom: "Intelligence Artificielle", Service: "IA"}
	child := &domain.DomainNode{ID: s.id(), Nom: "Apprentissage Profond", ParentID: root.ID, Service: "IA"}
	s.domains[root.ID] = root
	s.domains[child.ID] = child

	r := &domain.Researcher{
		ID: s.id(), Nom: "Curie", Prenom: "Marie",
		Email: "m.curie@ia-technology.test", Affiliation: "IA-Technology",
		Grade: "Directrice de recherche", DomainePrincipalID: root.ID,
		DomainePrincipal: root.Nom,
	}
	s.researchers[r.ID] = r

	p := &domain.Publication{
		ID: s.id(), Titre: "Transfer Learning in Low-Resource Settings",
		Resume: "A survey.", Revue: "JMLR", DatePublication: "2024-05-01",
		Statut: "PUBLIEE", ChercheursNoms: []string{"Marie Curie"},
		DomainesNoms: []string{root.Nom},
	}
	s.publications[p.ID] = p

	a := &domain.Actualite{
		ID: s.id(), Titre: "Nouvelle plateforme", Contenu: "Lancement du portail.",
		DatePublication: time.Now().Format("2006-01-02"), Actif: true,
	}
	s.actualites[a.ID] = a

	h := &domain.Highlight{ID: s.id(), Titre: "Publication du mois", Type: "publication", Actif: true}
	s.highlights[h.ID] = h

	hc := &domain.HomeContent{ID: s.id(), Cle: "hero_title", Libelle: "Titre principal", Valeur: "Catalogue des publications", Actif: true}
	s.homeContents[hc.ID] = hc
}

// accountByID finds an account by numeric ID. Caller must hold s.mu.
func (s *Store) accountByID(id int64) *account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// recordAudit appends one audit line. Caller must hold s.mu.
func (s *Store) recordAudit(action, entite string, entiteID int64, email string, role domain.Role, ip string) {
	s.audit = append(s.audit, domain.AuditEntry{
		ID:               s.id(),
		Action:           action,
		Entite:           entite,
		EntiteID:         entiteID,
		UtilisateurEmail: email,
		UtilisateurRole:  role,
		AdresseIP:        ip,
		DateAction:       time.Now().UTC().Format(time.RFC3339),
	})
}
