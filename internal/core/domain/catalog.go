package domain

// Catalog entities mirror the REST backend's JSON representations. Field
// names follow the backend contract (French attribute names included).

// Publication is a catalogued scientific publication.
type Publication struct {
	ID              int64    `json:"id"`
	Titre           string   `json:"titre"`
	Resume          string   `json:"resume,omitempty"`
	Revue           string   `json:"revue,omitempty"`
	DatePublication string   `json:"datePublication,omitempty"`
	LienDoi         string   `json:"lienDoi,omitempty"`
	Statut          string   `json:"statut,omitempty"`
	FichierURL      string   `json:"fichierUrl,omitempty"`
	CheminFichier   string   `json:"cheminFichier,omitempty"`
	ChercheursNoms  []string `json:"chercheursNoms,omitempty"`
	DomainesNoms    []string `json:"domainesNoms,omitempty"`
}

// Researcher is a member of the research staff, optionally linked to a
// portal user account.
type Researcher struct {
	ID                 int64   `json:"id"`
	Nom                string  `json:"nom"`
	Prenom             string  `json:"prenom"`
	Email              string  `json:"email,omitempty"`
	Affiliation        string  `json:"affiliation,omitempty"`
	Institution        string  `json:"institution,omitempty"`
	Grade              string  `json:"grade,omitempty"`
	Service            string  `json:"service,omitempty"`
	DomainePrincipalID int64   `json:"domainePrincipalId,omitempty"`
	DomainePrincipal   string  `json:"domainePrincipalNom,omitempty"`
	AutresDomainesIDs  []int64 `json:"autresDomainesIds,omitempty"`
	UserID             int64   `json:"userId,omitempty"`
}

// DomainNode is one node of the research-domain tree. ParentID is zero
// for root domains.
type DomainNode struct {
	ID          int64  `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description,omitempty"`
	Service     string `json:"service,omitempty"`
	ParentID    int64  `json:"parentId,omitempty"`
}

// User is a portal account as managed from the admin panel. Password is
// only ever populated on creation requests.
type User struct {
	ID       int64  `json:"id"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// Actualite is a news item shown on the home page when Actif is true.
type Actualite struct {
	ID              int64  `json:"id"`
	Titre           string `json:"titre"`
	Contenu         string `json:"contenu,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	DatePublication string `json:"datePublication,omitempty"`
	Actif           bool   `json:"actif"`
}

// Highlight is a curated front-page item managed by moderators.
type Highlight struct {
	ID          int64  `json:"id"`
	Titre       string `json:"titre"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Actif       bool   `json:"actif"`
}

// HomeContent is a key/value fragment of editable home-page content.
type HomeContent struct {
	ID      int64  `json:"id"`
	Cle     string `json:"cle"`
	Libelle string `json:"libelle,omitempty"`
	Valeur  string `json:"valeur"`
	Actif   bool   `json:"actif"`
}

// AuditEntry is one admin-visible audit log line.
type AuditEntry struct {
	ID               int64  `json:"id"`
	Action           string `json:"action"`
	Entite           string `json:"entite,omitempty"`
	EntiteID         int64  `json:"entiteId,omitempty"`
	Description      string `json:"description,omitempty"`
	UtilisateurEmail string `json:"utilisateurEmail,omitempty"`
	UtilisateurRole  Role   `json:"utilisateurRole,omitempty"`
	AdresseIP        string `json:"adresseIp,omitempty"`
	DateAction       string `json:"dateAction,omitempty"`
}
