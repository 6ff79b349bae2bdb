package mockcatalog

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func identity(c echo.Context) (string, domain.Role) {
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	return email, domain.Role(role)
}

func containsFold(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ── Publications ──

func (s *Server) listPublications(c echo.Context, publicOnly bool) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]domain.Publication, 0, len(s.store.publications))
	for _, p := range s.store.publications {
		if publicOnly && p.Statut != "PUBLIEE" {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) ListPublicPublications(c echo.Context) error { return s.listPublications(c, true) }

func (s *Server) ListPublications(c echo.Context) error { return s.listPublications(c, false) }

func (s *Server) GetPublication(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.store.publications[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "publication not found"})
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) SearchPublications(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	chercheurID, _ := strconv.ParseInt(c.QueryParam("chercheurId"), 10, 64)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]domain.Publication, 0)
	for _, p := range s.store.publications {
		if !containsFold(p.Titre, keyword) && !containsFold(p.Resume, keyword) {
			continue
		}
		if chercheurID != 0 {
			r, ok := s.store.researchers[chercheurID]
			if !ok || !matchesResearcher(p, r) {
				continue
			}
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func matchesResearcher(p *domain.Publication, r *domain.Researcher) bool {
	full := strings.TrimSpace(r.Prenom + " " + r.Nom)
	for _, name := range p.ChercheursNoms {
		if strings.EqualFold(name, full) {
			return true
		}
	}
	return false
}

func (s *Server) CreatePublication(c echo.Context) error {
	var p domain.Publication
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p.ID = s.store.id()
	s.store.publications[p.ID] = &p
	s.store.recordAudit("CREATE", "PUBLICATION", p.ID, email, role, c.RealIP())
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) UpdatePublication(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var p domain.Publication
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.publications[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "publication not found"})
	}
	p.ID = id
	s.store.publications[id] = &p
	s.store.recordAudit("UPDATE", "PUBLICATION", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, p)
}

func (s *Server) DeletePublication(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.publications[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "publication not found"})
	}
	delete(s.store.publications, id)
	s.store.recordAudit("DELETE", "PUBLICATION", id, email, role, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DownloadPublication(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.store.mu.Lock()
	p, ok := s.store.publications[id]
	s.store.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "publication not found"})
	}
	// The double has no file store; serve a deterministic placeholder.
	return c.Blob(http.StatusOK, "application/pdf", []byte("%PDF-stub "+p.Titre))
}

// ── Researchers ──

func (s *Server) ListResearchers(c echo.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.Researcher, 0, len(s.store.researchers))
	for _, r := range s.store.researchers {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) GetResearcher(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	r, ok := s.store.researchers[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "researcher not found"})
	}
	return c.JSON(http.StatusOK, r)
}

func (s *Server) GetResearcherByUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, r := range s.store.researchers {
		if r.UserID == userID {
			return c.JSON(http.StatusOK, r)
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "researcher not found"})
}

func (s *Server) SearchResearchers(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.Researcher, 0)
	for _, r := range s.store.researchers {
		if containsFold(r.Nom, keyword) || containsFold(r.Prenom, keyword) || containsFold(r.Affiliation, keyword) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) CreateResearcher(c echo.Context) error {
	var r domain.Researcher
	if err := c.Bind(&r); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	r.ID = s.store.id()
	s.store.researchers[r.ID] = &r
	s.store.recordAudit("CREATE", "RESEARCHER", r.ID, email, role, c.RealIP())
	return c.JSON(http.StatusCreated, r)
}

func (s *Server) UpdateResearcher(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var r domain.Researcher
	if err := c.Bind(&r); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.researchers[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "researcher not found"})
	}
	r.ID = id
	s.store.researchers[id] = &r
	s.store.recordAudit("UPDATE", "RESEARCHER", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, r)
}

func (s *Server) DeleteResearcher(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.researchers[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "researcher not found"})
	}
	delete(s.store.researchers, id)
	s.store.recordAudit("DELETE", "RESEARCHER", id, email, role, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}

// ── Domains ──

func (s *Server) ListDomains(c echo.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.DomainNode, 0, len(s.store.domains))
	for _, d := range s.store.domains {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) ListDomainRoots(c echo.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.DomainNode, 0)
	for _, d := range s.store.domains {
		if d.ParentID == 0 {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) GetDomain(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	d, ok := s.store.domains[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "domain not found"})
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) SearchDomains(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.DomainNode, 0)
	for _, d := range s.store.domains {
		if containsFold(d.Nom, keyword) || containsFold(d.Description, keyword) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) CreateDomain(c echo.Context) error {
	var d domain.DomainNode
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	d.ID = s.store.id()
	s.store.domains[d.ID] = &d
	s.store.recordAudit("CREATE", "DOMAIN", d.ID, email, role, c.RealIP())
	return c.JSON(http.StatusCreated, d)
}

func (s *Server) UpdateDomain(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var d domain.DomainNode
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.domains[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "domain not found"})
	}
	d.ID = id
	s.store.domains[id] = &d
	s.store.recordAudit("UPDATE", "DOMAIN", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, d)
}

func (s *Server) DeleteDomain(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.domains[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "domain not found"})
	}
	delete(s.store.domains, id)
	s.store.recordAudit("DELETE", "DOMAIN", id, email, role, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
