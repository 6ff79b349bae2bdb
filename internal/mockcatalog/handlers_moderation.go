package mockcatalog

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// ── Actualités ──

func (s *Server) listActualites(c echo.Context, activeOnly bool) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.Actualite, 0, len(s.store.actualites))
	for _, a := range s.store.actualites {
		if activeOnly && !a.Actif {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) ListActualites(c echo.Context) error { return s.listActualites(c, false) }

func (s *Server) ListActiveActualites(c echo.Context) error { return s.listActualites(c, true) }

func (s *Server) GetActualite(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a, ok := s.store.actualites[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "actualite not found"})
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) CreateActualite(c echo.Context) error {
	var a domain.Actualite
	if err := c.Bind(&a); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a.ID = s.store.id()
	s.store.actualites[a.ID] = &a
	s.store.recordAudit("CREATE", "ACTUALITE", a.ID, email, role, c.RealIP())
	return c.JSON(http.StatusCreated, a)
}

func (s *Server) UpdateActualite(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var a domain.Actualite
	if err := c.Bind(&a); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.actualites[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "actualite not found"})
	}
	a.ID = id
	s.store.actualites[id] = &a
	s.store.recordAudit("UPDATE", "ACTUALITE", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, a)
}

func (s *Server) DeleteActualite(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.actualites[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "actualite not found"})
	}
	delete(s.store.actualites, id)
	s.store.recordAudit("DELETE", "ACTUALITE", id, email, role, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}

// ── Highlights ──

func (s *Server) listHighlights(c echo.Context, activeOnly bool) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.Highlight, 0, len(s.store.highlights))
	for _, h := range s.store.highlights {
		if activeOnly && !h.Actif {
			continue
		}
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) ListHighlights(c echo.Context) error { return s.listHighlights(c, false) }

func (s *Server) ListActiveHighlights(c echo.Context) error { return s.listHighlights(c, true) }

func (s *Server) GetHighlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	h, ok := s.store.highlights[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "highlight not found"})
	}
	return c.JSON(http.StatusOK, h)
}

func (s *Server) CreateHighlight(c echo.Context) error {
	var h domain.Highlight
	if err := c.Bind(&h); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	h.ID = s.store.id()
	s.store.highlights[h.ID] = &h
	s.store.recordAudit("CREATE", "HIGHLIGHT", h.ID, email, role, c.RealIP())
	return c.JSON(http.StatusCreated, h)
}

func (s *Server) UpdateHighlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var h domain.Highlight
	if err := c.Bind(&h); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.highlights[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "highlight not found"})
	}
	h.ID = id
	s.store.highlights[id] = &h
	s.store.recordAudit("UPDATE", "HIGHLIGHT", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, h)
}

func (s *Server) DeleteHighlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.highlights[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "highlight not found"})
	}
	delete(s.store.highlights, id)
	s.store.recordAudit("DELETE", "HIGHLIGHT", id, email, role, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}

// ── Home content ──

func (s *Server) listHomeContents(c echo.Context, activeOnly bool) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.HomeContent, 0, len(s.store.homeContents))
	for _, h := range s.store.homeContents {
		if activeOnly && !h.Actif {
			continue
		}
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) ListHomeContents(c echo.Context) error { return s.listHomeContents(c, false) }

func (s *Server) ListActiveHomeContents(c echo.Context) error { return s.listHomeContents(c, true) }

func (s *Server) CreateHomeContent(c echo.Context) error {
	var h domain.HomeContent
	if err := c.Bind(&h); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	h.ID = s.store.id()
	s.store.homeContents[h.ID] = &h
	s.store.recordAudit("CREATE", "HOME_CONTENT", h.ID, email, role, c.RealIP())
	return c.JSON(http.StatusCreated, h)
}

func (s *Server) UpdateHomeContent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var h domain.HomeContent
	if err := c.Bind(&h); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.homeContents[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "home content not found"})
	}
	h.ID = id
	s.store.homeContents[id] = &h
	s.store.recordAudit("UPDATE", "HOME_CONTENT", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, h)
}

func (s *Server) UpdateHomeContentValeur(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body struct {
		Valeur string `json:"valeur"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	h, ok := s.store.homeContents[id]
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "home content not found"})
	}
	h.Valeur = body.Valeur
	s.store.recordAudit("UPDATE", "HOME_CONTENT", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, h)
}

func (s *Server) DeleteHomeContent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.homeContents[id]; !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "home content not found"})
	}
	delete(s.store.homeContents, id)
	s.store.recordAudit("DELETE", "HOME_CONTENT", id, email, role, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}
