package mockcatalog

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// ── Users ──

func (s *Server) ListUsers(c echo.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.User, 0, len(s.store.accounts))
	for _, a := range s.store.accounts {
		out = append(out, a.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if a := s.store.accountByID(id); a != nil {
		return c.JSON(http.StatusOK, a.User)
	}
	return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
}

func (s *Server) CreateUser(c echo.Context) error {
	var u domain.User
	if err := c.Bind(&u); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if !u.Role.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid role"})
	}
	email, role := identity(c)

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, exists := s.store.accounts[u.Email]; exists {
		return c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
	}
	u.ID = s.store.id()
	u.Password = ""
	s.store.accounts[u.Email] = &account{User: u, passwordHash: hash}
	s.store.recordAudit("CREATE", "USER", u.ID, email, role, c.RealIP())
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) UpdateUserRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body struct {
		Role domain.Role `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if !body.Role.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid role"})
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a := s.store.accountByID(id)
	if a == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}
	a.Role = body.Role
	s.store.recordAudit("UPDATE_ROLE", "USER", id, email, role, c.RealIP())
	return c.JSON(http.StatusOK, a.User)
}

func (s *Server) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	email, role := identity(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	a := s.store.accountByID(id)
	if a == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}
	delete(s.store.accounts, a.Email)
	s.store.recordAudit("DELETE", "USER", id, email, role, c.RealIP())
	return c.NoContent(http.StatusNoContent)
}

// ── Audit ──

func (s *Server) ListAudit(c echo.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.AuditEntry, len(s.store.audit))
	copy(out, s.store.audit)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) FilterAudit(c echo.Context) error {
	action := c.QueryParam("action")
	entite := c.QueryParam("entite")
	email := c.QueryParam("email")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := make([]domain.AuditEntry, 0)
	for _, e := range s.store.audit {
		if action != "" && e.Action != action {
			continue
		}
		if entite != "" && e.Entite != entite {
			continue
		}
		if email != "" && e.UtilisateurEmail != email {
			continue
		}
		out = append(out, e)
	}
	return c.JSON(http.StatusOK, out)
}
