package mockcatalog

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signinResponse struct {
	Token  string      `json:"token"`
	ID     int64       `json:"id"`
	Email  string      `json:"email"`
	Nom    string      `json:"nom"`
	Prenom string      `json:"prenom"`
	Role   domain.Role `json:"role"`
}

type signupRequest struct {
	Nom      string `json:"nom" validate:"required"`
	Prenom   string `json:"prenom" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signin authenticates an account and returns the credential payload.
func (s *Server) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	s.store.mu.Lock()
	acct, ok := s.store.accounts[req.Email]
	s.store.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	token, err := s.generateToken(&acct.User)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, signinResponse{
		Token:  token,
		ID:     acct.ID,
		Email:  acct.Email,
		Nom:    acct.Nom,
		Prenom: acct.Prenom,
		Role:   acct.Role,
	})
}

// Signup creates an account with the unprivileged role. It does not log
// the account in.
func (s *Server) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.accounts[req.Email]; exists {
		return c.JSON(http.StatusConflict, map[string]string{"error": "user already exists"})
	}

	acct := &account{
		User: domain.User{
			ID: s.store.id(), Nom: req.Nom, Prenom: req.Prenom,
			Email: req.Email, Role: domain.RoleUtilisateur,
		},
		passwordHash: hash,
	}
	s.store.accounts[req.Email] = acct
	s.store.recordAudit("CREATE", "USER", acct.ID, req.Email, domain.RoleUtilisateur, c.RealIP())

	return c.JSON(http.StatusCreated, acct.User)
}

func (s *Server) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.Email,
		"email": user.Email,
		"role":  string(user.Role),
		"id":    user.ID,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
