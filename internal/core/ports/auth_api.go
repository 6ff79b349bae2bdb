package ports

import (
	"context"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// SignUpInput carries the signup payload. Validation tags are enforced
// client-side before the request is sent.
type SignUpInput struct {
	Nom      string `json:"nom" validate:"required"`
	Prenom   string `json:"prenom" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthAPI is the slice of the backend consumed by the session store.
type AuthAPI interface {
	// SignIn exchanges credentials for a full Credential. Errors are
	// returned untouched for the caller to render.
	SignIn(ctx context.Context, email, password string) (*domain.Credential, error)
	// SignUp creates an account. A successful signup does not log in.
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
}
