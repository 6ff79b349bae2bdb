package apiclient

import (
	"context"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for a full Credential. The backend's
// rejection (401) surfaces as an *APIError matching
// domain.ErrInvalidCredentials; it never enters the expiry path.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Credential, error) {
	var cred domain.Credential
	if err := c.post(ctx, SigninPath, signinRequest{Email: email, Password: password}, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// SignUp creates an account and returns the created-user representation.
func (c *Client) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	var user domain.User
	if err := c.post(ctx, "/auth/signup", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
