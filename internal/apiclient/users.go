package apiclient

import (
	"context"
	"fmt"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// Users lists all portal accounts (admin only).
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.get(ctx, "/users", nil, &out)
	return out, err
}

// User fetches one account.
func (c *Client) User(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser adds an account from the admin panel.
func (c *Client) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var out domain.User
	if err := c.post(ctx, "/users", user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRole changes an account's single role value.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	body := map[string]domain.Role{"role": role}
	var out domain.User
	if err := c.put(ctx, fmt.Sprintf("/users/%d/role", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}
