package apiclient

import (
	"context"
	"fmt"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// ── Actualités ──

// Actualites lists all news items (moderator view).
func (c *Client) Actualites(ctx context.Context) ([]domain.Actualite, error) {
	var out []domain.Actualite
	err := c.get(ctx, "/actualites", nil, &out)
	return out, err
}

// ActiveActualites lists the items shown on the public home page.
func (c *Client) ActiveActualites(ctx context.Context) ([]domain.Actualite, error) {
	var out []domain.Actualite
	err := c.get(ctx, "/public/actualites", nil, &out)
	return out, err
}

// Actualite fetches one news item.
func (c *Client) Actualite(ctx context.Context, id int64) (*domain.Actualite, error) {
	var out domain.Actualite
	if err := c.get(ctx, fmt.Sprintf("/actualites/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateActualite adds a news item.
func (c *Client) CreateActualite(ctx context.Context, a domain.Actualite) (*domain.Actualite, error) {
	var out domain.Actualite
	if err := c.post(ctx, "/actualites", a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateActualite replaces a news item.
func (c *Client) UpdateActualite(ctx context.Context, id int64, a domain.Actualite) (*domain.Actualite, error) {
	var out domain.Actualite
	if err := c.put(ctx, fmt.Sprintf("/actualites/%d", id), a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteActualite removes a news item.
func (c *Client) DeleteActualite(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/actualites/%d", id))
}

// ── Highlights ──

// ActiveHighlights lists the public front-page highlights.
func (c *Client) ActiveHighlights(ctx context.Context) ([]domain.Highlight, error) {
	var out []domain.Highlight
	err := c.get(ctx, "/public/highlights", nil, &out)
	return out, err
}

// Highlights lists all highlights (moderator view).
func (c *Client) Highlights(ctx context.Context) ([]domain.Highlight, error) {
	var out []domain.Highlight
	err := c.get(ctx, "/moderator/highlights", nil, &out)
	return out, err
}

// Highlight fetches one highlight.
func (c *Client) Highlight(ctx context.Context, id int64) (*domain.Highlight, error) {
	var out domain.Highlight
	if err := c.get(ctx, fmt.Sprintf("/moderator/highlights/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateHighlight adds a highlight.
func (c *Client) CreateHighlight(ctx context.Context, h domain.Highlight) (*domain.Highlight, error) {
	var out domain.Highlight
	if err := c.post(ctx, "/moderator/highlights", h, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateHighlight replaces a highlight.
func (c *Client) UpdateHighlight(ctx context.Context, id int64, h domain.Highlight) (*domain.Highlight, error) {
	var out domain.Highlight
	if err := c.put(ctx, fmt.Sprintf("/moderator/highlights/%d", id), h, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteHighlight removes a highlight.
func (c *Client) DeleteHighlight(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/moderator/highlights/%d", id))
}

// ── Home content ──

// HomeContents lists all editable home-page fragments (moderator view).
func (c *Client) HomeContents(ctx context.Context) ([]domain.HomeContent, error) {
	var out []domain.HomeContent
	err := c.get(ctx, "/moderator/home-content", nil, &out)
	return out, err
}

// PublicHomeContents lists the fragments served to the public home page.
func (c *Client) PublicHomeContents(ctx context.Context) ([]domain.HomeContent, error) {
	var out []domain.HomeContent
	err := c.get(ctx, "/public/home-content", nil, &out)
	return out, err
}

// CreateHomeContent adds a fragment.
func (c *Client) CreateHomeContent(ctx context.Context, h domain.HomeContent) (*domain.HomeContent, error) {
	var out domain.HomeContent
	if err := c.post(ctx, "/moderator/home-content", h, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateHomeContent replaces a fragment.
func (c *Client) UpdateHomeContent(ctx context.Context, id int64, h domain.HomeContent) (*domain.HomeContent, error) {
	var out domain.HomeContent
	if err := c.put(ctx, fmt.Sprintf("/moderator/home-content/%d", id), h, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateHomeContentValeur patches only the value of a fragment.
func (c *Client) UpdateHomeContentValeur(ctx context.Context, id int64, valeur string) (*domain.HomeContent, error) {
	body := map[string]string{"valeur": valeur}
	var out domain.HomeContent
	if err := c.patch(ctx, fmt.Sprintf("/moderator/home-content/%d/valeur", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteHomeContent removes a fragment.
func (c *Client) DeleteHomeContent(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/moderator/home-content/%d", id))
}
