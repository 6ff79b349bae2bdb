package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// ResearcherSearch carries the optional researcher search filters.
type ResearcherSearch struct {
	Keyword   string
	DomaineID int64
	Service   string
}

func (r ResearcherSearch) query() url.Values {
	q := url.Values{}
	if r.Keyword != "" {
		q.Set("keyword", r.Keyword)
	}
	if r.DomaineID != 0 {
		q.Set("domaineId", strconv.FormatInt(r.DomaineID, 10))
	}
	if r.Service != "" {
		q.Set("service", r.Service)
	}
	return q
}

// PublicResearchers lists researchers without authentication.
func (c *Client) PublicResearchers(ctx context.Context) ([]domain.Researcher, error) {
	var out []domain.Researcher
	err := c.get(ctx, "/public/researchers", nil, &out)
	return out, err
}

// PublicResearcher fetches one researcher without authentication.
func (c *Client) PublicResearcher(ctx context.Context, id int64) (*domain.Researcher, error) {
	var out domain.Researcher
	if err := c.get(ctx, fmt.Sprintf("/public/researchers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPublicResearchers searches the public researcher directory.
func (c *Client) SearchPublicResearchers(ctx context.Context, search ResearcherSearch) ([]domain.Researcher, error) {
	var out []domain.Researcher
	err := c.get(ctx, "/public/researchers/search", search.query(), &out)
	return out, err
}

// Researchers lists all researchers (authenticated).
func (c *Client) Researchers(ctx context.Context) ([]domain.Researcher, error) {
	var out []domain.Researcher
	err := c.get(ctx, "/researchers", nil, &out)
	return out, err
}

// Researcher fetches one researcher (authenticated).
func (c *Client) Researcher(ctx context.Context, id int64) (*domain.Researcher, error) {
	var out domain.Researcher
	if err := c.get(ctx, fmt.Sprintf("/researchers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResearcherByUser fetches the researcher profile linked to a user account.
func (c *Client) ResearcherByUser(ctx context.Context, userID int64) (*domain.Researcher, error) {
	var out domain.Researcher
	if err := c.get(ctx, fmt.Sprintf("/researchers/by-user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchResearchers searches the full directory (authenticated).
func (c *Client) SearchResearchers(ctx context.Context, search ResearcherSearch) ([]domain.Researcher, error) {
	var out []domain.Researcher
	err := c.get(ctx, "/researchers/search", search.query(), &out)
	return out, err
}

// CreateResearcher registers a researcher profile.
func (c *Client) CreateResearcher(ctx context.Context, r domain.Researcher) (*domain.Researcher, error) {
	var out domain.Researcher
	if err := c.post(ctx, "/researchers", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateResearcher replaces a researcher profile.
func (c *Client) UpdateResearcher(ctx context.Context, id int64, r domain.Researcher) (*domain.Researcher, error) {
	var out domain.Researcher
	if err := c.put(ctx, fmt.Sprintf("/researchers/%d", id), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteResearcher removes a researcher profile.
func (c *Client) DeleteResearcher(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/researchers/%d", id))
}
