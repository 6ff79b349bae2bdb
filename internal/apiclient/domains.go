package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// Domains lists every node of the research-domain tree.
func (c *Client) Domains(ctx context.Context) ([]domain.DomainNode, error) {
	var out []domain.DomainNode
	err := c.get(ctx, "/domains", nil, &out)
	return out, err
}

// DomainRoots lists only the root domains.
func (c *Client) DomainRoots(ctx context.Context) ([]domain.DomainNode, error) {
	var out []domain.DomainNode
	err := c.get(ctx, "/domains/roots", nil, &out)
	return out, err
}

// Domain fetches one domain node.
func (c *Client) Domain(ctx context.Context, id int64) (*domain.DomainNode, error) {
	var out domain.DomainNode
	if err := c.get(ctx, fmt.Sprintf("/domains/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchDomains filters domains by keyword.
func (c *Client) SearchDomains(ctx context.Context, keyword string) ([]domain.DomainNode, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	var out []domain.DomainNode
	err := c.get(ctx, "/domains/search", q, &out)
	return out, err
}

// CreateDomain adds a domain node.
func (c *Client) CreateDomain(ctx context.Context, node domain.DomainNode) (*domain.DomainNode, error) {
	var out domain.DomainNode
	if err := c.post(ctx, "/domains", node, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDomain replaces a domain node.
func (c *Client) UpdateDomain(ctx context.Context, id int64, node domain.DomainNode) (*domain.DomainNode, error) {
	var out domain.DomainNode
	if err := c.put(ctx, fmt.Sprintf("/domains/%d", id), node, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDomain removes a domain node.
func (c *Client) DeleteDomain(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/domains/%d", id))
}
