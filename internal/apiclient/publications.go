package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// PublicationSearch carries the optional filters of the publication
// search endpoints. Zero fields are omitted from the query.
type PublicationSearch struct {
	Keyword     string
	Statut      string
	ChercheurID int64
	DomaineID   int64
	Annee       int
}

func (p PublicationSearch) query() url.Values {
	q := url.Values{}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	if p.Statut != "" {
		q.Set("statut", p.Statut)
	}
	if p.ChercheurID != 0 {
		q.Set("chercheurId", strconv.FormatInt(p.ChercheurID, 10))
	}
	if p.DomaineID != 0 {
		q.Set("domaineId", strconv.FormatInt(p.DomaineID, 10))
	}
	if p.Annee != 0 {
		q.Set("annee", strconv.Itoa(p.Annee))
	}
	return q
}

// PublicPublications lists publications without authentication.
func (c *Client) PublicPublications(ctx context.Context) ([]domain.Publication, error) {
	var out []domain.Publication
	err := c.get(ctx, "/public/publications", nil, &out)
	return out, err
}

// PublicPublication fetches one publication without authentication.
func (c *Client) PublicPublication(ctx context.Context, id int64) (*domain.Publication, error) {
	var out domain.Publication
	if err := c.get(ctx, fmt.Sprintf("/public/publications/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPublicPublications searches the public catalog.
func (c *Client) SearchPublicPublications(ctx context.Context, search PublicationSearch) ([]domain.Publication, error) {
	var out []domain.Publication
	err := c.get(ctx, "/public/publications/search", search.query(), &out)
	return out, err
}

// Publications lists all publications (authenticated).
func (c *Client) Publications(ctx context.Context) ([]domain.Publication, error) {
	var out []domain.Publication
	err := c.get(ctx, "/publications", nil, &out)
	return out, err
}

// Publication fetches one publication (authenticated).
func (c *Client) Publication(ctx context.Context, id int64) (*domain.Publication, error) {
	var out domain.Publication
	if err := c.get(ctx, fmt.Sprintf("/publications/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPublications searches the full catalog (authenticated).
func (c *Client) SearchPublications(ctx context.Context, search PublicationSearch) ([]domain.Publication, error) {
	var out []domain.Publication
	err := c.get(ctx, "/publications/search", search.query(), &out)
	return out, err
}

// PublicationsByChercheur lists publications of one researcher.
func (c *Client) PublicationsByChercheur(ctx context.Context, chercheurID int64) ([]domain.Publication, error) {
	return c.SearchPublications(ctx, PublicationSearch{ChercheurID: chercheurID})
}

// CreatePublication registers a new publication.
func (c *Client) CreatePublication(ctx context.Context, pub domain.Publication) (*domain.Publication, error) {
	var out domain.Publication
	if err := c.post(ctx, "/publications", pub, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePublication replaces an existing publication.
func (c *Client) UpdatePublication(ctx context.Context, id int64, pub domain.Publication) (*domain.Publication, error) {
	var out domain.Publication
	if err := c.put(ctx, fmt.Sprintf("/publications/%d", id), pub, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePublication removes a publication.
func (c *Client) DeletePublication(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/publications/%d", id))
}

// DownloadPublication fetches the attached document as raw bytes.
func (c *Client) DownloadPublication(ctx context.Context, id int64) ([]byte, error) {
	return c.raw(ctx, fmt.Sprintf("/publications/download/%d", id))
}
