package apiclient

import (
	"context"
	"net/url"

	"github.com/ia-technology/catalog-console/internal/core/domain"
)

// AuditFilter carries the optional audit log filters.
type AuditFilter struct {
	Action   string
	Entite   string
	Email    string
	DateFrom string
	DateTo   string
}

func (f AuditFilter) query() url.Values {
	q := url.Values{}
	if f.Action != "" {
		q.Set("action", f.Action)
	}
	if f.Entite != "" {
		q.Set("entite", f.Entite)
	}
	if f.Email != "" {
		q.Set("email", f.Email)
	}
	if f.DateFrom != "" {
		q.Set("dateFrom", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("dateTo", f.DateTo)
	}
	return q
}

// AuditEntries lists the audit log (admin only).
func (c *Client) AuditEntries(ctx context.Context) ([]domain.AuditEntry, error) {
	var out []domain.AuditEntry
	err := c.get(ctx, "/admin/audit", nil, &out)
	return out, err
}

// FilterAudit lists audit entries matching the filter.
func (c *Client) FilterAudit(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, error) {
	var out []domain.AuditEntry
	err := c.get(ctx, "/admin/audit/filter", filter.query(), &out)
	return out, err
}
