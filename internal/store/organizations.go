package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minipm/internal/types"
)

const orgColumns = `id, name, slug, contact_email, created_at`

func scanOrganization(row scanner) (*types.Organization, error) {
	var o types.Organization
	var created string
	if err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.ContactEmail, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	o.CreatedAt = t
	return &o, nil
}

// CreateOrganization inserts o and fills in its ID and CreatedAt.
func (s *Store) CreateOrganization(ctx context.Context, o *types.Organization) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.stamp()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO organizations (name, slug, contact_email, created_at) VALUES (?, ?, ?, ?)`,
		o.Name, o.Slug, o.ContactEmail, formatTime(o.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("organization slug %q: %w", o.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	o.ID, err = res.LastInsertId()
	return err
}

// GetOrganization loads an organization by id.
func (s *Store) GetOrganization(ctx context.Context, id int64) (*types.Organization, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = ?`, id)
	o, err := scanOrganization(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

// ResolveOrganization finds the organization named by a request header:
// an exact slug match wins, otherwise the name must match exactly one row.
func (s *Store) ResolveOrganization(ctx context.Context, ident string) (*types.Organization, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orgColumns+` FROM organizations WHERE slug = ?`, ident)
	o, err := scanOrganization(row)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up organization: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+orgColumns+` FROM organizations WHERE name = ? LIMIT 2`, ident)
	if err != nil {
		return nil, fmt.Errorf("failed to look up organization: %w", err)
	}
	defer rows.Close()

	var found []*types.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return nil, ErrAmbiguous
	}
}

// ListOrganizations returns every organization ordered by name.
func (s *Store) ListOrganizations(ctx context.Context) ([]*types.Organization, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+orgColumns+` FROM organizations ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var out []*types.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// DeleteOrganization removes an organization and, by cascade, everything it owns.
func (s *Store) DeleteOrganization(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
