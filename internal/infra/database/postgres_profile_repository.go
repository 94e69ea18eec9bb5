package database

import (
	"context"
	"database/sql"
	"fmt"

	"opportunity_followup_reminders/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrProfileNotFound = fmt.Errorf("profile not found")

type PostgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	query := `SELECT id, email, first_name, is_admin, role_id FROM profiles`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p := &profile.Profile{}
		if err := rows.Scan(&p.ID, &p.Email, &p.FirstName, &p.IsAdmin, &p.RoleID); err != nil {
			return nil, fmt.Errorf("error scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT id, email, first_name, is_admin, role_id FROM profiles WHERE id = $1`
	p := &profile.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Email, &p.FirstName, &p.IsAdmin, &p.RoleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile by ID: %w", err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) ListRolesByIDs(ctx context.Context, ids []uuid.UUID) ([]*profile.Role, error) {
	if len(ids) == 0 {
		return []*profile.Role{}, nil
	}

	idsAsStrings := make([]string, len(ids))
	for i, id := range ids {
		idsAsStrings[i] = id.String()
	}

	query := `SELECT id, name FROM roles WHERE id = ANY($1::uuid[])`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(idsAsStrings))
	if err != nil {
		return nil, fmt.Errorf("error listing roles by IDs: %w", err)
	}
	defer rows.Close()

	roles := make([]*profile.Role, 0)
	for rows.Next() {
		role := &profile.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("error scanning role: %w", err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}
	return roles, nil
}
