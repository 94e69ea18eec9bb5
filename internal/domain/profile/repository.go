package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read operations on profiles and roles.
type Repository interface {
	ListAll(ctx context.Context) ([]*Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// ListRolesByIDs fetches role records for the given identifiers.
	ListRolesByIDs(ctx context.Context, ids []uuid.UUID) ([]*Role, error)
}
