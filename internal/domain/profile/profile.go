package profile

import (
	"database/sql"

	"github.com/google/uuid"
)

// Profile is a user identity in the CRM, used to resolve escalation
// recipients and to address reminder emails.
type Profile struct {
	ID        uuid.UUID
	Email     sql.NullString
	FirstName sql.NullString
	IsAdmin   bool
	RoleID    uuid.NullUUID
}

// Role is a named role referenced by profiles. A role whose name contains
// "manager" (case-insensitive) qualifies its profiles as escalation
// recipients.
type Role struct {
	ID   uuid.UUID
	Name string
}
