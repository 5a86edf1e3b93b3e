package ports

import (
	"context"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

// Identity carries the claims supplied by the external authentication
// provider for the current actor. The core never verifies credentials; it
// only maps SubjectID to an internal user record.
type Identity struct {
	SubjectID string
	Email     string
	FullName  string
}

// IdentityService resolves external identities to internal user records.
type IdentityService interface {
	// Resolve returns the user for id.SubjectID, or
	// domain.ErrUnauthenticated when the subject is empty or unknown.
	Resolve(ctx context.Context, id Identity) (*domain.User, error)
	// ResolveOrProvision resolves the user, lazily creating a record on
	// first authenticated action.
	ResolveOrProvision(ctx context.Context, id Identity) (*domain.User, error)
}
