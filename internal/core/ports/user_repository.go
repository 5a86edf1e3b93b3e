package ports

import (
	"context"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

// UserRepository defines persistence operations for identity records.
type UserRepository interface {
	// FindBySubject resolves the internal user for an external-auth subject
	// id. Returns domain.ErrUserNotFound when no record exists.
	FindBySubject(ctx context.Context, subjectID string) (*domain.User, error)
	// Create inserts a new user and returns it with its internal id set.
	// A concurrent insert for the same subject surfaces as
	// domain.ErrUserNotFound-free duplicate handling in the implementation:
	// the winning record is fetched back and returned.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}
