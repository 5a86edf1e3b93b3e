package service

import (
	"context"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

// OwnershipGuard gates every mutating operation on an existing property.
// It is consulted synchronously before the write and re-resolves both actor
// and property on each call, so authorization always reflects the current
// owner — there is no stale-authorization window.
type OwnershipGuard struct {
	identity   ports.IdentityService
	properties ports.PropertyRepository
}

func NewOwnershipGuard(identity ports.IdentityService, properties ports.PropertyRepository) *OwnershipGuard {
	return &OwnershipGuard{identity: identity, properties: properties}
}

// AssertOwner resolves the actor and the property and fails closed unless
// the actor is the recorded owner: ErrUnauthenticated when the subject is
// unknown, ErrPropertyNotFound when the property is absent, ErrForbidden
// when the owner differs. On success the resolved property is returned so
// callers avoid a second fetch.
func (g *OwnershipGuard) AssertOwner(ctx context.Context, actor ports.Identity, propertyID string) (*domain.Property, error) {
	user, err := g.identity.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}

	property, err := g.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if property.OwnerID != user.ID {
		return nil, domain.ErrForbidden
	}
	return property, nil
}
