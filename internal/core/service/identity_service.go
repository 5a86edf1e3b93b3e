package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

type identityService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

// NewIdentityService returns the subject-id → user resolution step shared by
// every authenticated operation.
func NewIdentityService(users ports.UserRepository, logger zerolog.Logger) ports.IdentityService {
	return &identityService{users: users, logger: logger}
}

// Resolve maps an external subject to its internal user record. It fails
// closed: an empty or unknown subject is ErrUnauthenticated, never a guest
// record invented on the fly.
func (s *identityService) Resolve(ctx context.Context, id ports.Identity) (*domain.User, error) {
	if id.SubjectID == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.FindBySubject(ctx, id.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// ResolveOrProvision resolves the user, creating the record on first
// authenticated action. First-booking accounts are provisioned on demand,
// not pre-registered.
func (s *identityService) ResolveOrProvision(ctx context.Context, id ports.Identity) (*domain.User, error) {
	if id.SubjectID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindBySubject(ctx, id.SubjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		SubjectID: id.SubjectID,
		Email:     id.Email,
		FullName:  id.FullName,
		Role:      domain.RoleGuest,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("subject_id", id.SubjectID).Str("user_id", created.ID).Msg("user provisioned")
	return created, nil
}
