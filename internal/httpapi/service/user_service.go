package service

import (
	"context"
	"strings"

	"iftarmap/internal/httpapi/models"
	"iftarmap/internal/httpapi/repository"
	"iftarmap/internal/identity"
)

type UserService interface {
	Provision(ctx context.Context, ident *identity.Identity) (*models.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	adminEmails map[string]bool
}

func NewUserService(userRepo repository.UserRepository, adminEmails []string) UserService {
	lookup := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		if email != "" {
			lookup[strings.ToLower(email)] = true
		}
	}
	return &userService{
		userRepo:    userRepo,
		adminEmails: lookup,
	}
}

// Provision upserts the local row for a verified identity and returns it with
// the current admin flag. Subjects whose verified email is on the bootstrap
// allow-list are provisioned as admins; everyone else relies on the flag
// already stored in the database.
func (s *userService) Provision(ctx context.Context, ident *identity.Identity) (*models.User, error) {
	user := &models.User{
		ID:          ident.SubjectID,
		Email:       ident.Email,
		DisplayName: ident.Name,
		IsAdmin:     s.adminEmails[strings.ToLower(ident.Email)],
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	// Re-read so a manually granted admin flag is honored; the upsert never
	// overwrites is_admin for existing rows.
	return s.userRepo.GetByID(ctx, user.ID)
}
