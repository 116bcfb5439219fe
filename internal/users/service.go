package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yaleims/api/internal/shared"
)

// Service wraps role store business rules.
type Service struct {
	repo   Repository
	domain string
	logger *slog.Logger
}

// NewService constructs a Service. domain is the institution email domain
// netids resolve under.
func NewService(repo Repository, domain string, logger *slog.Logger) *Service {
	return &Service{repo: repo, domain: domain, logger: logger}
}

// EmailFor derives the record key from a netid.
func (s *Service) EmailFor(netid string) string {
	return netid + "@" + s.domain
}

// Get fetches a user record by email.
func (s *Service) Get(ctx context.Context, email string) (*User, error) {
	return s.repo.Get(ctx, email)
}

// EnsureUser returns the record for a verified identity, provisioning a
// default one on first login. Provisioning happens at most once per
// identity; a concurrent first login loses the create race and re-reads.
func (s *Service) EnsureUser(ctx context.Context, netid string) (*User, error) {
	email := s.EmailFor(netid)
	user, err := s.repo.Get(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh := &User{
		NetID:    netid,
		Email:    email,
		Username: netid,
		Role:     RoleUser,
		MRoles:   []string{RoleUser},
	}
	if err := s.repo.Create(ctx, fresh); err != nil {
		if existing, getErr := s.repo.Get(ctx, email); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("provisioned user", slog.String("netid", netid))
	}
	return fresh, nil
}

// SetRole updates a target user's primary role. Captains additionally get
// the sport unioned into teamsCaptainOf; any other role clears the set.
// The two writes are separate document updates, so a concurrent reader can
// observe the new role with the old capability set for a moment.
func (s *Service) SetRole(ctx context.Context, email, role, sport string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return fmt.Errorf("%w: role is required", shared.ErrValidation)
	}
	if !ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", shared.ErrValidation, role)
	}
	if role == RoleCaptain && strings.TrimSpace(sport) == "" {
		return fmt.Errorf("%w: captain requires a sport", shared.ErrValidation)
	}

	if _, err := s.repo.Get(ctx, email); err != nil {
		return err
	}
	if err := s.repo.SetRole(ctx, email, role); err != nil {
		return err
	}
	if role == RoleCaptain {
		return s.repo.AddTeamCaptainOf(ctx, email, strings.TrimSpace(sport))
	}
	return s.repo.ClearTeamsCaptainOf(ctx, email)
}
