package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/studytube/backend/internal/auth"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/repositories"
	"go.uber.org/zap"
)

// ErrInvalidEmail is returned when a profile email cannot be parsed
var ErrInvalidEmail = errors.New("invalid email")

const maxDisplayNameLength = 255

// ProfileRepository is the interface that wraps methods for profiles table data access
type ProfileRepository interface {
	// Method Upsert creates or replaces the owner's profile.
	//
	// "ctx" is the context for the request.
	// "profile" is the profile to store.
	// Returns an error if any.
	Upsert(ctx context.Context, profile *models.Profile) error
	// Method GetByOwner retrieves the owner's profile.
	//
	// "ctx" is the context for the request.
	// "ownerID" is the ID of the owner.
	// Returns the profile and an error wrapping repositories.ErrNotFound if there is none.
	GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error)
}

type profileService struct {
	repo   ProfileRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(repo ProfileRepository, logger *zap.Logger) *profileService {
	return &profileService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Update stores the profile of the caller
//
// Empty fields fall back to the values carried by the access token. A missing
// reminders flag keeps the stored value, which defaults to enabled.
func (s *profileService) Update(ctx context.Context, identity auth.Identity, req models.UpdateProfileRequest) (*models.Profile, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = identity.Email
	}
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
		}
		email = addr.Address
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = identity.DisplayName
	}
	if len(displayName) > maxDisplayNameLength {
		displayName = displayName[:maxDisplayNameLength]
	}

	remindersEnabled := true
	existing, err := s.repo.GetByOwner(ctx, identity.OwnerID)
	switch {
	case err == nil:
		remindersEnabled = existing.RemindersEnabled
	case !errors.Is(err, repositories.ErrNotFound):
		s.logger.Error("failed to get profile", zap.String("owner_id", identity.OwnerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if req.RemindersEnabled != nil {
		remindersEnabled = *req.RemindersEnabled
	}

	profile := &models.Profile{
		OwnerID:          identity.OwnerID,
		Email:            email,
		DisplayName:      displayName,
		RemindersEnabled: remindersEnabled,
		UpdatedAt:        s.now().UTC().Truncate(time.Second),
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		s.logger.Error("failed to save profile", zap.String("owner_id", identity.OwnerID), zap.Error(err))
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return profile, nil
}
