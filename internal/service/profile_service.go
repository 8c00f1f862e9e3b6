package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/events"
	"fitsync/backend/internal/repository"
)

// ProfileService manages the per-user profile document.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	// UpdateProfile merges the set fields of update, creating the profile if needed.
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error
	// UpgradePremium is idempotent. It fails with ErrUserNotFound when there is no profile.
	UpgradePremium(ctx context.Context, userID string) error
}

type profileService struct {
	profiles repository.ProfileRepository
	events   events.Publisher
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profiles repository.ProfileRepository, publisher events.Publisher) ProfileService {
	return &profileService{profiles: profiles, events: publisher}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) error {
	if update.IsEmpty() {
		return fmt.Errorf("%w: no profile fields to update", ErrInvalidInput)
	}
	if err := s.profiles.MergeProfile(ctx, userID, update); err != nil {
		log.Printf("ERROR: Failed to update profile for user %s: %v", userID, err)
		return err
	}
	return nil
}

func (s *profileService) UpgradePremium(ctx context.Context, userID string) error {
	if err := s.profiles.SetPremium(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	log.Printf("INFO: User %s upgraded to premium", userID)
	publish(ctx, s.events, events.TypePremiumUpgraded, userID, nil)
	return nil
}
