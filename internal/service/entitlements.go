package service

import (
	"context"
	"errors"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/observability"
	"fitsync/backend/internal/repository"
)

// Entitlements reads the caller's profile and applies the premium gate.
// The profile is read on every call so an upgrade takes effect immediately.
type Entitlements struct {
	profiles repository.ProfileRepository
}

// NewEntitlements creates the gate over profiles.
func NewEntitlements(profiles repository.ProfileRepository) *Entitlements {
	return &Entitlements{profiles: profiles}
}

// Lookup returns the profile (nil if the user has none) and whether it is entitled.
func (e *Entitlements) Lookup(ctx context.Context, userID string) (*domain.UserProfile, bool, error) {
	profile, err := e.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return profile, profile.IsEntitled(), nil
}

// Require returns the entitled profile, or an *EntitlementError for feature.
func (e *Entitlements) Require(ctx context.Context, userID string, feature Feature) (*domain.UserProfile, error) {
	profile, ok, err := e.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		observability.RecordEntitlementDenial(string(feature))
		return nil, &EntitlementError{Feature: feature}
	}
	return profile, nil
}
