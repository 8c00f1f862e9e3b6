// Package memory provides in-process repositories for local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"fitsync/backend/internal/domain"
	"fitsync/backend/internal/repository"
)

// ProfileRepository stores profiles in a map keyed by user id.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
	now      func() time.Time
}

// NewProfileRepository constructs an empty profile store.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]domain.UserProfile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Put stores p as-is, replacing any existing profile. Used to seed fixtures.
func (r *ProfileRepository) Put(p domain.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

// GetByID implements repository.ProfileRepository.
func (r *ProfileRepository) GetByID(_ context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// MergeProfile implements repository.ProfileRepository.
func (r *ProfileRepository) MergeProfile(_ context.Context, userID string, update domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	p, ok := r.profiles[userID]
	if !ok {
		p = domain.UserProfile{ID: userID, CreatedAt: now}
	}
	update.Apply(&p)
	p.UpdatedAt = now
	r.profiles[userID] = p
	return nil
}

// SetPremium implements repository.ProfileRepository.
func (r *ProfileRepository) SetPremium(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsPremium = true
	p.UpdatedAt = r.now()
	r.profiles[userID] = p
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
