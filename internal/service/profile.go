package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/groblegark/infradash/internal/auth"
	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/store"
)

// ProfileService loads and updates the calling user's profile.
type ProfileService struct {
	resolver auth.Resolver
	store    store.Store
}

// NewProfileService wires the profile service to its collaborators.
func NewProfileService(resolver auth.Resolver, s store.Store) *ProfileService {
	return &ProfileService{resolver: resolver, store: s}
}

// Get returns the calling user's account row.
func (s *ProfileService) Get(ctx context.Context) (*model.User, error) {
	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newPersistenceError("load profile", err)
	}
	return user, nil
}

// Update persists the calling user's profile. Fields are trimmed of
// surrounding whitespace before validation and persistence. Concurrent edits
// are not detected; the last update wins.
func (s *ProfileService) Update(ctx context.Context, profile model.UserProfile) (*model.User, error) {
	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	trimmed := model.TrimProfile(profile)
	if err := model.ValidateProfile(&trimmed); err != nil {
		return nil, err
	}

	user, err := s.store.UpdateUserProfile(ctx, userID, trimmed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newPersistenceError("update profile", err)
	}
	return user, nil
}
