package services

import (
	"context"
	"strings"

	"github.com/noamlvn/nikudquiz/internal/db"
	"github.com/noamlvn/nikudquiz/internal/errors"
	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/models"
)

// ProfileService handles learner profile management
type ProfileService interface {
	CreateProfile(ctx context.Context, name string) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

type profileService struct {
	db *db.DB
}

// NewProfileService creates a new ProfileService
func NewProfileService(database *db.DB) ProfileService {
	return &profileService{db: database}
}

func (s *profileService) CreateProfile(ctx context.Context, name string) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	profile, err := s.db.UpsertProfile(ctx, name)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.db.GetProfile(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}
	return profile, nil
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.db.ListProfiles(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return profiles, nil
}
