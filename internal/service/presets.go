package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"manufacturing_analytics/internal/models"
	"manufacturing_analytics/internal/repository"
)

var errEmptyPresetName = errors.New("preset name must not be empty")

// PresetService persists named filter criteria.
type PresetService struct {
	presetRepo repository.PresetRepo
}

func NewPresetService(presetRepo repository.PresetRepo) *PresetService {
	return &PresetService{presetRepo: presetRepo}
}

func (s *PresetService) Save(ctx context.Context, name string, c models.Criteria) (models.FilterPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.FilterPreset{}, errEmptyPresetName
	}

	p := models.FilterPreset{
		ID:        uuid.NewString(),
		Name:      name,
		Criteria:  c,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.presetRepo.Save(ctx, p); err != nil {
		return models.FilterPreset{}, fmt.Errorf("save preset: %w", err)
	}
	return p, nil
}

func (s *PresetService) List(ctx context.Context) ([]models.FilterPreset, error) {
	return s.presetRepo.List(ctx)
}

func (s *PresetService) Get(ctx context.Context, id string) (models.FilterPreset, error) {
	p, err := s.presetRepo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FilterPreset{}, fmt.Errorf("preset %q: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *PresetService) Delete(ctx context.Context, id string) error {
	err := s.presetRepo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("preset %q: %w", id, ErrNotFound)
	}
	return err
}
