package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

type YoungerService interface {
	Create(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.Younger, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Younger, error)
	Get(ctx context.Context, userID, youngerID uuid.UUID) (*types.Younger, error)
	Update(ctx context.Context, userID, youngerID uuid.UUID, input ProfileInput) (*types.Younger, error)
	Delete(ctx context.Context, userID, youngerID uuid.UUID) error
}

type youngerService struct {
	log         *logger.Logger
	youngerRepo repos.YoungerRepo
}

func NewYoungerService(log *logger.Logger, youngerRepo repos.YoungerRepo) YoungerService {
	return &youngerService{
		log:         log.With("service", "YoungerService"),
		youngerRepo: youngerRepo,
	}
}

func (ys *youngerService) Create(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.Younger, error) {
	if input.Name == "" || input.Relationship == "" {
		return nil, fmt.Errorf("name and relationship are required")
	}
	younger := &types.Younger{
		ID:           uuid.New(),
		UserID:       userID,
		Relationship: input.Relationship,
		Name:         input.Name,
		Age:          input.Age,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		Notes:        input.Notes,
		LastUpdated:  time.Now(),
		CreatedAt:    time.Now(),
	}
	if _, err := ys.youngerRepo.Create(ctx, nil, younger); err != nil {
		return nil, fmt.Errorf("Failed to create younger profile: %w", err)
	}
	return younger, nil
}

func (ys *youngerService) List(ctx context.Context, userID uuid.UUID) ([]*types.Younger, error) {
	youngers, err := ys.youngerRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to list younger profiles: %w", err)
	}
	return youngers, nil
}

func (ys *youngerService) Get(ctx context.Context, userID, youngerID uuid.UUID) (*types.Younger, error) {
	younger, err := ys.youngerRepo.GetOwned(ctx, nil, userID, youngerID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load younger profile: %w", err)
	}
	if younger == nil {
		return nil, ErrNotFound
	}
	return younger, nil
}

func (ys *youngerService) Update(ctx context.Context, userID, youngerID uuid.UUID, input ProfileInput) (*types.Younger, error) {
	younger, err := ys.Get(ctx, userID, youngerID)
	if err != nil {
		return nil, err
	}
	if input.Relationship != "" {
		younger.Relationship = input.Relationship
	}
	if input.Name != "" {
		younger.Name = input.Name
	}
	if input.Age != 0 {
		younger.Age = input.Age
	}
	if input.Email != "" {
		younger.Email = input.Email
	}
	if input.Phone != "" {
		younger.Phone = input.Phone
	}
	if input.Address != "" {
		younger.Address = input.Address
	}
	if input.Notes != "" {
		younger.Notes = input.Notes
	}
	younger.LastUpdated = time.Now()

	affected, err := ys.youngerRepo.Update(ctx, nil, younger)
	if err != nil {
		return nil, fmt.Errorf("Failed to update younger profile: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return younger, nil
}

func (ys *youngerService) Delete(ctx context.Context, userID, youngerID uuid.UUID) error {
	affected, err := ys.youngerRepo.Delete(ctx, nil, userID, youngerID)
	if err != nil {
		return fmt.Errorf("Failed to delete younger profile: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
