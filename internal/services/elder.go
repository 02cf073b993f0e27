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

type ProfileInput struct {
	Relationship string `json:"relationship"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
}

type ElderService interface {
	Create(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.Elder, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Elder, error)
	Get(ctx context.Context, userID, elderID uuid.UUID) (*types.Elder, error)
	Update(ctx context.Context, userID, elderID uuid.UUID, input ProfileInput) (*types.Elder, error)
	Delete(ctx context.Context, userID, elderID uuid.UUID) error
}

type elderService struct {
	log       *logger.Logger
	elderRepo repos.ElderRepo
}

func NewElderService(log *logger.Logger, elderRepo repos.ElderRepo) ElderService {
	return &elderService{
		log:       log.With("service", "ElderService"),
		elderRepo: elderRepo,
	}
}

func (es *elderService) Create(ctx context.Context, userID uuid.UUID, input ProfileInput) (*types.Elder, error) {
	if input.Name == "" || input.Relationship == "" {
		return nil, fmt.Errorf("name and relationship are required")
	}
	elder := &types.Elder{
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
	if _, err := es.elderRepo.Create(ctx, nil, elder); err != nil {
		return nil, fmt.Errorf("Failed to create elder profile: %w", err)
	}
	return elder, nil
}

func (es *elderService) List(ctx context.Context, userID uuid.UUID) ([]*types.Elder, error) {
	elders, err := es.elderRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to list elder profiles: %w", err)
	}
	return elders, nil
}

func (es *elderService) Get(ctx context.Context, userID, elderID uuid.UUID) (*types.Elder, error) {
	elder, err := es.elderRepo.GetOwned(ctx, nil, userID, elderID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load elder profile: %w", err)
	}
	if elder == nil {
		return nil, ErrNotFound
	}
	return elder, nil
}

func (es *elderService) Update(ctx context.Context, userID, elderID uuid.UUID, input ProfileInput) (*types.Elder, error) {
	elder, err := es.Get(ctx, userID, elderID)
	if err != nil {
		return nil, err
	}
	if input.Relationship != "" {
		elder.Relationship = input.Relationship
	}
	if input.Name != "" {
		elder.Name = input.Name
	}
	if input.Age != 0 {
		elder.Age = input.Age
	}
	if input.Email != "" {
		elder.Email = input.Email
	}
	if input.Phone != "" {
		elder.Phone = input.Phone
	}
	if input.Address != "" {
		elder.Address = input.Address
	}
	if input.Notes != "" {
		elder.Notes = input.Notes
	}
	elder.LastUpdated = time.Now()

	affected, err := es.elderRepo.Update(ctx, nil, elder)
	if err != nil {
		return nil, fmt.Errorf("Failed to update elder profile: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return elder, nil
}

func (es *elderService) Delete(ctx context.Context, userID, elderID uuid.UUID) error {
	affected, err := es.elderRepo.Delete(ctx, nil, userID, elderID)
	if err != nil {
		return fmt.Errorf("Failed to delete elder profile: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
