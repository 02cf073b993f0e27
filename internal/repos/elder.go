package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

type ElderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, elder *types.Elder) (*types.Elder, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Elder, error)
	GetOwned(ctx context.Context, tx *gorm.DB, userID, elderID uuid.UUID) (*types.Elder, error)
	Update(ctx context.Context, tx *gorm.DB, elder *types.Elder) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, elderID uuid.UUID) (int64, error)
}

type elderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewElderRepo(db *gorm.DB, baseLog *logger.Logger) ElderRepo {
	return &elderRepo{db: db, log: baseLog.With("repo", "ElderRepo")}
}

func (er *elderRepo) tx(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

func (er *elderRepo) Create(ctx context.Context, tx *gorm.DB, elder *types.Elder) (*types.Elder, error) {
	if err := er.tx(tx).WithContext(ctx).Create(elder).Error; err != nil {
		return nil, err
	}
	return elder, nil
}

func (er *elderRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Elder, error) {
	var results []*types.Elder
	if err := er.tx(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetOwned returns the elder only when it belongs to userID. A miss for any
// reason comes back as (nil, nil) so callers can 404 without leaking whether
// the row exists under another tenant.
func (er *elderRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, elderID uuid.UUID) (*types.Elder, error) {
	var result types.Elder
	err := er.tx(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", elderID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *elderRepo) Update(ctx context.Context, tx *gorm.DB, elder *types.Elder) (int64, error) {
	res := er.tx(tx).WithContext(ctx).
		Model(&types.Elder{}).
		Where("id = ? AND user_id = ?", elder.ID, elder.UserID).
		Updates(map[string]interface{}{
			"relationship": elder.Relationship,
			"name":         elder.Name,
			"age":          elder.Age,
			"email":        elder.Email,
			"phone":        elder.Phone,
			"address":      elder.Address,
			"notes":        elder.Notes,
			"last_updated": elder.LastUpdated,
		})
	return res.RowsAffected, res.Error
}

func (er *elderRepo) Delete(ctx context.Context, tx *gorm.DB, userID, elderID uuid.UUID) (int64, error) {
	res := er.tx(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", elderID, userID).
		Delete(&types.Elder{})
	return res.RowsAffected, res.Error
}
